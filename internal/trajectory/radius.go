// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

// minChord is the smallest orientation change, as a unit sphere chord, that
// can carry a radius estimate.
const minChord = 1e-12

// RadiusParams controls the sliding windows averaged by EstimateMeanRadius.
type RadiusParams struct {
	WindowSeconds float64 // integration span of one estimate
	Step          int     // samples between window starts
	Smoothing     int     // moving-average width applied to each window's displacement; 0 disables
}

// RadiusEstimate is the averaged radius and the per-window values it came from.
type RadiusEstimate struct {
	Radius  float64   `json:"radius"`
	Windows int       `json:"windows"`
	Skipped int       `json:"skipped"`
	Samples []float64 `json:"-"`
}

// EstimateRadius divides the distance travelled between samples t1 and t2,
// obtained by double-integrating the world-frame acceleration with the
// midpoint rule, by the unit sphere chord between the orientations at t1 and
// t2.
//
// With smoothing > 0 the displacement series is passed through a moving
// average of that width first and its last point is used, which makes the
// estimate less sensitive to the final few samples.
func EstimateRadius(t1, t2 int, acc []r3.Vec, q []quat.Number, freq, smoothing int) (float64, error) {
	if t1 < 0 || t2 <= t1 {
		return 0, newError("estimate radius", ErrInvalidParameter, "interval [%d, %d]", t1, t2)
	}
	if t2 >= len(q) {
		return 0, newError("estimate radius", ErrInsufficientSamples, "sample %d beyond %d quaternions", t2, len(q))
	}

	disp, err := DoubleIntegrate(acc, t1, t2-t1, freq, Midpoint)
	if err != nil {
		return 0, err
	}
	if smoothing > 0 {
		if disp, err = MovingAverage(disp, smoothing); err != nil {
			return 0, err
		}
	}
	d2 := r3.Norm(disp[len(disp)-1])

	d1 := orientation.AngularDistance(q[t1], q[t2])
	if d1 <= minChord || math.IsNaN(d1) {
		return 0, newError("estimate radius", ErrDegenerateGeometry, "orientation unchanged between samples %d and %d", t1, t2)
	}
	return d2 / d1, nil
}

// EstimateMeanRadius slides a window of p.WindowSeconds across the recording
// in steps of p.Step samples and averages the per-window estimates. Windows in
// which the orientation does not change are skipped.
func EstimateMeanRadius(acc []r3.Vec, q []quat.Number, freq int, p RadiusParams) (RadiusEstimate, error) {
	if freq <= 0 {
		return RadiusEstimate{}, newError("estimate radius", ErrInvalidParameter, "sample frequency %d", freq)
	}
	if p.Step < 1 {
		return RadiusEstimate{}, newError("estimate radius", ErrInvalidParameter, "step %d", p.Step)
	}
	window := int(math.Round(p.WindowSeconds * float64(freq)))
	if window < 1 {
		return RadiusEstimate{}, newError("estimate radius", ErrInvalidParameter, "window %.3fs at %d Hz", p.WindowSeconds, freq)
	}
	if len(acc) != len(q) {
		return RadiusEstimate{}, newError("estimate radius", ErrLengthMismatch, "%d accelerations, %d quaternions", len(acc), len(q))
	}
	if window >= len(q) {
		return RadiusEstimate{}, newError("estimate radius", ErrInsufficientSamples, "window of %d samples needs more than %d samples", window, len(q))
	}

	var est RadiusEstimate
	for t1 := 0; t1+window < len(q); t1 += p.Step {
		r, err := EstimateRadius(t1, t1+window, acc, q, freq, p.Smoothing)
		if errors.Is(err, ErrDegenerateGeometry) {
			est.Skipped++
			continue
		}
		if err != nil {
			return RadiusEstimate{}, err
		}
		est.Samples = append(est.Samples, r)
	}
	if len(est.Samples) == 0 {
		return RadiusEstimate{}, newError("estimate radius", ErrDegenerateGeometry, "orientation constant in all %d windows", est.Skipped)
	}

	est.Windows = len(est.Samples)
	est.Radius = stat.Mean(est.Samples, nil)
	return est, nil
}

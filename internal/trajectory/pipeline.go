// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Input is one fully loaded recording, as handed over by the loader.
type Input struct {
	SampleFreq    int
	GravityLength float64
	Accelerations []r3.Vec      // body frame, m/s²
	Orientations  []quat.Number // body → world
}

// Params selects the integration rule and filter widths.
type Params struct {
	Rule           Rule
	FloatingWindow int // drift filter width, samples
	Radius         RadiusParams
}

// DefaultParams matches the settings the probe recordings were tuned with.
func DefaultParams() Params {
	return Params{
		Rule:           Midpoint,
		FloatingWindow: 101,
		Radius: RadiusParams{
			WindowSeconds: 1.0,
			Step:          10,
		},
	}
}

// Result holds every intermediate series of one run. Points[i],
// Displacement[i], Filtered[i] and Noise[i] all belong to sample i.
type Result struct {
	Radius       RadiusEstimate
	World        []r3.Vec
	Displacement []r3.Vec
	Filtered     []r3.Vec
	Noise        []r3.Vec
	Points       []r3.Vec
}

// NoiseMagnitude reports the mean and largest length of the noise vectors.
func (r *Result) NoiseMagnitude() (mean, peak float64) {
	if len(r.Noise) == 0 {
		return 0, 0
	}
	norms := make([]float64, len(r.Noise))
	for i, v := range r.Noise {
		norms[i] = r3.Norm(v)
	}
	return stat.Mean(norms, nil), floats.Max(norms)
}

// Run executes the reconstruction: gravity compensation, double integration,
// drift filtering, radius estimation and synthesis. Stages run in order, each
// on the complete output of the previous one. ctx is checked between stages;
// a cancelled run returns no result.
func Run(ctx context.Context, in Input, p Params) (*Result, error) {
	if in.SampleFreq <= 0 {
		return nil, newError("run", ErrInvalidParameter, "sample frequency %d", in.SampleFreq)
	}

	world, err := CompensateGravity(in.Accelerations, in.Orientations, in.GravityLength)
	if err != nil {
		return nil, err
	}
	if err := checkpoint(ctx, "integration"); err != nil {
		return nil, err
	}

	disp, err := DoubleIntegrate(world, 0, len(world), in.SampleFreq, p.Rule)
	if err != nil {
		return nil, err
	}
	if err := checkpoint(ctx, "drift filter"); err != nil {
		return nil, err
	}

	filtered, err := MovingAverage(disp, p.FloatingWindow)
	if err != nil {
		return nil, err
	}
	noise := ExtractNoise(disp, filtered)
	if err := checkpoint(ctx, "radius estimation"); err != nil {
		return nil, err
	}

	radius, err := EstimateMeanRadius(world, in.Orientations, in.SampleFreq, p.Radius)
	if err != nil {
		return nil, err
	}
	if err := checkpoint(ctx, "synthesis"); err != nil {
		return nil, err
	}

	points, err := Synthesize(in.Orientations[:len(noise)], noise, radius.Radius)
	if err != nil {
		return nil, err
	}

	return &Result{
		Radius:       radius,
		World:        world,
		Displacement: disp,
		Filtered:     filtered,
		Noise:        noise,
		Points:       points,
	}, nil
}

// Outcome is what RunAsync delivers: a complete result or an error.
type Outcome struct {
	Result *Result
	Err    error
}

// RunAsync runs the pipeline on its own goroutine. The returned channel
// receives exactly one Outcome and is then closed.
func RunAsync(ctx context.Context, in Input, p Params) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := Run(ctx, in, p)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

func checkpoint(ctx context.Context, next string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("trajectory: cancelled before %s: %w", next, err)
	}
	return nil
}

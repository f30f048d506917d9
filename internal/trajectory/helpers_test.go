// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

const standardGravity = 9.80665

func xs(values ...float64) []r3.Vec {
	out := make([]r3.Vec, len(values))
	for i, v := range values {
		out[i] = r3.Vec{X: v}
	}
	return out
}

func constant(v r3.Vec, n int) []r3.Vec {
	out := make([]r3.Vec, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func assertVecsNear(t *testing.T, want, got []r3.Vec, tol float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("vectors mismatch (-want +got):\n%s", diff)
	}
}

// sweepInput simulates a sensor starting at rest on top of a sphere of the
// given radius and sliding along the x/y great circle with constant angular
// acceleration alpha (rad/s²). Accelerations are body-frame readings that
// include gravity.
func sweepInput(n, freq int, radius, alpha float64) Input {
	in := Input{
		SampleFreq:    freq,
		GravityLength: standardGravity,
		Accelerations: make([]r3.Vec, n),
		Orientations:  make([]quat.Number, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(freq)
		theta := 0.5 * alpha * t * t
		omega := alpha * t

		dir := r3.Vec{X: math.Sin(theta), Y: math.Cos(theta)}
		tangent := r3.Vec{X: math.Cos(theta), Y: -math.Sin(theta)}
		world := r3.Scale(radius, r3.Sub(r3.Scale(alpha, tangent), r3.Scale(omega*omega, dir)))

		q := orientation.FromAxisAngle(r3.Vec{Z: 1}, theta)
		in.Orientations[i] = q
		in.Accelerations[i] = orientation.Rotate(r3.Add(world, r3.Scale(standardGravity, orientation.Up)), orientation.Invert(q))
	}
	return in
}

// bodyFrame turns world-frame accelerations into raw readings for the given
// orientations.
func bodyFrame(world []r3.Vec, q []quat.Number, g float64) []r3.Vec {
	out := make([]r3.Vec, len(world))
	for i := range world {
		out[i] = orientation.Rotate(r3.Add(world[i], r3.Scale(g, orientation.Up)), orientation.Invert(q[i]))
	}
	return out
}

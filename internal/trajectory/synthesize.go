// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

// Synthesize places each sample on the sphere of the given radius along its
// orientation's direction and adds the residual motion left by the drift
// filter:
//
//	point[i] = UnitSphereDirection(q[i])·radius + noise[i]
func Synthesize(q []quat.Number, noise []r3.Vec, radius float64) ([]r3.Vec, error) {
	if len(q) != len(noise) {
		return nil, newError("synthesize", ErrLengthMismatch, "%d quaternions, %d noise vectors", len(q), len(noise))
	}
	if len(q) == 0 {
		return nil, newError("synthesize", ErrEmptyInput, "no samples")
	}

	points := make([]r3.Vec, len(q))
	for i := range q {
		points[i] = r3.Add(r3.Scale(radius, orientation.UnitSphereDirection(q[i])), noise[i])
	}
	return points, nil
}

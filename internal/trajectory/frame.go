// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

// CompensateGravity rotates each body-frame acceleration into the world frame
// with its orientation quaternion and removes the static gravity component:
//
//	out[i] = Rotate(acc[i], q[i]) − Up·g
func CompensateGravity(acc []r3.Vec, q []quat.Number, g float64) ([]r3.Vec, error) {
	if len(acc) != len(q) {
		return nil, newError("compensate gravity", ErrLengthMismatch, "%d accelerations, %d quaternions", len(acc), len(q))
	}
	if len(acc) == 0 {
		return nil, newError("compensate gravity", ErrEmptyInput, "no samples")
	}

	gravity := r3.Scale(g, orientation.Up)
	world := make([]r3.Vec, len(acc))
	for i := range acc {
		world[i] = r3.Sub(orientation.Rotate(acc[i], q[i]), gravity)
	}
	return world, nil
}

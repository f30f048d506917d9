// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the quaternion of the zero rotation.
var Identity = quat.Number{Real: 1}

// Up is the fixed world vertical axis. Gravity acts along it and the
// sensor's position on the sphere is measured from it.
var Up = r3.Vec{X: 0, Y: 1, Z: 0}

// New builds a quaternion from its scalar part w and vector part x, y, z.
func New(w, x, y, z float64) quat.Number {
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Lift embeds v as a pure quaternion (zero scalar part).
func Lift(v r3.Vec) quat.Number {
	return quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

// Vector returns the vector part of q, dropping the scalar part.
func Vector(q quat.Number) r3.Vec {
	return r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Invert returns conj(q)/|q|². For a unit quaternion this is the conjugate.
// The zero quaternion has no inverse and yields non-finite components.
func Invert(q quat.Number) quat.Number {
	n := quat.Abs(q)
	return quat.Scale(1/(n*n), quat.Conj(q))
}

// Rotate computes the vector part of q ⊗ v ⊗ conj(q).
//
// q is expected to be a unit quaternion. It is not renormalised: a quaternion
// of norm n scales the result by n², which is how drift in upstream data shows
// up here.
func Rotate(v r3.Vec, q quat.Number) r3.Vec {
	return Vector(quat.Mul(quat.Mul(q, Lift(v)), quat.Conj(q)))
}

// Compose returns the rotation that applies b first and then a.
func Compose(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

// Normalize scales q to unit norm. The zero quaternion is returned unchanged.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return q
	}
	return quat.Scale(1/n, q)
}

// FromAxisAngle returns the unit quaternion rotating by angle radians about axis.
func FromAxisAngle(axis r3.Vec, angle float64) quat.Number {
	u := r3.Unit(axis)
	s := math.Sin(angle / 2)
	return quat.Number{Real: math.Cos(angle / 2), Imag: u.X * s, Jmag: u.Y * s, Kmag: u.Z * s}
}

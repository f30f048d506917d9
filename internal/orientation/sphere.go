// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnitSphereDirection returns the point on the unit sphere implied by q:
// the world Up axis expressed in the sensor's body frame.
func UnitSphereDirection(q quat.Number) r3.Vec {
	return Rotate(Up, Invert(q))
}

// AngularDistance is the chord length between the unit sphere directions of
// q1 and q2. It stands in for the geodesic angle and avoids an inverse
// trigonometric call per sample; the two agree to second order for small
// separations.
func AngularDistance(q1, q2 quat.Number) float64 {
	return r3.Norm(r3.Sub(UnitSphereDirection(q1), UnitSphereDirection(q2)))
}

// ArcPoints interpolates steps points along the chord from start to end and
// pushes each one back onto the sphere of the given radius. The endpoints are
// included unchanged, so the result has steps+1 elements (2 when steps < 1).
// Interior points that fall on the sphere's centre (antipodal endpoints) are
// left at the origin.
func ArcPoints(start, end r3.Vec, radius float64, steps int) []r3.Vec {
	if steps < 1 {
		steps = 1
	}
	points := make([]r3.Vec, 0, steps+1)
	points = append(points, start)
	chord := r3.Sub(end, start)
	for i := 1; i < steps; i++ {
		p := r3.Add(start, r3.Scale(float64(i)/float64(steps), chord))
		if n := r3.Norm(p); n > 0 {
			p = r3.Scale(radius/n, p)
		}
		points = append(points, p)
	}
	return append(points, end)
}

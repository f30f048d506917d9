// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Pose is the human readable form of an orientation, in degrees.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// PoseFromQuaternion converts a body→world quaternion into roll/pitch/yaw
// (Z-Y-X Tait-Bryan angles).
//
//	roll  = atan2(2(wx + yz), 1 − 2(x² + y²))
//	pitch = asin(2(wy − zx))
//	yaw   = atan2(2(wz + xy), 1 − 2(y² + z²))
func PoseFromQuaternion(q quat.Number) Pose {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	rollRad := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	sinp := 2 * (w*y - z*x)
	// clamp: |sinp| creeps past 1 on slightly non-unit input
	sinp = math.Max(-1, math.Min(1, sinp))
	pitchRad := math.Asin(sinp)

	yawRad := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return Pose{
		Roll:  rollRad * 180.0 / math.Pi,
		Pitch: pitchRad * 180.0 / math.Pi,
		Yaw:   yawRad * 180.0 / math.Pi,
	}
}

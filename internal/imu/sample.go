// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

// Sample is one time step of the probe's output.
type Sample struct {
	Acceleration    r3.Vec      `json:"acceleration"`     // body frame, m/s²
	AngularVelocity r3.Vec      `json:"angular_velocity"` // body frame, rad/s
	Orientation     quat.Number `json:"orientation"`      // body → world
}

// Calibration is the recording header, captured once before the sweep.
type Calibration struct {
	SampleFreq    int         `json:"sample_freq"` // Hz
	CalibCount    int         `json:"calib_count"` // samples in the calibration block
	Gravity       r3.Vec      `json:"gravity"`
	GravityLength float64     `json:"gravity_length"`
	Quaternion    quat.Number `json:"quaternion"`
}

// Recording is a complete capture: header plus samples in time order.
type Recording struct {
	Title       string
	Calibration Calibration
	Samples     []Sample
}

// Accelerations returns a fresh slice of the body-frame accelerations.
func (r *Recording) Accelerations() []r3.Vec {
	out := make([]r3.Vec, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Acceleration
	}
	return out
}

// Orientations returns a fresh slice of the orientation quaternions.
func (r *Recording) Orientations() []quat.Number {
	out := make([]quat.Number, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Orientation
	}
	return out
}

// Input packages the recording for trajectory.Run.
func (r *Recording) Input() trajectory.Input {
	return trajectory.Input{
		SampleFreq:    r.Calibration.SampleFreq,
		GravityLength: r.Calibration.GravityLength,
		Accelerations: r.Accelerations(),
		Orientations:  r.Orientations(),
	}
}

// Duration is the recording length in seconds.
func (r *Recording) Duration() float64 {
	if r.Calibration.SampleFreq <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / float64(r.Calibration.SampleFreq)
}

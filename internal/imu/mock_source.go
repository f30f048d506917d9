// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

// Sweep gives the angle travelled along the great circle at time t, with its
// first and second derivatives.
type Sweep func(t float64) (theta, rate, accel float64)

// SinusoidalSweep swings back and forth: θ = A·sin(2πft).
func SinusoidalSweep(amplitude, freqHz float64) Sweep {
	w := 2 * math.Pi * freqHz
	return func(t float64) (float64, float64, float64) {
		s, c := math.Sincos(w * t)
		return amplitude * s, amplitude * w * c, -amplitude * w * w * s
	}
}

// ConstantAccelerationSweep starts at rest and speeds up: θ = αt²/2.
func ConstantAccelerationSweep(alpha float64) Sweep {
	return func(t float64) (float64, float64, float64) {
		return 0.5 * alpha * t * t, alpha * t, alpha
	}
}

// MockParams configures a synthetic recording of a probe sliding along a
// great circle through the top of a sphere.
type MockParams struct {
	SampleFreq int
	Samples    int
	CalibCount int
	Radius     float64
	Gravity    float64
	Heading    float64 // radians; direction of the great circle seen from above
	Sweep      Sweep
	NoiseStd   float64 // m/s², gaussian, added to each acceleration axis
	Seed       uint64
}

// DefaultMockParams is a 10 s gentle swing on a 0.5 m sphere.
func DefaultMockParams() MockParams {
	return MockParams{
		SampleFreq: 100,
		Samples:    1000,
		CalibCount: 50,
		Radius:     0.5,
		Gravity:    9.80665,
		Sweep:      SinusoidalSweep(0.6, 0.25),
	}
}

// MockRecording generates body-frame accelerations, angular velocities and
// orientations consistent with rigid motion on the sphere. With NoiseStd zero
// the output is exact up to rounding.
func MockRecording(p MockParams) *Recording {
	if p.Sweep == nil {
		p.Sweep = ConstantAccelerationSweep(0)
	}
	var rng *rand.Rand
	if p.NoiseStd > 0 {
		rng = rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	}

	sinPsi, cosPsi := math.Sincos(p.Heading)
	axis := r3.Vec{X: sinPsi, Z: -cosPsi}
	gravity := r3.Scale(p.Gravity, orientation.Up)
	dt := 1 / float64(p.SampleFreq)

	samples := make([]Sample, p.Samples)
	for i := range samples {
		theta, rate, accel := p.Sweep(float64(i) * dt)
		sinT, cosT := math.Sincos(theta)

		// radial and tangential unit vectors at the current point
		radial := r3.Vec{X: sinT * cosPsi, Y: cosT, Z: sinT * sinPsi}
		tangent := r3.Vec{X: cosT * cosPsi, Y: -sinT, Z: cosT * sinPsi}
		world := r3.Scale(p.Radius, r3.Sub(r3.Scale(accel, tangent), r3.Scale(rate*rate, radial)))

		q := orientation.FromAxisAngle(axis, -theta)
		body := orientation.Rotate(r3.Add(world, gravity), orientation.Invert(q))
		if rng != nil {
			body = r3.Add(body, r3.Vec{
				X: rng.NormFloat64() * p.NoiseStd,
				Y: rng.NormFloat64() * p.NoiseStd,
				Z: rng.NormFloat64() * p.NoiseStd,
			})
		}

		samples[i] = Sample{
			Acceleration: body,
			// the rotation axis is fixed, so it reads the same in both frames
			AngularVelocity: r3.Scale(-rate, axis),
			Orientation:     q,
		}
	}

	return &Recording{
		Title: "sphere probe mock recording",
		Calibration: Calibration{
			SampleFreq:    p.SampleFreq,
			CalibCount:    p.CalibCount,
			Gravity:       gravity,
			GravityLength: p.Gravity,
			Quaternion:    orientation.Identity,
		},
		Samples: samples,
	}
}

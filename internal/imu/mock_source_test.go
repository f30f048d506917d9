// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
	"github.com/relabs-tech/sphere_trajectory/internal/trajectory"
)

func TestMockRecordingAtRest(t *testing.T) {
	p := DefaultMockParams()
	p.Sweep = ConstantAccelerationSweep(0)
	p.Samples = 10
	rec := MockRecording(p)

	require.Len(t, rec.Samples, 10)
	for _, s := range rec.Samples {
		assert.InDelta(t, 0, r3.Norm(r3.Sub(s.Acceleration, r3.Vec{Y: p.Gravity})), 1e-12)
		assert.InDelta(t, 0, r3.Norm(s.AngularVelocity), 1e-12)
		assert.InDelta(t, 1, s.Orientation.Real, 1e-12)
	}
}

func TestMockRecordingFollowsHeading(t *testing.T) {
	p := DefaultMockParams()
	p.Heading = math.Pi / 2
	p.Sweep = ConstantAccelerationSweep(1)
	p.Samples = 200
	rec := MockRecording(p)

	// heading 90° sweeps in the y/z plane
	last := orientation.UnitSphereDirection(rec.Samples[len(rec.Samples)-1].Orientation)
	assert.InDelta(t, 0, last.X, 1e-9)
	assert.Greater(t, last.Z, 0.0)
	assert.InDelta(t, 1, r3.Norm(last), 1e-9)
}

func TestMockRecordingCompensatesToModel(t *testing.T) {
	const amplitude, freq = 0.6, 0.25
	p := DefaultMockParams()
	p.Sweep = SinusoidalSweep(amplitude, freq)
	p.Samples = 101
	rec := MockRecording(p)

	world, err := trajectory.CompensateGravity(rec.Accelerations(), rec.Orientations(), p.Gravity)
	require.NoError(t, err)

	w := 2 * math.Pi * freq
	// t = 0: full speed at the top, purely centripetal
	assert.InDelta(t, 0, world[0].X, 1e-9)
	assert.InDelta(t, -p.Radius*amplitude*amplitude*w*w, world[0].Y, 1e-9)

	// t = 1 s is a quarter period: at rest, purely tangential
	tangent := r3.Vec{X: math.Cos(amplitude), Y: -math.Sin(amplitude)}
	want := r3.Scale(-p.Radius*amplitude*w*w, tangent)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(world[100], want)), 1e-9)
	assert.InDelta(t, 0, r3.Norm(rec.Samples[100].AngularVelocity), 1e-9)
}

func TestMockRecordingNoiseIsSeeded(t *testing.T) {
	p := DefaultMockParams()
	p.Samples = 20
	p.NoiseStd = 0.05
	p.Seed = 42

	a := MockRecording(p)
	b := MockRecording(p)
	assert.Equal(t, a.Samples, b.Samples)

	p.Seed = 43
	c := MockRecording(p)
	assert.NotEqual(t, a.Samples, c.Samples)
}

func TestMockRecordingRadiusRecovered(t *testing.T) {
	p := DefaultMockParams()
	p.Sweep = ConstantAccelerationSweep(2)
	p.Samples = 101
	rec := MockRecording(p)

	params := trajectory.DefaultParams()
	params.FloatingWindow = 11
	res, err := trajectory.Run(context.Background(), rec.Input(), params)
	require.NoError(t, err)
	assert.InEpsilon(t, p.Radius, res.Radius.Radius, 0.05)
}

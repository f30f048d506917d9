// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

func TestRunRecoversRadius(t *testing.T) {
	const radius = 0.5
	in := sweepInput(101, 100, radius, 2)
	p := Params{
		Rule:           Midpoint,
		FloatingWindow: 11,
		Radius:         RadiusParams{WindowSeconds: 1, Step: 10},
	}

	res, err := Run(context.Background(), in, p)
	require.NoError(t, err)
	assert.InEpsilon(t, radius, res.Radius.Radius, 0.05)
	assert.Equal(t, 1, res.Radius.Windows)
	assert.Len(t, res.World, 101)
	assert.Len(t, res.Displacement, 101)
	assert.Len(t, res.Filtered, 101)
	assert.Len(t, res.Noise, 101)
	assert.Len(t, res.Points, 101)
}

// 100 samples at 100 Hz, constant world acceleration (0,0,1) after gravity
// compensation, orientation turning 10°/s about a horizontal axis.
func TestRunArcScenario(t *testing.T) {
	const (
		n    = 100
		freq = 100
		rate = 10 * math.Pi / 180 // rad/s
	)
	quats := make([]quat.Number, n)
	for i := range quats {
		quats[i] = orientation.FromAxisAngle(r3.Vec{Z: 1}, rate*float64(i)/freq)
	}
	in := Input{
		SampleFreq:    freq,
		GravityLength: standardGravity,
		Accelerations: bodyFrame(constant(r3.Vec{Z: 1}, n), quats, standardGravity),
		Orientations:  quats,
	}
	p := Params{
		Rule:           Midpoint,
		FloatingWindow: 11,
		Radius:         RadiusParams{WindowSeconds: 0.5, Step: 10},
	}

	res, err := Run(context.Background(), in, p)
	require.NoError(t, err)
	require.Len(t, res.Points, n)

	want, err := EstimateMeanRadius(res.World, quats, freq, p.Radius)
	require.NoError(t, err)
	assert.Equal(t, want.Radius, res.Radius.Radius)
	require.Greater(t, res.Radius.Radius, 0.0)

	for i, pt := range res.Points {
		onSphere := r3.Sub(pt, res.Noise[i])
		require.InDelta(t, res.Radius.Radius, r3.Norm(onSphere), 1e-9, "sample %d", i)

		theta := rate * float64(i) / freq
		dir := r3.Unit(onSphere)
		require.InDelta(t, math.Sin(theta), dir.X, 1e-9, "sample %d", i)
		require.InDelta(t, math.Cos(theta), dir.Y, 1e-9, "sample %d", i)
	}

	// away from the padded ends the residual stays well below a centimetre
	for i := p.FloatingWindow / 2; i < n-p.FloatingWindow/2; i++ {
		require.Less(t, r3.Norm(res.Noise[i]), 0.01, "sample %d", i)
	}
}

func TestRunRuleChangesAlignment(t *testing.T) {
	in := sweepInput(120, 100, 0.4, 1.5)
	for rule, want := range map[Rule]int{Midpoint: 120, Trapezoidal: 118, Simpson: 116} {
		p := DefaultParams()
		p.Rule = rule
		p.FloatingWindow = 21
		p.Radius.WindowSeconds = 0.5

		res, err := Run(context.Background(), in, p)
		require.NoError(t, err, rule.String())
		assert.Len(t, res.Points, want, rule.String())
		assert.Len(t, res.Noise, want, rule.String())
	}
}

func TestRunErrors(t *testing.T) {
	in := sweepInput(50, 100, 0.5, 2)

	bad := in
	bad.Orientations = in.Orientations[:49]
	_, err := Run(context.Background(), bad, DefaultParams())
	assert.ErrorIs(t, err, ErrLengthMismatch)

	bad = in
	bad.SampleFreq = 0
	_, err = Run(context.Background(), bad, DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// default floating window is wider than the recording
	res, err := Run(context.Background(), in, DefaultParams())
	assert.ErrorIs(t, err, ErrInsufficientSamples)
	assert.Nil(t, res)

	_, err = Run(context.Background(), Input{SampleFreq: 100}, DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, sweepInput(300, 100, 0.5, 2), DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestRunAsync(t *testing.T) {
	p := DefaultParams()
	p.FloatingWindow = 11
	ch := RunAsync(context.Background(), sweepInput(101, 100, 0.5, 2), p)

	out, ok := <-ch
	require.True(t, ok)
	require.NoError(t, out.Err)
	assert.Len(t, out.Result.Points, 101)

	_, ok = <-ch
	assert.False(t, ok, "channel must close after the single outcome")
}

func TestNoiseMagnitude(t *testing.T) {
	r := &Result{Noise: []r3.Vec{{X: 3, Y: 4}, {}, {Z: -2}}}
	mean, peak := r.NoiseMagnitude()
	assert.InDelta(t, 7.0/3, mean, 1e-12)
	assert.Equal(t, 5.0, peak)

	mean, peak = (&Result{}).NoiseMagnitude()
	assert.Zero(t, mean)
	assert.Zero(t, peak)
}

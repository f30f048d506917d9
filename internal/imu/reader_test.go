// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const sampleFile = `probe run 7
100;2;0;9.81;0;9.81;1;0;0;0
calibration
ax;ay;az;gx;gy;gz;qw;qx;qy;qz
units
0;9.81;0;0;0;0;1;0;0;0
0;9.81;0;0;0;0;1;0;0;0
0.1;9.8;0.2;0.01;0.02;0.03;1;0;0;0

0,5;9,7;-0,25;0;0;0;0,9;0,1;0,2;0,3
`

func TestParse(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, "probe run 7", rec.Title)
	assert.Equal(t, 100, rec.Calibration.SampleFreq)
	assert.Equal(t, 2, rec.Calibration.CalibCount)
	assert.Equal(t, r3.Vec{Y: 9.81}, rec.Calibration.Gravity)
	assert.Equal(t, 9.81, rec.Calibration.GravityLength)
	assert.Equal(t, quat.Number{Real: 1}, rec.Calibration.Quaternion)

	require.Len(t, rec.Samples, 2)
	assert.Equal(t, r3.Vec{X: 0.1, Y: 9.8, Z: 0.2}, rec.Samples[0].Acceleration)
	assert.Equal(t, r3.Vec{X: 0.01, Y: 0.02, Z: 0.03}, rec.Samples[0].AngularVelocity)

	// comma decimal mark, w first
	assert.Equal(t, r3.Vec{X: 0.5, Y: 9.7, Z: -0.25}, rec.Samples[1].Acceleration)
	assert.Equal(t, quat.Number{Real: 0.9, Imag: 0.1, Jmag: 0.2, Kmag: 0.3}, rec.Samples[1].Orientation)

	in := rec.Input()
	assert.Equal(t, 100, in.SampleFreq)
	assert.Equal(t, 9.81, in.GravityLength)
	assert.Len(t, in.Accelerations, 2)
	assert.Len(t, in.Orientations, 2)
	assert.InDelta(t, 0.02, rec.Duration(), 1e-12)
}

func TestParseRejectsUnusableInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"title only", "title\n"},
		{"short header", "title\n100;2;0\n"},
		{"bad frequency", "title\nfast;0;0;9.81;0;9.81;1;0;0;0\n"},
		{"zero frequency", "title\n0;0;0;9.81;0;9.81;1;0;0;0\n"},
		{"negative calib count", "title\n100;-1;0;9.81;0;9.81;1;0;0;0\n"},
		{"truncated calibration", "title\n100;5;0;9.81;0;9.81;1;0;0;0\na\nb\n"},
		{"no samples", "title\n100;0;0;9.81;0;9.81;1;0;0;0\na\nb\nc\n"},
		{"bad sample number", "title\n100;0;0;9.81;0;9.81;1;0;0;0\na\nb\nc\n1;2;x;0;0;0;1;0;0;0\n"},
		{"short sample", "title\n100;0;0;9.81;0;9.81;1;0;0;0\na\nb\nc\n1;2;3\n"},
		{"NaN sample", "title\n100;0;0;9.81;0;9.81;1;0;0;0\na\nb\nc\n1;NaN;0;0;0;0;1;0;0;0\n"},
		{"infinite sample", "title\n100;0;0;9.81;0;9.81;1;0;0;0\na\nb\nc\n1;0;+Inf;0;0;0;1;0;0;0\n"},
		{"infinite gravity length", "title\n100;0;0;9.81;0;Inf;1;0;0;0\na\nb\nc\n0;0;0;0;0;0;1;0;0;0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrNoUsableInput)
			assert.Nil(t, rec)
		})
	}
}

func TestReadRecordingMissingFile(t *testing.T) {
	_, err := ReadRecording(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteRecordingReadsBack(t *testing.T) {
	p := DefaultMockParams()
	p.Samples = 50
	p.CalibCount = 4
	want := MockRecording(p)

	path := filepath.Join(t.TempDir(), "mock.txt")
	require.NoError(t, SaveRecording(path, want))

	got, err := ReadRecording(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteRecordingDefaultTitle(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recording{
		Calibration: Calibration{SampleFreq: 10, GravityLength: 9.81},
		Samples:     []Sample{{Orientation: quat.Number{Real: 1}}},
	}
	require.NoError(t, WriteRecording(&buf, rec))

	first, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "sphere probe recording", first)
}

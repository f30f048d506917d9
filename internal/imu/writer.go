// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var calibrationCaptions = [calibrationPreamble]string{
	"calibration",
	"ax;ay;az;gx;gy;gz;qw;qx;qy;qz",
	"m/s2;m/s2;m/s2;rad/s;rad/s;rad/s;;;;",
}

// WriteRecording serialises rec in the format Parse reads. The calibration
// block is filled with resting samples built from the header.
func WriteRecording(w io.Writer, rec *Recording) error {
	bw := bufio.NewWriter(w)
	c := rec.Calibration

	title := rec.Title
	if title == "" {
		title = "sphere probe recording"
	}
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, joinFields(
		strconv.Itoa(c.SampleFreq), strconv.Itoa(c.CalibCount),
		formatVec(c.Gravity), formatFloat(c.GravityLength), formatQuat(c.Quaternion),
	))

	for _, caption := range calibrationCaptions {
		fmt.Fprintln(bw, caption)
	}
	rest := Sample{Acceleration: c.Gravity, Orientation: c.Quaternion}
	for i := 0; i < c.CalibCount; i++ {
		fmt.Fprintln(bw, formatSample(rest))
	}

	for _, s := range rec.Samples {
		fmt.Fprintln(bw, formatSample(s))
	}
	return bw.Flush()
}

// SaveRecording writes rec to path, replacing any existing file.
func SaveRecording(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}
	if err := WriteRecording(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("failed to write recording: %w", err)
	}
	return f.Close()
}

func formatSample(s Sample) string {
	return joinFields(formatVec(s.Acceleration), formatVec(s.AngularVelocity), formatQuat(s.Orientation))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatVec(v r3.Vec) string {
	return joinFields(formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func formatQuat(q quat.Number) string {
	return joinFields(formatFloat(q.Real), formatFloat(q.Imag), formatFloat(q.Jmag), formatFloat(q.Kmag))
}

func joinFields(fields ...string) string {
	return strings.Join(fields, ";")
}

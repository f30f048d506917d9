// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoUsableInput is wrapped by every loader error: a recording is either
// read completely or not at all.
var ErrNoUsableInput = errors.New("no usable input")

// calibrationPreamble is the number of lines between the header and the
// calibration samples proper.
const calibrationPreamble = 3

const fieldsPerLine = 10

// ReadRecording loads a recording file.
func ReadRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", path, err)
	}
	return rec, nil
}

// Parse reads the semicolon separated recording format:
//
//	line 1        title (ignored)
//	line 2        sampleFreq;calibCount;gx;gy;gz;gLength;qw;qx;qy;qz
//	next calibCount+3 lines skipped
//	remaining     ax;ay;az;gx;gy;gz;qw;qx;qy;qz
//
// Numbers may use either '.' or ',' as the decimal mark. Blank lines are
// ignored.
func Parse(r io.Reader) (*Recording, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return strings.TrimSpace(scanner.Text()), true
	}

	rec := &Recording{}

	title, ok := next()
	if !ok {
		return nil, noUsable(scanner.Err(), "empty file")
	}
	rec.Title = title

	header, ok := next()
	if !ok {
		return nil, noUsable(scanner.Err(), "missing header line")
	}
	calib, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrNoUsableInput, lineNum, err)
	}
	rec.Calibration = calib

	for i := 0; i < calib.CalibCount+calibrationPreamble; i++ {
		if _, ok := next(); !ok {
			return nil, noUsable(scanner.Err(), fmt.Sprintf("truncated calibration block after line %d", lineNum))
		}
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		s, err := parseSample(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrNoUsableInput, lineNum, err)
		}
		rec.Samples = append(rec.Samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, noUsable(err, "read failed")
	}
	if len(rec.Samples) == 0 {
		return nil, fmt.Errorf("%w: no samples after calibration block", ErrNoUsableInput)
	}
	return rec, nil
}

func noUsable(err error, msg string) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoUsableInput, msg, err)
	}
	return fmt.Errorf("%w: %s", ErrNoUsableInput, msg)
}

func splitFields(line string) ([]string, error) {
	fields := strings.Split(line, ";")
	if len(fields) < fieldsPerLine {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldsPerLine, len(fields))
	}
	return fields, nil
}

func parseHeader(line string) (Calibration, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Calibration{}, fmt.Errorf("header: %w", err)
	}

	var c Calibration
	if c.SampleFreq, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return Calibration{}, fmt.Errorf("invalid sample frequency %q: %w", fields[0], err)
	}
	if c.SampleFreq <= 0 {
		return Calibration{}, fmt.Errorf("sample frequency must be positive, got %d", c.SampleFreq)
	}
	if c.CalibCount, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return Calibration{}, fmt.Errorf("invalid calibration count %q: %w", fields[1], err)
	}
	if c.CalibCount < 0 {
		return Calibration{}, fmt.Errorf("calibration count must not be negative, got %d", c.CalibCount)
	}

	v, err := parseFloats(fields[2:fieldsPerLine])
	if err != nil {
		return Calibration{}, fmt.Errorf("header: %w", err)
	}
	c.Gravity = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	c.GravityLength = v[3]
	c.Quaternion = orientation.New(v[4], v[5], v[6], v[7])
	return c, nil
}

func parseSample(line string) (Sample, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Sample{}, err
	}
	v, err := parseFloats(fields[:fieldsPerLine])
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Acceleration:    r3.Vec{X: v[0], Y: v[1], Z: v[2]},
		AngularVelocity: r3.Vec{X: v[3], Y: v[4], Z: v[5]},
		// w comes before x, y, z in the file
		Orientation: orientation.New(v[6], v[7], v[8], v[9]),
	}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseDecimal(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseDecimal accepts both decimal marks. The probe software writes '.',
// files re-saved on comma locales carry ','.
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

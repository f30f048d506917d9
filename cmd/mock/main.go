// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"
	"math"

	"github.com/relabs-tech/sphere_trajectory/internal/app"
	"github.com/relabs-tech/sphere_trajectory/internal/imu"
)

func main() {
	p := imu.DefaultMockParams()

	out := flag.String("out", "mock_recording.txt", "output file")
	profile := flag.String("profile", "sine", "sweep profile: sine or accel")
	amplitude := flag.Float64("amplitude", 0.6, "sine sweep amplitude (rad)")
	sweepFreq := flag.Float64("sweep-freq", 0.25, "sine sweep frequency (Hz)")
	alpha := flag.Float64("alpha", 2, "angular acceleration for the accel profile (rad/s²)")
	heading := flag.Float64("heading", 0, "great circle heading seen from above (degrees)")
	flag.IntVar(&p.SampleFreq, "freq", p.SampleFreq, "sample frequency (Hz)")
	flag.IntVar(&p.Samples, "samples", p.Samples, "number of samples")
	flag.IntVar(&p.CalibCount, "calib", p.CalibCount, "calibration block length")
	flag.Float64Var(&p.Radius, "radius", p.Radius, "sphere radius (m)")
	flag.Float64Var(&p.NoiseStd, "noise", p.NoiseStd, "accelerometer noise standard deviation (m/s²)")
	flag.Uint64Var(&p.Seed, "seed", 1, "noise seed")
	flag.Parse()

	switch *profile {
	case "sine":
		p.Sweep = imu.SinusoidalSweep(*amplitude, *sweepFreq)
	case "accel":
		p.Sweep = imu.ConstantAccelerationSweep(*alpha)
	default:
		log.Fatalf("unknown profile %q (want sine or accel)", *profile)
	}
	p.Heading = *heading * math.Pi / 180

	if p.SampleFreq <= 0 || p.Samples <= 0 {
		log.Fatalf("freq and samples must be positive")
	}

	if err := app.RunMock(*out, p); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

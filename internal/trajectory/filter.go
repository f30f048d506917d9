// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// MovingAverage smooths series with a flat window of the given width.
//
// Window k averages series[k : k+window] and lands on index k + window/2.
// Positions before the first and after the last full window repeat the
// nearest average, so the output is as long as the input. A window as wide
// as the series therefore yields a single average repeated everywhere.
func MovingAverage(series []r3.Vec, window int) ([]r3.Vec, error) {
	if window < 1 {
		return nil, newError("moving average", ErrInvalidParameter, "window %d", window)
	}
	n := len(series)
	if n == 0 {
		return nil, newError("moving average", ErrEmptyInput, "no samples")
	}
	if window > n {
		return nil, newError("moving average", ErrInsufficientSamples, "window %d exceeds %d samples", window, n)
	}

	out := make([]r3.Vec, n)
	lead := window / 2
	averages := n - window + 1
	inv := 1 / float64(window)

	var sum r3.Vec
	for i := 0; i < window; i++ {
		sum = r3.Add(sum, series[i])
	}
	out[lead] = r3.Scale(inv, sum)
	for k := 1; k < averages; k++ {
		sum = r3.Sub(r3.Add(sum, series[k+window-1]), series[k-1])
		out[lead+k] = r3.Scale(inv, sum)
	}

	for i := 0; i < lead; i++ {
		out[i] = out[lead]
	}
	last := lead + averages - 1
	for i := last + 1; i < n; i++ {
		out[i] = out[last]
	}
	return out, nil
}

// ExtractNoise subtracts the smoothed drift from the raw displacement,
// element by element. The result is as long as the shorter input; callers
// trim their orientation sequence to the same length.
func ExtractNoise(raw, filtered []r3.Vec) []r3.Vec {
	n := min(len(raw), len(filtered))
	noise := make([]r3.Vec, n)
	for i := range noise {
		noise[i] = r3.Sub(raw[i], filtered[i])
	}
	return noise
}

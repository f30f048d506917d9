// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rule selects the quadrature used for each integration pass.
type Rule int

const (
	// Midpoint is the rectangle rule v[i] = v[i−1] + a[i]·Δt. It accepts any
	// window of at least one sample and is the default for reconstruction.
	Midpoint Rule = iota
	// Trapezoidal accumulates (a[i] + a[i+1])/2·Δt.
	Trapezoidal
	// Simpson accumulates (a[i] + 4a[i+1] + a[i+2])/3·Δt, advancing one sample
	// per step so consecutive parabolic panels overlap.
	Simpson
)

var ruleNames = map[Rule]string{
	Midpoint:    "midpoint",
	Trapezoidal: "trapezoidal",
	Simpson:     "simpson",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// ParseRule accepts the rule names plus the aliases used in older recordings'
// notes ("rectangle", "trapezoid", "parabolic").
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "midpoint", "rectangle", "":
		return Midpoint, nil
	case "trapezoidal", "trapezoid":
		return Trapezoidal, nil
	case "simpson", "parabolic":
		return Simpson, nil
	}
	return Midpoint, newError("parse rule", ErrInvalidParameter, "unknown integration rule %q", s)
}

// MinCount is the smallest input window the rule can integrate.
func (r Rule) MinCount() int {
	switch r {
	case Trapezoidal:
		return 2
	case Simpson:
		return 3
	default:
		return 1
	}
}

// OutputLen is the length of one integration pass over count samples.
func (r Rule) OutputLen(count int) int {
	n := count - r.MinCount() + 1
	if n < 0 {
		return 0
	}
	return n
}

func (r Rule) increment(s []r3.Vec, i int, dt float64) r3.Vec {
	switch r {
	case Trapezoidal:
		return r3.Scale(dt/2, r3.Add(s[i], s[i+1]))
	case Simpson:
		return r3.Scale(dt/3, r3.Add(r3.Add(s[i], r3.Scale(4, s[i+1])), s[i+2]))
	default:
		return r3.Scale(dt, s[i])
	}
}

// IntegrateOnce runs one quadrature pass over series[start : start+count]
// and returns the running integral, one element per step.
func IntegrateOnce(series []r3.Vec, start, count, freq int, rule Rule) ([]r3.Vec, error) {
	if _, ok := ruleNames[rule]; !ok {
		return nil, newError("integrate", ErrInvalidParameter, "unknown rule %v", rule)
	}
	if freq <= 0 {
		return nil, newError("integrate", ErrInvalidParameter, "sample frequency %d", freq)
	}
	if start < 0 {
		return nil, newError("integrate", ErrInsufficientSamples, "negative start %d", start)
	}
	if count < rule.MinCount() {
		return nil, newError("integrate", ErrInsufficientSamples, "%s rule needs %d samples, got %d", rule, rule.MinCount(), count)
	}
	if start+count > len(series) {
		return nil, newError("integrate", ErrInsufficientSamples, "range [%d, %d) exceeds %d samples", start, start+count, len(series))
	}

	dt := 1.0 / float64(freq)
	out := make([]r3.Vec, rule.OutputLen(count))
	var sum r3.Vec
	for k := range out {
		sum = r3.Add(sum, rule.increment(series, start+k, dt))
		out[k] = sum
	}
	return out, nil
}

// DoubleMinCount is the smallest window DoubleIntegrate accepts: the second
// pass runs over the shorter velocity series, so it needs 2*MinCount-1
// samples. The result then has OutputLen(OutputLen(count)) elements.
func (r Rule) DoubleMinCount() int {
	return 2*r.MinCount() - 1
}

// DoubleIntegrate applies rule twice: acceleration to velocity over
// series[start : start+count], then velocity to displacement over the whole
// velocity series. Element 0 of the result belongs to the first integration
// step, i.e. sample start.
func DoubleIntegrate(series []r3.Vec, start, count, freq int, rule Rule) ([]r3.Vec, error) {
	velocity, err := IntegrateOnce(series, start, count, freq, rule)
	if err != nil {
		return nil, err
	}
	if count < rule.DoubleMinCount() {
		return nil, newError("integrate", ErrInsufficientSamples,
			"%s rule needs %d samples for two passes, got %d", rule, rule.DoubleMinCount(), count)
	}
	return IntegrateOnce(velocity, 0, len(velocity), freq, rule)
}

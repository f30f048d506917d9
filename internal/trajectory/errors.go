// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package trajectory

import (
	"errors"
	"fmt"
)

// Precondition classes. Every error returned by this package wraps exactly
// one of them, so callers can branch with errors.Is.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrLengthMismatch      = errors.New("sequence lengths do not match")
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrDegenerateGeometry  = errors.New("degenerate geometry")
)

// Error reports which operation rejected its input and why.
type Error struct {
	Op     string // operation, e.g. "integrate"
	Kind   error  // one of the Err* sentinels
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("trajectory: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("trajectory: %s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

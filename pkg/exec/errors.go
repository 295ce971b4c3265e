package exec

import (
	"context"
	"errors"
)

// ErrRecovered wraps panics recovered out of caller-supplied mapper and
// reducer bodies.
var ErrRecovered = errors.New("recovered from caller function")

// ErrEmptyInput is returned by chain-style folds that need at least one
// element to seed the accumulator.
var ErrEmptyInput = errors.New("empty input")

// IsDeadlineError classifies errors raised by mapper bodies that observe
// their own context expiring.
func IsDeadlineError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// IsRecovered reports whether err originated as a panic in caller code.
func IsRecovered(err error) bool {
	return errors.Is(err, ErrRecovered)
}

package safecall

import (
	"context"
	"fmt"

	"github.com/red-jade/exa-core/pkg/exec"
)

// Call wraps a one-argument caller function so that every outcome becomes a
// Result: a normal return yields Ok, a returned error yields Error, a panic
// is recovered and yields Error wrapping exec.ErrRecovered. Nothing ever
// propagates past the wrapper. No retries.
func Call[In, Out any](f func(ctx context.Context, in In) (Out, error)) func(ctx context.Context, in In) exec.Result[Out] {
	return func(ctx context.Context, in In) (res exec.Result[Out]) {
		defer func() {
			if r := recover(); r != nil {
				res = exec.Fail[Out](fmt.Errorf("%w: %v", exec.ErrRecovered, r))
			}
		}()

		out, err := f(ctx, in)
		if err != nil {
			return exec.Fail[Out](err)
		}
		return exec.Ok(out)
	}
}

// Call2 is the two-argument form used for reducers.
func Call2[A, B, Out any](f func(ctx context.Context, a A, b B) (Out, error)) func(ctx context.Context, a A, b B) exec.Result[Out] {
	return func(ctx context.Context, a A, b B) (res exec.Result[Out]) {
		defer func() {
			if r := recover(); r != nil {
				res = exec.Fail[Out](fmt.Errorf("%w: %v", exec.ErrRecovered, r))
			}
		}()

		out, err := f(ctx, a, b)
		if err != nil {
			return exec.Fail[Out](err)
		}
		return exec.Ok(out)
	}
}

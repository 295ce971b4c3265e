package coop

import (
	"context"
	"time"

	"github.com/red-jade/exa-core/pkg/exec"
	"github.com/red-jade/exa-core/pkg/exec/mailbox"
	"github.com/red-jade/exa-core/pkg/exec/safecall"
)

// Step is a reducer's continue/halt decision for ReduceWhile.
type Step[Acc any] struct {
	acc  Acc
	halt bool
}

// Continue folds acc and moves to the next element.
func Continue[Acc any](acc Acc) Step[Acc] {
	return Step[Acc]{acc: acc}
}

// Halt ends the fold early with acc as the final Ok value.
func Halt[Acc any](acc Acc) Step[Acc] {
	return Step[Acc]{acc: acc, halt: true}
}

// deadline arms the one-shot self-addressed timeout signal for one run.
// The fresh token scopes the signal so cleanup is a single purge.
type deadline struct {
	box   *mailbox.Inbox[struct{}]
	tok   mailbox.Token
	timer *mailbox.Handle
}

func armDeadline(timeout time.Duration) deadline {
	d := deadline{
		box: mailbox.NewInbox[struct{}](),
		tok: mailbox.NewToken(),
	}
	if timeout <= 0 {
		// zero budget means immediate timeout; no timer to race
		d.box.Send(mailbox.NewPid(), d.tok, struct{}{})
		return d
	}
	d.timer = mailbox.SendAfter(d.box, d.tok, struct{}{}, timeout)
	return d
}

// hit polls the deadline signal without blocking.
func (d deadline) hit() bool {
	_, ok := d.box.TryReceive(mailbox.For[struct{}](d.tok))
	return ok
}

func (d deadline) disarm() {
	if d.timer != nil {
		d.timer.Terminate()
	}
	d.box.Purge(mailbox.For[struct{}](d.tok))
}

// Map applies mapper to each element in the calling goroutine, checking the
// deadline before every step. One pass, no element processed twice; elapsed
// time may overshoot timeout by at most one element's processing cost.
func Map[In, Out any](ctx context.Context, input []In,
	mapper func(ctx context.Context, in In) (Out, error),
	timeout time.Duration) exec.Result[[]Out] {

	d := armDeadline(timeout)
	safe := safecall.Call(mapper)

	out := make([]Out, 0, len(input))
	for _, in := range input {
		if d.hit() || ctx.Err() != nil {
			d.disarm()
			return exec.TimeoutWith(out)
		}

		res := safe(ctx, in)
		if !res.IsOk() {
			d.disarm()
			return exec.Fail[[]Out](res.Err())
		}
		out = append(out, res.Value())
	}

	d.disarm()
	return exec.Ok(out)
}

// Reduce folds input into init, checking the deadline before every step.
func Reduce[In, Acc any](ctx context.Context, input []In, init Acc,
	reducer func(ctx context.Context, in In, acc Acc) (Acc, error),
	timeout time.Duration) exec.Result[Acc] {

	d := armDeadline(timeout)
	safe := safecall.Call2(reducer)

	acc := init
	for _, in := range input {
		if d.hit() || ctx.Err() != nil {
			d.disarm()
			return exec.TimeoutWith(acc)
		}

		res := safe(ctx, in, acc)
		if !res.IsOk() {
			d.disarm()
			return exec.Fail[Acc](res.Err())
		}
		acc = res.Value()
	}

	d.disarm()
	return exec.Ok(acc)
}

// ReduceWhile folds like Reduce but the reducer may Halt for an early Ok
// exit before the input is exhausted. Deadline cleanup is identical.
func ReduceWhile[In, Acc any](ctx context.Context, input []In, init Acc,
	reducer func(ctx context.Context, in In, acc Acc) (Step[Acc], error),
	timeout time.Duration) exec.Result[Acc] {

	d := armDeadline(timeout)
	safe := safecall.Call2(reducer)

	acc := init
	for _, in := range input {
		if d.hit() || ctx.Err() != nil {
			d.disarm()
			return exec.TimeoutWith(acc)
		}

		res := safe(ctx, in, acc)
		if !res.IsOk() {
			d.disarm()
			return exec.Fail[Acc](res.Err())
		}

		step := res.Value()
		acc = step.acc
		if step.halt {
			break
		}
	}

	d.disarm()
	return exec.Ok(acc)
}

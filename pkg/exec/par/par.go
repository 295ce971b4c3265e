package par

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/red-jade/exa-core/pkg/exec"
	"github.com/red-jade/exa-core/pkg/exec/clock"
	"github.com/red-jade/exa-core/pkg/exec/core"
	"github.com/red-jade/exa-core/pkg/exec/mailbox"
	"github.com/red-jade/exa-core/pkg/exec/safecall"
)

// minBudget is the smallest remaining budget worth waiting on; below it the
// batch times out immediately.
const minBudget = time.Millisecond

// batch owns one parallel invocation: its token, its inbox, the worker
// handles in spawn order, and the stopwatch the budget shrinks against.
type batch[Out any] struct {
	box     *mailbox.Inbox[exec.Result[Out]]
	tok     mailbox.Token
	handles []*mailbox.Handle
	sw      clock.Stopwatch
	cancel  context.CancelFunc
	log     logrus.FieldLogger
}

// launch spawns one worker per element. Every element gets its own
// goroutine and handle; a semaphore sized from the ctx worker options gates
// how many mapper bodies execute at once. Fire-and-forget: the caller
// bounds input size.
func launch[In, Out any](ctx context.Context, input []In,
	mapper func(ctx context.Context, in In) (Out, error)) *batch[Out] {

	b := &batch[Out]{
		box: mailbox.NewInbox[exec.Result[Out]](),
		tok: mailbox.NewToken(),
		sw:  clock.Start(clock.System()),
		log: core.GetLogger(ctx),
	}

	gateCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	maxWorkers := int64(core.GetWorkerMaxCount(ctx, core.DefaultWorkerMaxCount()))
	gate := semaphore.NewWeighted(maxWorkers)
	safe := safecall.Call(mapper)

	b.handles = make([]*mailbox.Handle, 0, len(input))
	for in := range core.ToChanMany(ctx, input) {
		in := in
		h := mailbox.Spawn(b.box, b.tok, func(stop <-chan struct{}) (exec.Result[Out], bool) {
			if err := gate.Acquire(gateCtx, 1); err != nil {
				return exec.Result[Out]{}, false
			}
			defer gate.Release(1)

			select {
			case <-stop:
				return exec.Result[Out]{}, false
			default:
			}
			return safe(ctx, in), true
		})
		b.handles = append(b.handles, h)
	}

	b.log.WithFields(logrus.Fields{
		"batch":   b.tok.String(),
		"workers": len(b.handles),
		"cap":     maxWorkers,
	}).Debug("batch launched")

	return b
}

// abandon terminates every worker from index from on and purges the batch's
// queued replies in one pass. Best-effort: a reply racing termination may
// land after the purge, bounded to one extra discarded message per worker.
func (b *batch[Out]) abandon(from int) {
	for _, h := range b.handles[from:] {
		h.Terminate()
	}
	b.cancel()
	purged := b.box.Purge(mailbox.For[exec.Result[Out]](b.tok))

	b.log.WithFields(logrus.Fields{
		"batch":      b.tok.String(),
		"terminated": len(b.handles) - from,
		"purged":     purged,
	}).Debug("batch abandoned")
}

// finish releases batch resources after every reply was consumed.
func (b *batch[Out]) finish() {
	b.cancel()
	b.box.Purge(mailbox.For[exec.Result[Out]](b.tok))
}

// collect folds worker replies strictly in spawn order from index start,
// each wait bounded by the remaining budget. reduce must already be
// safecall-wrapped.
func collect[Out, Acc any](ctx context.Context, b *batch[Out], start int, init Acc,
	reduce func(ctx context.Context, out Out, acc Acc) exec.Result[Acc],
	timeout time.Duration) exec.Result[Acc] {

	acc := init
	for i := start; i < len(b.handles); i++ {
		remaining := b.sw.Remaining(timeout)
		if remaining < minBudget || ctx.Err() != nil {
			b.abandon(i)
			return exec.TimeoutWith(acc)
		}

		h := b.handles[i]
		reply := b.box.Receive(ctx, mailbox.FromFor[exec.Result[Out]](h.Pid(), b.tok), remaining)
		if reply.IsTimeout() {
			b.abandon(i)
			return exec.TimeoutWith(acc)
		}

		mapped := reply.Value()
		if !mapped.IsOk() {
			b.abandon(i + 1)
			return exec.Fail[Acc](mapped.Err())
		}

		folded := reduce(ctx, mapped.Value(), acc)
		if !folded.IsOk() {
			b.abandon(i + 1)
			return exec.Fail[Acc](folded.Err())
		}
		acc = folded.Value()
	}

	b.finish()

	// complete but late: every reply arrived, yet the budget is spent.
	// A cancelled context also lands here when it cut the spawn feed short.
	if b.sw.Expired(timeout) || ctx.Err() != nil {
		return exec.TimeoutWith(acc)
	}
	return exec.Ok(acc)
}

// MapReduce spawns one worker per element, folds replies into init in input
// order under a shrinking budget, and returns Ok(final), Error(first cause)
// or Timeout(partial). One attempt per element, no retries.
func MapReduce[In, Out, Acc any](ctx context.Context, input []In, init Acc,
	mapper func(ctx context.Context, in In) (Out, error),
	reducer func(ctx context.Context, out Out, acc Acc) (Acc, error),
	timeout time.Duration) exec.Result[Acc] {

	b := launch(ctx, input, mapper)
	return collect(ctx, b, 0, init, safecall.Call2(reducer), timeout)
}

// Map is MapReduce with an append reducer: the Ok value holds one mapped
// output per input element, in input order; a Timeout partial holds the
// prefix whose replies arrived in budget.
func Map[In, Out any](ctx context.Context, input []In,
	mapper func(ctx context.Context, in In) (Out, error),
	timeout time.Duration) exec.Result[[]Out] {

	return MapReduce(ctx, input, make([]Out, 0, len(input)), mapper,
		func(ctx context.Context, out Out, acc []Out) ([]Out, error) {
			return append(acc, out), nil
		}, timeout)
}

// MapChain folds like MapReduce but seeds the accumulator from the first
// worker's mapped value, consuming that worker's share of the budget.
// Empty input has no seed and returns Error(ErrEmptyInput).
func MapChain[In, Out any](ctx context.Context, input []In,
	mapper func(ctx context.Context, in In) (Out, error),
	reducer func(ctx context.Context, out Out, acc Out) (Out, error),
	timeout time.Duration) exec.Result[Out] {

	if len(input) == 0 {
		return exec.Fail[Out](exec.ErrEmptyInput)
	}

	b := launch(ctx, input, mapper)

	remaining := b.sw.Remaining(timeout)
	if remaining < minBudget || ctx.Err() != nil {
		b.abandon(0)
		return exec.Timeout[Out]()
	}

	seed := b.box.Receive(ctx, mailbox.FromFor[exec.Result[Out]](b.handles[0].Pid(), b.tok), remaining)
	if seed.IsTimeout() {
		b.abandon(0)
		return exec.Timeout[Out]()
	}

	first := seed.Value()
	if !first.IsOk() {
		b.abandon(1)
		return exec.Fail[Out](first.Err())
	}

	return collect(ctx, b, 1, first.Value(), safecall.Call2(reducer), timeout)
}

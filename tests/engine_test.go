package tests

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/red-jade/exa-core/pkg/exec/coop"
	"github.com/red-jade/exa-core/pkg/exec/core"
	"github.com/red-jade/exa-core/pkg/exec/par"
)

// TestBothRunnersMatchSequentialFold checks that under an ample budget the
// parallel and cooperative runners agree with a plain sequential fold.
func TestBothRunnersMatchSequentialFold(t *testing.T) {
	input := make([]int, 50)
	for i := range input {
		input[i] = i + 1
	}

	sequential := 0
	for _, x := range input {
		sequential += x * x
	}

	ctx := context.Background()
	square := func(ctx context.Context, x int) (int, error) { return x * x, nil }
	sum := func(ctx context.Context, x, acc int) (int, error) { return acc + x, nil }

	p := par.MapReduce(ctx, input, 0, square, sum, 5*time.Second)
	assert.True(t, p.IsOk())
	assert.Equal(t, sequential, p.Value())

	c := coop.Reduce(ctx, input, 0, func(ctx context.Context, x, acc int) (int, error) {
		return acc + x*x, nil
	}, 5*time.Second)
	assert.True(t, c.IsOk())
	assert.Equal(t, sequential, c.Value())
}

// TestErrorShortCircuit mirrors the raise-at-50 scenario: the first error
// wins and nothing after it contributes.
func TestErrorShortCircuit(t *testing.T) {
	input := make([]int, 100)
	for i := range input {
		input[i] = i + 1
	}

	out := par.MapReduce(context.Background(), input, 0,
		func(ctx context.Context, x int) (int, error) {
			if x == 50 {
				return 0, errors.New("boom")
			}
			return x, nil
		},
		func(ctx context.Context, x, acc int) (int, error) { return acc + x, nil },
		5*time.Second)

	assert.True(t, out.IsError())
	assert.EqualError(t, out.Err(), "boom")
}

// TestSlowMapTimesOutWithPartial mirrors the tmap-over-huge-input scenario.
func TestSlowMapTimesOutWithPartial(t *testing.T) {
	input := make([]int, 1_000_000)
	for i := range input {
		input[i] = i
	}

	out := coop.Map(context.Background(), input, func(ctx context.Context, x int) (int, error) {
		time.Sleep(time.Millisecond)
		return x + 1, nil
	}, 50*time.Millisecond)

	assert.True(t, out.IsTimeout())
	partial, ok := out.Partial()
	assert.True(t, ok)
	assert.Less(t, len(partial), len(input))
}

// TestShrinkingBudgetTendency: for a fixed workload, a generous budget
// completes and a starved one does not.
func TestShrinkingBudgetTendency(t *testing.T) {
	input := []int{1, 2, 3, 4}
	slow := func(ctx context.Context, x int) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return x, nil
	}
	sum := func(ctx context.Context, x, acc int) (int, error) { return acc + x, nil }

	ctx := core.WithWorkerOptions(context.Background(), 1)

	generous := par.MapReduce(ctx, input, 0, slow, sum, 5*time.Second)
	assert.True(t, generous.IsOk())
	assert.Equal(t, 10, generous.Value())

	starved := par.MapReduce(ctx, input, 0, slow, sum, 30*time.Millisecond)
	assert.True(t, starved.IsTimeout())
	partial, _ := starved.Partial()
	assert.Less(t, partial, 10)
}

// TestLifecycleLoggingStaysOutOfTheWay: an installed logger must not change
// outcomes, and debug output goes wherever the caller pointed it.
func TestLifecycleLoggingStaysOutOfTheWay(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	ctx := core.WithLogger(context.Background(), logger)

	out := par.Map(ctx, []int{1, 2, 3}, func(ctx context.Context, x int) (int, error) {
		return x * 2, nil
	}, time.Second)

	assert.True(t, out.IsOk())
	assert.Equal(t, []int{2, 4, 6}, out.Value())
}

// TestChainAcrossRunners: a parallel chain seeding from its first worker,
// then a cooperative early-exit search over the result.
func TestChainAcrossRunners(t *testing.T) {
	ctx := context.Background()

	chained := par.MapChain(ctx, []int{5, 6, 7},
		func(ctx context.Context, x int) (int, error) { return x * 10, nil },
		func(ctx context.Context, x, acc int) (int, error) { return acc + x, nil },
		time.Second)
	assert.True(t, chained.IsOk())
	assert.Equal(t, 180, chained.Value())

	found := coop.ReduceWhile(ctx, []int{10, 20, 180, 40}, 0,
		func(ctx context.Context, x, acc int) (coop.Step[int], error) {
			if x == chained.Value() {
				return coop.Halt(x), nil
			}
			return coop.Continue(acc), nil
		}, time.Second)
	assert.True(t, found.IsOk())
	assert.Equal(t, 180, found.Value())
}

package exec

import (
	"time"

	"github.com/google/uuid"
)

// Result is the three-way outcome of a bounded call: Ok carries the final
// value, Error carries the cause raised by caller-supplied code, Timeout
// carries the partial accumulator folded before the deadline (or no partial
// at all for one-shot calls).
type Result[T any] struct {
	id         uuid.UUID
	createdAt  time.Time
	value      T
	err        error
	isOk       bool
	isTimeout  bool
	hasPartial bool
}

func Ok[T any](v T) Result[T] {
	return Result[T]{
		value:     v,
		err:       nil,
		isOk:      true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isOk:      false,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Timeout reports a deadline hit with nothing salvaged.
func Timeout[T any]() Result[T] {
	return Result[T]{
		isTimeout: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// TimeoutWith reports a deadline hit and carries the accumulator folded so
// far. The partial reflects exactly the replies consumed before the budget
// ran out, never more.
func TimeoutWith[T any](partial T) Result[T] {
	return Result[T]{
		value:      partial,
		isTimeout:  true,
		hasPartial: true,
		createdAt:  time.Now().UTC(),
		id:         uuid.New(),
	}
}

// FailFrom carries an error outcome across a type boundary.
func FailFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isOk:      false,
		isTimeout: from.isTimeout,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

func (r Result[T]) Value() T {
	return r.value
}

// Partial returns the accumulator carried by a timeout outcome; the second
// return is false when the timeout salvaged nothing.
func (r Result[T]) Partial() (T, bool) {
	return r.value, r.hasPartial
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsOk() bool {
	return r.isOk
}

func (r Result[T]) IsError() bool {
	return !r.isOk && !r.isTimeout
}

func (r Result[T]) IsTimeout() bool {
	return r.isTimeout
}

func (r Result[T]) HasPartial() bool {
	return r.hasPartial
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

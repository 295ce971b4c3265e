// Package coop runs map/reduce/reduce-while strictly in the calling
// goroutine under a wall-clock deadline. The deadline is a one-shot
// self-addressed timer signal polled non-blockingly before each element, so
// cancellation is voluntary: a currently-running element is never
// interrupted, and elapsed time may overshoot by at most one element.
//
// Outcomes:
// - Ok(final): input exhausted (or a ReduceWhile reducer halted early)
// - Error(cause): caller code returned an error or panicked; first error wins
// - Timeout(partial): the deadline fired; partial holds the fold so far
package coop

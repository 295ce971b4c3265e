// Package exec defines the three-way Result[T] outcome shared by the
// bounded-time runners: Ok for complete calls, Error for failures raised in
// caller-supplied code, and Timeout for calls that ran out of budget,
// optionally carrying the partial accumulator folded before the deadline.
//
// Key operations:
// - Ok/Fail/Timeout/TimeoutWith: construct Result[T]
// - Value/Partial/Err: read the outcome
// - IsOk/IsError/IsTimeout/HasPartial: branch on the outcome
// - IsDeadlineError/IsRecovered: classify causes
//
// The runners themselves live in coop (single-threaded, deadline polled
// between steps) and par (one worker per element, in-order collection under
// a shrinking budget).
package exec

// Package clock provides the monotonic time source behind deadline budgets.
//
// Stopwatch fixes a start reading and answers Elapsed, Remaining (clamped to
// zero) and Expired against it. Manual is a hand-advanced clock for
// deterministic tests.
package clock

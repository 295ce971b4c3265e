// Package par runs a mapper concurrently over a batch of elements and folds
// the replies under a hard wall-clock budget.
//
// One worker is spawned per element, all tagged with one fresh correlation
// token. Replies are collected strictly in spawn order: worker i's reply is
// awaited, keyed to its Pid and the batch token, before worker i+1's is
// requested, each wait bounded by the remaining budget. On the first error
// or an exhausted budget the remaining workers are terminated and the
// batch's queued replies purged in one pass.
//
// Concurrently executing mapper bodies are capped (core.WithWorkerOptions,
// default NumCPU) while keeping a goroutine and handle per element;
// terminated workers still waiting on the cap never run. A cancelled
// calling context acts as an immediate deadline: it stops the spawn feed,
// unblocks any in-progress wait, and the batch reports Timeout.
//
// Outcomes:
// - Ok(final): every reply folded within budget
// - Error(cause): a mapper or reducer failed; later workers are cut off
// - Timeout(partial): budget spent; partial folds exactly the replies that
//   arrived in time — a batch whose last reply folds after the budget is
//   still reported as Timeout, with the complete accumulator attached
package par

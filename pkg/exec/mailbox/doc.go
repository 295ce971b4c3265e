// Package mailbox provides correlation-scoped message plumbing between a
// calling goroutine and the workers it spawns.
//
// A Token groups every message of one batch; a Pid identifies one worker;
// the Inbox is the caller's queue with selective receive. Receive blocks
// under a timeout and only consumes messages matching its Match pattern,
// leaving everything else queued. Purge discards all queued matches in one
// non-blocking pass, which is how a whole batch is cleaned up after its
// workers are terminated.
//
// Terminate and delivery race by design: a message posted just before
// termination may arrive after the following Purge. The window is bounded
// (at worst one extra discarded message) and a delivery can never be
// mismatched, because every receive is keyed by Pid and Token.
package mailbox

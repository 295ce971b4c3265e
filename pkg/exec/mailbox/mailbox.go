package mailbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/red-jade/exa-core/pkg/exec"
)

// Token is an opaque correlation id. One token groups every message of one
// batch so the whole batch can be purged in a single pass.
type Token struct {
	id uuid.UUID
}

// NewToken returns a token unequal to all prior tokens for the lifetime of
// the process.
func NewToken() Token {
	return Token{id: uuid.New()}
}

func (t Token) String() string {
	return t.id.String()
}

// Pid identifies one spawned worker.
type Pid struct {
	id uuid.UUID
}

func NewPid() Pid {
	return Pid{id: uuid.New()}
}

func (p Pid) String() string {
	return p.id.String()
}

// Message is one queued delivery: who sent it, which batch it belongs to,
// and the payload.
type Message[T any] struct {
	From    Pid
	Token   Token
	Payload T
}

// Match selects messages by sender, by token, by both, or by a payload
// predicate. The zero value matches every message.
type Match[T any] struct {
	from    *Pid
	token   *Token
	payload func(T) bool
}

func Any[T any]() Match[T] {
	return Match[T]{}
}

func From[T any](p Pid) Match[T] {
	return Match[T]{from: &p}
}

func For[T any](tok Token) Match[T] {
	return Match[T]{token: &tok}
}

func FromFor[T any](p Pid, tok Token) Match[T] {
	return Match[T]{from: &p, token: &tok}
}

func Where[T any](pred func(T) bool) Match[T] {
	return Match[T]{payload: pred}
}

func (m Match[T]) matches(msg Message[T]) bool {
	if m.from != nil && *m.from != msg.From {
		return false
	}
	if m.token != nil && *m.token != msg.Token {
		return false
	}
	if m.payload != nil && !m.payload(msg.Payload) {
		return false
	}
	return true
}

// Inbox is the calling goroutine's mailbox: a FIFO queue with selective,
// match-scoped receive. Non-matching messages are left queued untouched.
type Inbox[T any] struct {
	mu      sync.Mutex
	queue   []Message[T]
	arrived chan struct{}
}

func NewInbox[T any]() *Inbox[T] {
	return &Inbox[T]{arrived: make(chan struct{})}
}

// Send is non-blocking fire-and-forget delivery.
func (b *Inbox[T]) Send(from Pid, tok Token, payload T) {
	b.mu.Lock()
	b.queue = append(b.queue, Message[T]{From: from, Token: tok, Payload: payload})
	close(b.arrived)
	b.arrived = make(chan struct{})
	b.mu.Unlock()
}

// take removes and returns the first queued message matching m.
func (b *Inbox[T]) take(m Match[T]) (Message[T], <-chan struct{}, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, msg := range b.queue {
		if m.matches(msg) {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			return msg, nil, true
		}
	}
	return Message[T]{}, b.arrived, false
}

// Receive blocks until a message matching m arrives, timeout elapses, or
// ctx expires; context expiry reports the same Timeout outcome so a caller
// never waits out a budget it no longer has. Among matching messages the
// oldest wins.
func (b *Inbox[T]) Receive(ctx context.Context, m Match[T], timeout time.Duration) exec.Result[T] {
	if timeout <= 0 {
		if payload, ok := b.TryReceive(m); ok {
			return exec.Ok(payload)
		}
		return exec.Timeout[T]()
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		msg, arrived, ok := b.take(m)
		if ok {
			return exec.Ok(msg.Payload)
		}

		select {
		case <-arrived:
		case <-deadline.C:
			return exec.Timeout[T]()
		case <-ctx.Done():
			return exec.Timeout[T]()
		}
	}
}

// TryReceive is the non-blocking form of Receive.
func (b *Inbox[T]) TryReceive(m Match[T]) (T, bool) {
	msg, _, ok := b.take(m)
	return msg.Payload, ok
}

// Purge discards every currently queued message matching m and returns the
// count removed. It never blocks and never waits for in-flight sends.
func (b *Inbox[T]) Purge(m Match[T]) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.queue[:0]
	removed := 0
	for _, msg := range b.queue {
		if m.matches(msg) {
			removed++
			continue
		}
		kept = append(kept, msg)
	}
	b.queue = kept
	return removed
}

// Pending reports the number of queued messages.
func (b *Inbox[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

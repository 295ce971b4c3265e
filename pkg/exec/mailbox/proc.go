package mailbox

import (
	"sync"
	"time"
)

// Handle identifies one outstanding worker: its Pid paired with the batch
// Token. The spawner owns the handle until the worker's reply is consumed or
// the worker is terminated.
type Handle struct {
	pid  Pid
	tok  Token
	stop chan struct{}
	once sync.Once
}

func (h *Handle) Pid() Pid {
	return h.pid
}

func (h *Handle) Token() Token {
	return h.tok
}

// Terminate asks the worker to stop, best-effort and asynchronous: a reply
// already in flight may still land afterward. Idempotent.
func (h *Handle) Terminate() {
	h.once.Do(func() { close(h.stop) })
}

// Stopped is closed once Terminate has been called.
func (h *Handle) Stopped() <-chan struct{} {
	return h.stop
}

// Spawn starts one worker goroutine. The body computes a payload; when it
// reports post=true the payload is delivered to box tagged (pid, tok),
// unless the handle was terminated first. Termination cannot interrupt a
// body already running, it only suppresses the delivery; a delivery racing
// Terminate may still slip through, which the caller bounds with Purge.
func Spawn[T any](box *Inbox[T], tok Token, body func(stop <-chan struct{}) (T, bool)) *Handle {
	h := &Handle{
		pid:  NewPid(),
		tok:  tok,
		stop: make(chan struct{}),
	}

	go func() {
		payload, post := body(h.stop)
		if !post {
			return
		}
		select {
		case <-h.stop:
		default:
			box.Send(h.pid, tok, payload)
		}
	}()

	return h
}

// SendAfter arms a one-shot timer that posts payload to box tagged with tok
// after d, unless terminated first. Used for self-addressed deadline
// signals.
func SendAfter[T any](box *Inbox[T], tok Token, payload T, d time.Duration) *Handle {
	return Spawn(box, tok, func(stop <-chan struct{}) (T, bool) {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			return payload, true
		case <-stop:
			var zero T
			return zero, false
		}
	})
}

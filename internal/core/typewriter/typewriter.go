// Package typewriter implements the incremental reveal of assistant
// replies: a cancellable scheduled task that emits a strictly growing
// prefix of the text into a render sink at a fixed cadence.
package typewriter

import (
	"sync"
	"time"
)

// DefaultInterval matches the pacing of the web client's reveal.
const DefaultInterval = 20 * time.Millisecond

// Sink receives reveal frames. Callbacks run with the renderer's
// internal lock held; a sink must not call back into the Renderer.
type Sink interface {
	// WriteReveal delivers the prefix revealed so far.
	WriteReveal(prefix string)
	// RevealDone signals that the full text has been revealed.
	RevealDone(full string)
}

// Renderer schedules reveals. Each reveal is bound to a per-sink
// generation counter; cancelling or starting a new reveal on the same
// sink bumps the counter, and the stale task aborts before its next
// write. The counter is monotonic for the life of the sink, so a stale
// task can never mistake a later reveal's generation for its own.
// Reveals on distinct sinks are independent.
type Renderer struct {
	mu       sync.Mutex
	interval time.Duration
	states   map[Sink]*sinkState
}

type sinkState struct {
	gen    int
	active bool
}

// New creates a renderer that advances one rune per interval.
func New(interval time.Duration) *Renderer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Renderer{
		interval: interval,
		states:   make(map[Sink]*sinkState),
	}
}

// Reveal starts revealing text into sink. An in-flight reveal on the
// same sink is cancelled first; its timer stops advancing and it writes
// nothing further. Reveal returns immediately.
func (r *Renderer) Reveal(text string, sink Sink) {
	r.mu.Lock()
	st, ok := r.states[sink]
	if !ok {
		st = &sinkState{}
		r.states[sink] = st
	}
	st.gen++
	st.active = true
	gen := st.gen
	r.mu.Unlock()

	go r.run(text, sink, gen)
}

// Cancel stops any in-flight reveal on sink. It is synchronous and
// idempotent: once it returns, the sink sees no further writes.
func (r *Renderer) Cancel(sink Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[sink]; ok && st.active {
		st.gen++
		st.active = false
	}
}

// Revealing reports whether a reveal is currently in flight for sink.
// A cancelled reveal is no longer in flight.
func (r *Renderer) Revealing(sink Sink) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[sink]
	return ok && st.active
}

func (r *Renderer) run(text string, sink Sink, gen int) {
	runes := []rune(text)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for i := 1; i <= len(runes); i++ {
		<-ticker.C
		r.mu.Lock()
		if st := r.states[sink]; st == nil || st.gen != gen {
			// Superseded or cancelled; never touch the sink again.
			r.mu.Unlock()
			return
		}
		sink.WriteReveal(string(runes[:i]))
		r.mu.Unlock()
	}

	r.mu.Lock()
	st := r.states[sink]
	if st == nil || st.gen != gen {
		r.mu.Unlock()
		return
	}
	st.active = false
	sink.RevealDone(text)
	r.mu.Unlock()
}

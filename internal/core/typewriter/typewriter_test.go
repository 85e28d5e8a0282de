package typewriter

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSink captures every frame written to it.
type recordSink struct {
	mu     sync.Mutex
	frames []string
	done   chan string
}

func newRecordSink() *recordSink {
	return &recordSink{done: make(chan string, 1)}
}

func (s *recordSink) WriteReveal(prefix string) {
	s.mu.Lock()
	s.frames = append(s.frames, prefix)
	s.mu.Unlock()
}

func (s *recordSink) RevealDone(full string) {
	s.done <- full
}

func (s *recordSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.frames...)
}

func waitDone(t *testing.T, s *recordSink) string {
	t.Helper()
	select {
	case full := <-s.done:
		return full
	case <-time.After(5 * time.Second):
		t.Fatal("reveal never completed")
		return ""
	}
}

func TestRevealEmitsStrictlyGrowingPrefixes(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	const text = "hello, you"
	r.Reveal(text, sink)
	full := waitDone(t, sink)
	assert.Equal(t, text, full)

	frames := sink.snapshot()
	require.NotEmpty(t, frames)
	assert.Equal(t, text, frames[len(frames)-1])
	for i, frame := range frames {
		assert.True(t, strings.HasPrefix(text, frame), "frame %d is not a prefix: %q", i, frame)
		if i > 0 {
			assert.Greater(t, len(frame), len(frames[i-1]), "frame %d did not grow", i)
		}
	}
	assert.False(t, r.Revealing(sink))
}

func TestSecondRevealSupersedesFirst(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	textA := strings.Repeat("a", 200)
	const textB = "short and sweet"

	r.Reveal(textA, sink)
	time.Sleep(5 * time.Millisecond)
	r.Reveal(textB, sink)

	full := waitDone(t, sink)
	assert.Equal(t, textB, full)

	frames := sink.snapshot()
	assert.Equal(t, textB, frames[len(frames)-1], "sink must end with exactly the second text")
	// Once B frames start, no A frame may follow.
	sawB := false
	for _, frame := range frames {
		if strings.HasPrefix(textB, frame) && !strings.HasPrefix(textA, frame) {
			sawB = true
			continue
		}
		if sawB {
			t.Fatalf("frame from superseded reveal after new reveal began: %q", frame)
		}
	}
}

func TestCancelStopsWritesSynchronously(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	r.Reveal(strings.Repeat("x", 500), sink)
	time.Sleep(5 * time.Millisecond)
	r.Cancel(sink)

	n := len(sink.snapshot())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, len(sink.snapshot()), "writes continued after Cancel returned")

	select {
	case <-sink.done:
		t.Fatal("cancelled reveal reported completion")
	default:
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	r.Cancel(sink) // nothing in flight
	r.Reveal("ok", sink)
	waitDone(t, sink)
	r.Cancel(sink)
	r.Cancel(sink)
}

func TestRevealingClearsAfterCancel(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	r.Reveal(strings.Repeat("y", 500), sink)
	assert.True(t, r.Revealing(sink))
	r.Cancel(sink)
	assert.False(t, r.Revealing(sink), "cancelled reveal still reported in flight")

	// The sink stays usable after a cancel.
	r.Reveal("again", sink)
	assert.True(t, r.Revealing(sink))
	assert.Equal(t, "again", waitDone(t, sink))
	assert.False(t, r.Revealing(sink))
}

func TestIndependentSinksDoNotBlockEachOther(t *testing.T) {
	r := New(time.Millisecond)
	a, b := newRecordSink(), newRecordSink()

	r.Reveal("first sink", a)
	r.Reveal("second sink", b)

	assert.Equal(t, "first sink", waitDone(t, a))
	assert.Equal(t, "second sink", waitDone(t, b))
}

func TestEmptyTextCompletesImmediately(t *testing.T) {
	r := New(time.Millisecond)
	sink := newRecordSink()

	r.Reveal("", sink)
	assert.Equal(t, "", waitDone(t, sink))
	assert.Empty(t, sink.snapshot())
}

package devnotify

import (
	"log/slog"
	"sync"
	"sync/atomic"

	events "github.com/docker/go-events"
)

// chanSink delivers events to a buffered channel without blocking. Events
// that do not fit are dropped.
type chanSink struct {
	log *slog.Logger

	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func newChanSink(size int, log *slog.Logger) *chanSink {
	return &chanSink{ch: make(chan Event, size), log: log}
}

func (s *chanSink) Write(e events.Event) error {
	ev, ok := e.(Event)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return events.ErrSinkClosed
	}
	select {
	case s.ch <- ev:
	default:
		s.log.Warn("subscriber full, dropping event", "kind", ev.Kind, "path", ev.Path)
	}
	return nil
}

func (s *chanSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return events.ErrSinkClosed
	}
	s.closed = true
	close(s.ch)
	return nil
}

// funcSink calls fn for every event. Stamped events reach fn only while
// gate accepts their generation.
type funcSink struct {
	fn   func(Event)
	gate func(gen uint64) bool
}

func (s *funcSink) Write(e events.Event) error {
	switch ev := e.(type) {
	case Event:
		s.fn(ev)
	case stamped:
		if s.gate == nil || s.gate(ev.gen) {
			s.fn(ev.ev)
		}
	}
	return nil
}

func (s *funcSink) Close() error { return nil }

// callbackSink hands events to fn on a queue goroutine of its own, so a
// callback that blocks or calls back into the Listener never stalls the
// broadcaster. Each event is stamped with the listener generation when it
// enters the queue and dropped on the way out if Stop has run since.
type callbackSink struct {
	gen    *atomic.Uint64
	q      *events.Queue
	closed atomic.Bool
}

type stamped struct {
	gen uint64
	ev  Event
}

func newCallbackSink(gen *atomic.Uint64, fn func(Event)) *callbackSink {
	s := &callbackSink{gen: gen}
	s.q = events.NewQueue(&funcSink{fn: fn, gate: s.current})
	return s
}

func (s *callbackSink) current(gen uint64) bool {
	return !s.closed.Load() && gen == s.gen.Load()
}

func (s *callbackSink) Write(e events.Event) error {
	ev, ok := e.(Event)
	if !ok || s.closed.Load() {
		return nil
	}
	return s.q.Write(stamped{gen: s.gen.Load(), ev: ev})
}

// Close stops delivery at once. The queue drains in the background since
// Close may run on the queue's own goroutine.
func (s *callbackSink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	go func() { _ = s.q.Close() }()
	return nil
}

// kindMatcher selects events of one kind.
func kindMatcher(k EventKind) events.Matcher {
	return events.MatcherFunc(func(e events.Event) bool {
		ev, ok := e.(Event)
		return ok && ev.Kind == k
	})
}

// barrier is never added to a broadcaster. Removing it returns once every
// event written before the call has reached all sinks.
var barrier events.Sink = &funcSink{fn: func(Event) {}}

package devnotify

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Microsoft/go-winio/pkg/guid"
	events "github.com/docker/go-events"

	"github.com/joshuapare/pnpkit/internal/logger"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// State is the lifecycle state of a Listener.
type State int32

const (
	Stopped State = iota
	Starting
	Listening
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Listening:
		return "listening"
	case Stopping:
		return "stopping"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Listener delivers interface notifications for one class at a time.
type Listener struct {
	source  Source
	log     *slog.Logger
	bufSize int
	b       *events.Broadcaster

	// mu serializes Start, Stop and Close.
	mu    sync.Mutex
	state atomic.Int32
	run   *run
	// gen advances on every Stop; callback deliveries stamped with an
	// older generation are dropped.
	gen atomic.Uint64
}

// run is one Start..Stop cycle of the pump.
type run struct {
	class    guid.GUID
	session  Session
	stopping atomic.Bool
	done     chan struct{}
	err      error
}

// New creates a stopped Listener.
func New(opts ...Option) *Listener {
	l := &Listener{bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(l)
	}
	if l.source == nil {
		l.source = nativeSource()
	}
	l.b = events.NewBroadcaster()
	return l
}

func (l *Listener) logger() *slog.Logger { return logger.Or(l.log) }

// State returns the current lifecycle state.
func (l *Listener) State() State { return State(l.state.Load()) }

func (l *Listener) setState(s State) {
	old := State(l.state.Swap(int32(s)))
	l.logger().Info("listener state", "from", old, "to", s)
}

// Start registers for notifications of class and begins delivering events.
// It returns once the registration has succeeded or failed.
func (l *Listener) Start(class guid.GUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State() != Stopped {
		return types.ErrAlreadyStarted
	}
	l.setState(Starting)

	r := &run{class: class, done: make(chan struct{})}
	ready := make(chan error, 1)
	go l.pump(r, ready)
	if err := <-ready; err != nil {
		<-r.done
		l.setState(Stopped)
		return types.Registration(err)
	}
	l.run = r
	l.setState(Listening)
	return nil
}

// Stop ends delivery and releases the registration. It is a no-op on a
// stopped listener. It returns any error the session reported while running
// or closing.
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.State() == Stopped {
		return nil
	}
	l.setState(Stopping)

	r := l.run
	r.stopping.Store(true)
	select {
	case <-r.done:
	default:
		r.session.Wake()
		<-r.done
	}
	// Events already handed to the broadcaster must land before Stop returns.
	_ = l.b.Remove(barrier)
	l.gen.Add(1)

	l.run = nil
	l.setState(Stopped)
	return r.err
}

// Close stops the listener and closes every subscription channel. The
// listener cannot be used afterwards.
func (l *Listener) Close() error {
	err := l.Stop()
	if cerr := l.b.Close(); cerr != nil && err == nil && cerr != events.ErrSinkClosed {
		err = cerr
	}
	return err
}

// Subscribe returns a channel receiving every event and a function that
// cancels the subscription and closes the channel.
func (l *Listener) Subscribe() (<-chan Event, func()) {
	s := newChanSink(l.bufSize, l.logger())
	if err := l.b.Add(s); err != nil {
		_ = s.Close()
		return s.ch, func() {}
	}
	var once sync.Once
	return s.ch, func() {
		once.Do(func() {
			_ = l.b.Remove(s)
			_ = s.Close()
		})
	}
}

// OnArrival calls fn for every arrival until the returned function is
// called. Callbacks for one registration run in order on a goroutine of
// their own and may call Stop or Close. Arrivals not yet handed to fn when
// Stop returns are discarded.
func (l *Listener) OnArrival(fn func(Event)) func() {
	return l.on(Arrival, fn)
}

// OnRemoval calls fn for every removal until the returned function is
// called.
func (l *Listener) OnRemoval(fn func(Event)) func() {
	return l.on(Removal, fn)
}

func (l *Listener) on(k EventKind, fn func(Event)) func() {
	cb := newCallbackSink(&l.gen, fn)
	s := events.NewFilter(cb, kindMatcher(k))
	if err := l.b.Add(s); err != nil {
		_ = cb.Close()
		return func() {}
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			_ = l.b.Remove(s)
			_ = cb.Close()
		})
	}
}

// pump owns the session for the lifetime of r. The session is opened, run
// and closed on one locked OS thread, as window messages require.
func (l *Listener) pump(r *run, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.done)

	sess, err := l.source.Open(r.class)
	if err != nil {
		l.logger().Warn("notification registration failed", "class", r.class, "err", err)
		ready <- err
		return
	}
	r.session = sess
	ready <- nil

	runErr := sess.Run(func(wparam uintptr, data []byte) {
		if r.stopping.Load() {
			return
		}
		ev, ok := ParseBroadcast(wparam, data)
		if !ok {
			return
		}
		l.logger().Debug("device notification", "kind", ev.Kind, "path", ev.Path)
		if err := l.b.Write(ev); err != nil {
			l.logger().Warn("dropping device notification", "path", ev.Path, "err", err)
		}
	})
	if runErr != nil {
		l.logger().Error("notification pump failed", "class", r.class, "err", runErr)
	}
	if err := sess.Close(); err != nil && runErr == nil {
		runErr = err
	}
	r.err = runErr
}

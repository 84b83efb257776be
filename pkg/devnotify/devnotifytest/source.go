// Package devnotifytest provides a scripted devnotify.Source for tests.
package devnotifytest

import (
	"errors"
	"sync"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/devnotify"
)

// Source hands out sessions that deliver injected broadcasts.
type Source struct {
	mu       sync.Mutex
	openErr  error
	sessions []*Session
}

var _ devnotify.Source = (*Source)(nil)

// New returns an empty Source.
func New() *Source { return &Source{} }

// FailOpen makes subsequent Open calls fail with err; nil clears it.
func (s *Source) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

func (s *Source) Open(class guid.GUID) (devnotify.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	sess := &Session{
		Class: class,
		in:    make(chan broadcast),
		wake:  make(chan struct{}),
	}
	s.sessions = append(s.sessions, sess)
	return sess, nil
}

// Opens returns how many sessions were opened.
func (s *Source) Opens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Last returns the most recently opened session, or nil.
func (s *Source) Last() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) == 0 {
		return nil
	}
	return s.sessions[len(s.sessions)-1]
}

// Arrive injects an arrival of path into the last session.
func (s *Source) Arrive(path string) error {
	return s.Send(devnotify.Event{Kind: devnotify.Arrival, Path: path})
}

// Remove injects a removal of path into the last session.
func (s *Source) Remove(path string) error {
	return s.Send(devnotify.Event{Kind: devnotify.Removal, Path: path})
}

// Send encodes ev with the session's class and injects it.
func (s *Source) Send(ev devnotify.Event) error {
	sess := s.Last()
	if sess == nil {
		return ErrNoSession
	}
	ev.Class = sess.Class
	wparam, data := devnotify.EncodeBroadcast(ev)
	return sess.Broadcast(wparam, data)
}

// ErrNoSession is returned when injecting into a session that is not running.
var ErrNoSession = errors.New("devnotifytest: no running session")

type broadcast struct {
	wparam uintptr
	data   []byte
	done   chan struct{}
}

// Session is a fake registration.
type Session struct {
	Class guid.GUID

	in       chan broadcast
	wake     chan struct{}
	wakeOnce sync.Once

	mu     sync.Mutex
	closed bool
}

// Broadcast hands a raw notification to Run and waits until it has been
// delivered.
func (s *Session) Broadcast(wparam uintptr, data []byte) error {
	b := broadcast{wparam: wparam, data: data, done: make(chan struct{})}
	select {
	case s.in <- b:
	case <-s.wake:
		return ErrNoSession
	}
	<-b.done
	return nil
}

func (s *Session) Run(deliver func(wparam uintptr, data []byte)) error {
	for {
		select {
		case b := <-s.in:
			deliver(b.wparam, b.data)
			close(b.done)
		case <-s.wake:
			return nil
		}
	}
}

func (s *Session) Wake() {
	s.wakeOnce.Do(func() { close(s.wake) })
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether the listener released the session.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

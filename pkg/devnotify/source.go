package devnotify

import "github.com/Microsoft/go-winio/pkg/guid"

// Source opens notification sessions. Open, Session.Run and Session.Close
// are always called from the same locked OS thread.
type Source interface {
	// Open registers for interface notifications of class.
	Open(class guid.GUID) (Session, error)
}

// Session is one live registration.
type Session interface {
	// Run dispatches broadcasts to deliver until Wake is called.
	Run(deliver func(wparam uintptr, data []byte)) error
	// Wake makes Run return. It may be called from any goroutine, before
	// or during Run.
	Wake()
	// Close releases the registration.
	Close() error
}

package devnotify

import "log/slog"

const defaultBufferSize = 16

// Option configures a Listener.
type Option func(*Listener)

// WithSource sets where notifications come from. The default is the
// running system.
func WithSource(s Source) Option {
	return func(l *Listener) {
		l.source = s
	}
}

// WithLogger sets the listener's logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Listener) {
		l.log = log
	}
}

// WithBufferSize sets the channel capacity of each subscription.
func WithBufferSize(n int) Option {
	return func(l *Listener) {
		if n > 0 {
			l.bufSize = n
		}
	}
}

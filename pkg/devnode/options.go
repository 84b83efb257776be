package devnode

import "log/slog"

// Option configures a Locator.
type Option func(*Locator)

// WithPlatform sets the native boundary used for every call. When not
// provided, the Locator uses the configuration manager of the running OS.
func WithPlatform(p Platform) Option {
	return func(l *Locator) {
		l.platform = p
	}
}

// WithLogger sets the logger for platform call tracing. When not provided,
// the process-wide logger is used.
func WithLogger(log *slog.Logger) Option {
	return func(l *Locator) {
		l.log = log
	}
}

// Package log is the logger contract of the tokactl SDK.
//
// [lib.Config] takes any [Logger], and falls back to [Noop] when it's not set.
// Reservations and polling loops log at info and debug level, device and
// suite failures at error level. A logrus based adapter looks like:
//
//	type logrusLogger struct{ *logrus.Entry }
//
//	func (l logrusLogger) Infof(format string, args ...any)    { l.Entry.Infof(format, args...) }
//	func (l logrusLogger) Warningf(format string, args ...any) { l.Entry.Warningf(format, args...) }
//	func (l logrusLogger) Errorf(format string, args ...any)   { l.Entry.Errorf(format, args...) }
//	func (l logrusLogger) Debugf(format string, args ...any)   { l.Entry.Debugf(format, args...) }
//	func (l logrusLogger) WithValues(kv log.Kv) log.Logger {
//	    return logrusLogger{l.Entry.WithFields(logrus.Fields(kv))}
//	}
package log

import "github.com/slok/tokactl/internal/log"

// Logger receives the SDK log lines. WithValues scopes a logger with
// key-values, e.g the sandbox name or the controller request id.
type Logger = log.Logger

// Kv are the key-values passed to [Logger.WithValues].
type Kv = log.Kv

// Noop discards everything.
var Noop = log.Noop

// Package log is flake's structured logging facade.
//
// # Overview
//
// Components log through the Logger interface using leveled methods and
// Field values. The implementation sits on log/slog: every BaseLogger owns a
// slog.Logger whose handler routes records into a Formatter (text or JSON)
// and a set of Outputs (console, file, null, any io.Writer).
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("ids"))
//	l.Info("generator ready", log.Int64("datacenter", 1), log.Int64("machine", 1))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config. RedactKeys hides
// sensitive values (the server redacts "password"); Sampling thins out
// repeated messages.
//
// # Interop
//
// ToStdLogger and RedirectStdLog route *log.Logger output (Pebble, net/http)
// through a Logger.
package log

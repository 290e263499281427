// Package log provides structured logging for uidreg components.
//
// Loggers are explicit instances passed by dependency injection; there is no
// process-wide default. Records flow through a slog bridge handler into a
// Formatter (text or JSON) and one or more Outputs.
//
// Usage:
//
//	logger := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	logger.Info("uid issued", log.Str("category", "specimen"), log.Str("key", "SAMPLE_001"))
//
// RedirectStdLog routes standard-library log output (used by Pebble) through
// the same pipeline.
package log

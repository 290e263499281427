// Package serverrun starts the uidreg HTTP server and blocks until the
// context is cancelled. It owns process concerns: signal handling, the
// process-wide logger, and graceful shutdown ordering (server first, then
// the runtime/store).
package serverrun

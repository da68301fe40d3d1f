// Package logging wraps log/slog with the handlers and attribute helpers the
// synthesis pipeline uses everywhere.
//
// Key entry points:
//   - New: builds a logger from Options (console or JSON output)
//   - NewNop: returns a logger that discards everything, for tests and nil guards
//   - NewComponentLogger: stamps a component attribute on a child logger
//
// The console handler colorizes only when writing to a terminal. Attribute
// helpers (String, Int, Error, ...) exist so call sites never import slog
// directly.
package logging

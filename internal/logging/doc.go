// Package logging assembles structured slog loggers and formatting helpers used
// across panosort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, stamps every record with the run identifier, and provides a no-op
// logger for tests and wiring code that cannot fail. Console notices meant for
// the operator (matches, skips, the summary) are not logs and are written by
// the scanner directly to stdout.
package logging

// Package logging assembles structured slog loggers used across jobtrack.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and tags every line with the emitting component so store and
// engine activity can be traced after the fact. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging

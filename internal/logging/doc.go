// Package logging assembles the structured slog loggers used across
// subweave.
//
// It owns level and output plumbing, the console/JSON handler choice, typed
// attribute helpers, and a no-op logger for tests and for the core
// packages' warn-and-continue policy, where a caller that wants silence
// passes nil and gets the no-op.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same shape.
package logging

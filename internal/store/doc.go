// Package store persists subtitle timelines in SQLite.
//
// The reconciliation core treats a timeline as a value owned by its caller;
// this package is that caller's durable home for the value between runs. A
// file lock taken on Open enforces the single-writer rule the core leaves to
// callers: two processes merging into the same timeline database is a
// mistake, and it surfaces here as a lock error rather than as corrupted
// timelines.
package store

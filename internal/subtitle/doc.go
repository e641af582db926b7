// Package subtitle defines the core data model shared by every stage of the
// reconciliation pipeline: the timestamped Record, the Segment window used by
// the mergers, and ordering helpers.
//
// Records are plain values. Every transform in subweave copies its input and
// returns a new slice; nothing in this package or its consumers retains a
// reference across calls, which keeps the pipeline functions pure and
// trivially testable.
package subtitle

// Package config loads, validates, and normalizes subweave's TOML
// configuration.
//
// Besides logging and storage settings it owns the reconciliation
// thresholds. Those numbers are empirically tuned heuristics; they are
// surfaced here as configuration precisely so nobody re-derives them, since
// their exact values are what the timeline invariants were tested against.
package config

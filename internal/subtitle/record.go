package subtitle

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Record is one subtitle cue. Start and End are seconds. IDs are sequential
// within a list and are not stable across re-parses; use StableKey when a
// content-derived identity is needed.
type Record struct {
	ID    int
	Start float64
	End   float64
	Text  string

	// OriginalID links a translated record back to the prior-pass record it
	// was derived from. Zero means no lineage.
	OriginalID int

	// Language tags translated text with a normalized BCP 47 tag. Empty for
	// transcription output.
	Language string
}

// Duration returns the record's length in seconds.
func (r Record) Duration() float64 {
	return r.End - r.Start
}

// Segment describes the sub-range of a timeline that a (re)generation pass
// covers. Only the mergers consume it.
type Segment struct {
	Start float64
	End   float64
}

// StableKey derives a content-based identity for a record so callers can
// correlate cues across re-parses, where sequential IDs shift. It hashes
// start, end, and text; two distinct records sharing all three collide.
// That is a documented limitation, not a bug to fix silently: stored
// references depend on the current hash.
func StableKey(r Record) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.3f|%.3f|%s", r.Start, r.End, r.Text)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Clone returns a deep copy of the list.
func Clone(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// SortByStart sorts the list ascending by start time, stable so that records
// sharing a start keep their relative order.
func SortByStart(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start < records[j].Start
	})
}

// ReassignIDs renumbers the list sequentially from 1 in place and returns it.
// Parsers number their own output; after any merge or split the caller
// re-derives IDs through this helper.
func ReassignIDs(records []Record) []Record {
	for i := range records {
		records[i].ID = i + 1
	}
	return records
}

// HasText reports whether the record carries non-whitespace text.
func (r Record) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

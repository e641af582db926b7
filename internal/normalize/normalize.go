package normalize

import (
	"strings"

	"subweave/internal/subtitle"
)

// Options carries the repair thresholds. The values are empirically tuned
// and load-bearing: the overlap and gap policies below are heuristics whose
// exact numbers the rest of the system depends on, so they are configuration,
// not derivation.
type Options struct {
	// MinDurationTrigger is the duration below which a record is repaired.
	MinDurationTrigger float64
	// RepairedDuration is the exact duration a repaired record receives.
	RepairedDuration float64
	// GapCloseWindow is the largest gap between adjacent records that gets
	// closed.
	GapCloseWindow float64
	// SameTextMergeGap is the largest gap across which consecutive
	// identical-text records merge into one.
	SameTextMergeGap float64
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MinDurationTrigger: 0.3,
		RepairedDuration:   0.5,
		GapCloseWindow:     0.1,
		SameTextMergeGap:   0.3,
	}
}

// maxPasses bounds the fixed-point loop. Each pass only shrinks or locks
// boundaries, so convergence is fast; the bound is a safety net.
const maxPasses = 8

// Apply normalizes a subtitle list. The input is not mutated. The output
// satisfies the timeline invariants: ascending starts, no overlaps, every
// duration positive, no empty text, and sequential ids.
func Apply(records []subtitle.Record, opts Options) []subtitle.Record {
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	current := subtitle.Clone(records)
	for pass := 0; pass < maxPasses; pass++ {
		next := onePass(current, opts)
		if equalTimelines(next, current) {
			current = next
			break
		}
		current = next
	}
	return subtitle.ReassignIDs(current)
}

func onePass(records []subtitle.Record, opts Options) []subtitle.Record {
	out := dropInvalid(records)
	clampShort(out, opts)
	subtitle.SortByStart(out)
	resolveOverlaps(out, opts)
	closeGaps(out, opts)
	return mergeSameTextRuns(out, opts)
}

// dropInvalid removes zero-duration and empty-text records. Records created
// with identical start and end carry no usable timing and are discarded, not
// repaired.
func dropInvalid(records []subtitle.Record) []subtitle.Record {
	out := make([]subtitle.Record, 0, len(records))
	for _, r := range records {
		if r.Start == r.End {
			continue
		}
		if !r.HasText() {
			continue
		}
		r.Text = strings.TrimSpace(r.Text)
		out = append(out, r)
	}
	return out
}

// clampShort extends any record shorter than the trigger to exactly the
// repaired duration.
func clampShort(records []subtitle.Record, opts Options) {
	for i := range records {
		if records[i].Duration() < opts.MinDurationTrigger {
			records[i].End = records[i].Start + opts.RepairedDuration
		}
	}
}

// resolveOverlaps walks adjacent pairs left to right. Same text merges into
// the earlier record; differing text splits the contested region at its
// midpoint.
func resolveOverlaps(records []subtitle.Record, opts Options) {
	for i := 0; i+1 < len(records); i++ {
		current := &records[i]
		next := &records[i+1]
		if next.Start >= current.End {
			continue
		}
		if current.Text == next.Text {
			if next.End > current.End {
				current.End = next.End
			}
			// Collapse the duplicate; the same-text merge pass sweeps the
			// now zero-length record away via dropInvalid on the next pass.
			next.Start = current.End
			next.End = current.End
			continue
		}
		mid := (current.End + next.Start) / 2
		current.End = mid
		next.Start = mid
	}
}

// closeGaps removes hairline gaps between adjacent records: the later record
// is pulled back when the text matches, otherwise the earlier one is pushed
// forward.
func closeGaps(records []subtitle.Record, opts Options) {
	for i := 0; i+1 < len(records); i++ {
		gap := records[i+1].Start - records[i].End
		if gap <= 0 || gap >= opts.GapCloseWindow {
			continue
		}
		if records[i].Text == records[i+1].Text {
			records[i+1].Start = records[i].End
		} else {
			records[i].End = records[i+1].Start
		}
	}
}

// mergeSameTextRuns merges runs of consecutive identical-text records whose
// gaps stay under the merge window into a single record spanning the run.
func mergeSameTextRuns(records []subtitle.Record, opts Options) []subtitle.Record {
	if len(records) == 0 {
		return records
	}
	out := make([]subtitle.Record, 0, len(records))
	out = append(out, records[0])
	for _, r := range records[1:] {
		last := &out[len(out)-1]
		if r.Text == last.Text && r.Start-last.End < opts.SameTextMergeGap {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func equalTimelines(a, b []subtitle.Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start != b[i].Start || a[i].End != b[i].End || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

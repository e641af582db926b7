package merge

import (
	"subweave/internal/subtitle"
)

// Segment replaces the portion of existing covered by seg with fresh.
// Records fully outside [seg.Start, seg.End) survive unchanged; records
// straddling a boundary are clamped to the outside edge; a record spanning
// the whole window splits into a left and a right remainder; records fully
// inside are dropped. The fresh records are inserted verbatim. The result is
// sorted with sequential ids; inputs are not mutated.
func Segment(existing, fresh []subtitle.Record, seg subtitle.Segment) []subtitle.Record {
	out := carve(existing, seg.Start, seg.End)
	out = append(out, subtitle.Clone(fresh)...)
	subtitle.SortByStart(out)
	return subtitle.ReassignIDs(out)
}

// Progressive merges partial streaming results. Only the window prefix the
// stream has reached is replaced: the high-water mark is the maximum end
// among fresh, clamped to seg.End so progress in one segment can never erase
// another. Existing records between the mark and seg.End are previous-pass
// content not yet superseded and are kept as-is.
func Progressive(existing, fresh []subtitle.Record, seg subtitle.Segment) []subtitle.Record {
	mark := seg.Start
	for _, r := range fresh {
		if r.End > mark {
			mark = r.End
		}
	}
	if mark > seg.End {
		mark = seg.End
	}

	out := carve(existing, seg.Start, mark)
	out = append(out, subtitle.Clone(fresh)...)
	subtitle.SortByStart(out)
	return subtitle.ReassignIDs(out)
}

// carve removes the [from, to) window from the timeline, clamping records
// that straddle a boundary and splitting any record that spans the whole
// window. Zero-length remainders are discarded.
func carve(records []subtitle.Record, from, to float64) []subtitle.Record {
	if to <= from {
		// Empty window; nothing is superseded.
		return subtitle.Clone(records)
	}
	out := make([]subtitle.Record, 0, len(records))
	for _, r := range records {
		switch {
		case r.End <= from || r.Start >= to:
			out = append(out, r)
		case r.Start < from && r.End > to:
			left := r
			left.End = from
			right := r
			right.Start = to
			out = append(out, left, right)
		case r.Start < from:
			r.End = from
			if r.End > r.Start {
				out = append(out, r)
			}
		case r.End > to:
			r.Start = to
			if r.End > r.Start {
				out = append(out, r)
			}
		default:
			// Fully inside the window; superseded.
		}
	}
	return out
}

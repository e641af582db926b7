package merge

import (
	"testing"

	"subweave/internal/subtitle"
)

func rec(start, end float64, text string) subtitle.Record {
	return subtitle.Record{Start: start, End: end, Text: text}
}

func assertTimeline(t *testing.T, got []subtitle.Record, want []subtitle.Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Start != want[i].Start || got[i].End != want[i].End || got[i].Text != want[i].Text {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
		if got[i].ID != i+1 {
			t.Fatalf("record %d has id %d", i, got[i].ID)
		}
	}
}

func TestSegmentClampsBoundariesAndReplacesInterior(t *testing.T) {
	existing := []subtitle.Record{
		rec(0, 10, "A"), rec(10, 20, "B"), rec(20, 30, "C"), rec(30, 40, "D"),
	}
	fresh := []subtitle.Record{rec(15, 25, "X"), rec(25, 35, "Y")}

	got := Segment(existing, fresh, subtitle.Segment{Start: 15, End: 35})
	assertTimeline(t, got, []subtitle.Record{
		rec(0, 10, "A"), rec(10, 15, "B"), rec(15, 25, "X"), rec(25, 35, "Y"), rec(35, 40, "D"),
	})
}

func TestSegmentSplitsRecordSpanningWholeWindow(t *testing.T) {
	existing := []subtitle.Record{rec(0, 100, "long")}
	fresh := []subtitle.Record{rec(40, 50, "new")}

	got := Segment(existing, fresh, subtitle.Segment{Start: 30, End: 60})
	assertTimeline(t, got, []subtitle.Record{
		rec(0, 30, "long"), rec(40, 50, "new"), rec(60, 100, "long"),
	})
}

func TestSegmentDoesNotMutateInputs(t *testing.T) {
	existing := []subtitle.Record{rec(10, 20, "B")}
	fresh := []subtitle.Record{rec(15, 18, "X")}
	Segment(existing, fresh, subtitle.Segment{Start: 15, End: 35})
	if existing[0].End != 20 {
		t.Fatalf("existing input mutated: %+v", existing[0])
	}
	if fresh[0].ID != 0 {
		t.Fatalf("fresh input mutated: %+v", fresh[0])
	}
}

func TestSegmentKeepsRecordsTouchingTheEdge(t *testing.T) {
	existing := []subtitle.Record{rec(0, 15, "ends at start"), rec(35, 40, "starts at end")}
	got := Segment(existing, nil, subtitle.Segment{Start: 15, End: 35})
	assertTimeline(t, got, existing)
}

func TestProgressiveReplacesOnlyReceivedPrefix(t *testing.T) {
	existing := []subtitle.Record{
		rec(0, 10, "A"), rec(10, 20, "B"), rec(20, 30, "C"), rec(30, 40, "D"),
	}
	// Stream for segment 10-40 has only produced up to t=25 so far.
	fresh := []subtitle.Record{rec(10, 18, "X"), rec(18, 25, "Y")}

	got := Progressive(existing, fresh, subtitle.Segment{Start: 10, End: 40})
	assertTimeline(t, got, []subtitle.Record{
		rec(0, 10, "A"), rec(10, 18, "X"), rec(18, 25, "Y"), rec(25, 30, "C"), rec(30, 40, "D"),
	})
}

func TestProgressiveHighWaterMarkClampedToSegmentEnd(t *testing.T) {
	existing := []subtitle.Record{rec(0, 10, "A"), rec(40, 50, "outside")}
	// Fresh overshoots the segment; the overshoot must not erase content
	// past seg.End.
	fresh := []subtitle.Record{rec(10, 45, "X")}

	got := Progressive(existing, fresh, subtitle.Segment{Start: 10, End: 40})
	assertTimeline(t, got, []subtitle.Record{
		rec(0, 10, "A"), rec(10, 45, "X"), rec(40, 50, "outside"),
	})
}

func TestProgressiveWithNoFreshKeepsEverything(t *testing.T) {
	existing := []subtitle.Record{rec(0, 10, "A"), rec(10, 20, "B")}
	got := Progressive(existing, nil, subtitle.Segment{Start: 5, End: 20})
	assertTimeline(t, got, existing)
}

func TestProgressiveClampsStraddlerAtMark(t *testing.T) {
	existing := []subtitle.Record{rec(0, 10, "A"), rec(12, 30, "old")}
	fresh := []subtitle.Record{rec(10, 20, "X")}

	got := Progressive(existing, fresh, subtitle.Segment{Start: 10, End: 40})
	assertTimeline(t, got, []subtitle.Record{
		rec(0, 10, "A"), rec(10, 20, "X"), rec(20, 30, "old"),
	})
}

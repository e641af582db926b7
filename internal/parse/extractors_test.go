package parse

import (
	"errors"
	"testing"

	"subweave/internal/subtitle"
)

func TestRangeWithMillis(t *testing.T) {
	text := "[ 00m00s000ms - 00m01s500ms ] Hello there\n[00m02s000ms - 00m04s250ms] Second line"
	records := RangeWithMillis(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Start != 0 || records[0].End != 1.5 || records[0].Text != "Hello there" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Start != 2 || records[1].End != 4.25 || records[1].Text != "Second line" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Fatalf("expected sequential ids, got %d and %d", records[0].ID, records[1].ID)
	}
}

func TestRangeWithoutMillis(t *testing.T) {
	records := RangeWithoutMillis("[0m5s - 0m9s] No milliseconds here")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Start != 5 || records[0].End != 9 {
		t.Fatalf("unexpected timing: %+v", records[0])
	}
}

func TestSingleTimestampInference(t *testing.T) {
	records := SingleTimestamp("[0m0s] A\n[0m5s] B\n[0m8s] C")
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []struct {
		start, end float64
		text       string
	}{
		{0, 5, "A"},
		{5, 8, "B"},
		{8, 13, "C"},
	}
	for i, w := range want {
		if records[i].Start != w.start || records[i].End != w.end || records[i].Text != w.text {
			t.Fatalf("record %d = %+v, want %+v", i, records[i], w)
		}
	}
}

func TestSingleTimestampCapsLongGaps(t *testing.T) {
	records := SingleTimestamp("[0m0s] A\n[0m30s] B")
	if records[0].End != TailSeconds {
		t.Fatalf("expected long gap capped at %v, got end %v", TailSeconds, records[0].End)
	}
}

func TestSpacedBracket(t *testing.T) {
	records := SpacedBracket("[ 0m 2s - 0m 4s 500ms ] Spaced out")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Start != 2 || records[0].End != 4.5 {
		t.Fatalf("unexpected timing: %+v", records[0])
	}
}

func TestSpacedBracketFallsBackToTighterDialects(t *testing.T) {
	records := SpacedBracket("[0m0s] Lone timestamp")
	if len(records) != 1 || records[0].Text != "Lone timestamp" {
		t.Fatalf("expected single-timestamp fallback, got %+v", records)
	}
}

func TestLineFallback(t *testing.T) {
	text := "noise line\n[0m 1s - 0m 3s] Dialogue\nmore noise"
	records := LineFallback(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Start != 1 || records[0].End != 3 || records[0].Text != "Dialogue" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestExtractorsNeverErrorOnGarbage(t *testing.T) {
	for _, extract := range []func(string) []subtitle.Record{
		RangeWithMillis, RangeWithoutMillis, SingleTimestamp, SpacedBracket, LineFallback,
	} {
		if records := extract("complete nonsense with no timestamps"); len(records) != 0 {
			t.Fatalf("expected empty result for garbage, got %+v", records)
		}
	}
}

func TestResponseChainStopsAtFirstMatch(t *testing.T) {
	records, err := Response("[00m00s000ms - 00m01s000ms] Hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Text != "Hi" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestResponseChainRaisesUnrecognizedFormat(t *testing.T) {
	_, err := Response("nothing parseable")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsKind(err, KindUnrecognizedFormat) {
		t.Fatalf("expected unrecognized_format, got %v", err)
	}
	var parseErr *Error
	if !errors.As(err, &parseErr) || parseErr.Raw != "nothing parseable" {
		t.Fatalf("expected raw text on error, got %+v", parseErr)
	}
}

package split

import (
	"math"
	"strings"
	"testing"

	"subweave/internal/subtitle"
)

func TestWeight(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"one two three", 3},
		{"", 0},
		{"single", 1},
		{"今日はいい天気", 7},
		{"今日は、いい天気です。", 9}, // punctuation excluded
	}
	for _, tc := range cases {
		if got := Weight(tc.text); got != tc.want {
			t.Fatalf("Weight(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestAutoUnderBudgetIsUnchanged(t *testing.T) {
	record := subtitle.Record{ID: 3, Start: 1, End: 4, Text: "short enough line"}
	out := Auto(record, 5)
	if len(out) != 1 || out[0] != record {
		t.Fatalf("expected passthrough, got %+v", out)
	}
}

func TestAutoDistributesEvenly(t *testing.T) {
	words := make([]string, 12)
	for i := range words {
		words[i] = "w"
	}
	record := subtitle.Record{Start: 0, End: 12, Text: strings.Join(words, " ")}

	out := Auto(record, 5)
	if len(out) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(out))
	}
	for i, r := range out {
		if got := Weight(r.Text); got != 4 {
			t.Fatalf("chunk %d has %d words, want 4 (even distribution, not 5/5/2)", i, got)
		}
		if math.Abs(r.Duration()-4) > 1e-9 {
			t.Fatalf("chunk %d duration %v, want 4", i, r.Duration())
		}
	}
	if out[len(out)-1].End != record.End {
		t.Fatalf("expected final chunk to end exactly at %v, got %v", record.End, out[len(out)-1].End)
	}
}

func TestAutoChunksAreContiguous(t *testing.T) {
	record := subtitle.Record{Start: 2, End: 9.5, Text: strings.Repeat("word ", 13)}
	out := Auto(record, 4)
	if len(out) < 2 {
		t.Fatalf("expected a split, got %+v", out)
	}
	if out[0].Start != record.Start {
		t.Fatalf("first chunk starts at %v, want %v", out[0].Start, record.Start)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Start != out[i-1].End {
			t.Fatalf("chunks %d and %d not contiguous: %v vs %v", i-1, i, out[i-1].End, out[i].Start)
		}
	}
	if out[len(out)-1].End != record.End {
		t.Fatalf("last chunk ends at %v, want %v", out[len(out)-1].End, record.End)
	}
}

func TestAutoCJKPrefersPunctuationBoundary(t *testing.T) {
	// Weight 16; maxWeight 8 puts the ideal cut two runes past the comma.
	// The splitter should back up to the phrase boundary instead.
	record := subtitle.Record{Start: 0, End: 8, Text: "今日はいいね、散歩に行きましょうよ"}
	out := Auto(record, 8)
	if len(out) != 2 {
		t.Fatalf("expected 2 chunks, got %+v", out)
	}
	if !strings.HasSuffix(out[0].Text, "、") {
		t.Fatalf("expected first chunk to break at the phrase boundary, got %q", out[0].Text)
	}
	if out[1].End != record.End {
		t.Fatalf("expected exact final end, got %v", out[1].End)
	}
}

func TestAutoAllRenumbersAcrossWholeList(t *testing.T) {
	records := []subtitle.Record{
		{Start: 0, End: 6, Text: strings.Repeat("a ", 11) + "a"}, // 12 words
		{Start: 6, End: 8, Text: "stays whole"},
	}
	out := AutoAll(records, 6)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	for i, r := range out {
		if r.ID != i+1 {
			t.Fatalf("record %d has id %d", i, r.ID)
		}
	}
}

func TestAutoPreservesLineageFields(t *testing.T) {
	record := subtitle.Record{
		Start: 0, End: 4, Text: strings.Repeat("x ", 9) + "x",
		OriginalID: 7, Language: "fr",
	}
	for _, piece := range Auto(record, 5) {
		if piece.OriginalID != 7 || piece.Language != "fr" {
			t.Fatalf("lineage fields lost: %+v", piece)
		}
	}
}

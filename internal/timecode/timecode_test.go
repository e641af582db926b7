package timecode

import (
	"math"
	"testing"
)

func TestParseRecognizedEncodings(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"00m00s000ms", 0},
		{"01m05s250ms", 65.25},
		{"1m5s250ms", 65.25},
		{"start at 02m10s500ms please", 130.5},
		{"00:01:05.250", 65.25},
		{"01:00:00", 3600},
		{"1:05.250", 65.25},
		{"02:30", 150},
		{"1m 5s 250", 65.25}, // loose three-number fallback
	}
	for _, tc := range cases {
		got, ok := Parse(tc.input)
		if !ok {
			t.Fatalf("Parse(%q) did not match", tc.input)
		}
		if math.Abs(got-tc.want) > 0.0005 {
			t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "no numbers here", "12"} {
		if got, ok := Parse(input); ok {
			t.Fatalf("Parse(%q) unexpectedly matched with %v", input, got)
		}
	}
}

func TestParseOrZeroDefaultsToZero(t *testing.T) {
	if got := ParseOrZero("garbage", nil); got != 0 {
		t.Fatalf("expected 0 for unparseable input, got %v", got)
	}
}

func TestMarkerRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.5, 59.999, 3661.25} {
		formatted := FormatMarker(seconds)
		parsed, ok := Parse(formatted)
		if !ok {
			t.Fatalf("round trip failed to parse %q", formatted)
		}
		if math.Abs(parsed-seconds) > 0.0005 {
			t.Fatalf("round trip %v -> %q -> %v", seconds, formatted, parsed)
		}
	}
}

func TestFormatSRT(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{65.25, "00:01:05,250"},
		{3661.007, "01:01:01,007"},
		{-3, "00:00:00,000"},
		{math.NaN(), "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatSRT(tc.seconds); got != tc.want {
			t.Fatalf("FormatSRT(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatVTT(t *testing.T) {
	if got := FormatVTT(65.25); got != "00:01:05.250" {
		t.Fatalf("FormatVTT = %q", got)
	}
}

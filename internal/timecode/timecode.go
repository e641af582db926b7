package timecode

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	strictMarkerPattern = regexp.MustCompile(`^(\d{1,3})m(\d{1,2})s(\d{1,3})ms$`)
	looseMarkerPattern  = regexp.MustCompile(`(\d{1,3})m(\d{1,2})s(\d{1,3})ms`)
	clockPattern        = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2})(?:[.,](\d{1,3}))?$`)
	shortClockPattern   = regexp.MustCompile(`^(\d{1,3}):(\d{1,2})(?:[.,](\d{1,3}))?$`)
	threeNumberPattern  = regexp.MustCompile(`(\d+)\D+(\d+)\D+(\d+)`)
)

// Parse converts a textual timestamp to seconds. Recognized encodings, in
// priority order: exact "MMmSSsNNNms" (zero-padded or not), the same marker
// form anywhere inside the string, "HH:MM:SS[.mmm]", "MM:SS[.mmm]", and as a
// last resort any three numbers separated by non-digits, read as minutes,
// seconds, milliseconds. The second return value reports whether anything
// matched.
func Parse(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}

	// Models frequently hallucinate a zero marker at the very start of a
	// response; treat the canonical spelling as an exact zero.
	if trimmed == "00m00s000ms" {
		return 0, true
	}

	if m := strictMarkerPattern.FindStringSubmatch(trimmed); m != nil {
		return markerSeconds(m), true
	}
	if m := looseMarkerPattern.FindStringSubmatch(trimmed); m != nil {
		return markerSeconds(m), true
	}
	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		hours := atoi(m[1])
		minutes := atoi(m[2])
		seconds := atoi(m[3])
		return float64(hours*3600+minutes*60+seconds) + millisFraction(m[4]), true
	}
	if m := shortClockPattern.FindStringSubmatch(trimmed); m != nil {
		minutes := atoi(m[1])
		seconds := atoi(m[2])
		return float64(minutes*60+seconds) + millisFraction(m[3]), true
	}
	// Colon-separated strings were already handled above; applying the loose
	// fallback to them would misread clock times as minute markers.
	if !strings.Contains(trimmed, ":") {
		if m := threeNumberPattern.FindStringSubmatch(trimmed); m != nil {
			minutes := atoi(m[1])
			seconds := atoi(m[2])
			millis := atoi(m[3])
			return float64(minutes*60+seconds) + float64(millis)/1000, true
		}
	}
	return 0, false
}

// ParseOrZero is Parse with the non-fatal failure policy the parsers rely on:
// an unrecognized timestamp yields 0 and a warning through logger rather than
// an error, so one bad timestamp cannot abort a whole response. A nil logger
// suppresses the warning.
func ParseOrZero(value string, logger *slog.Logger) float64 {
	seconds, ok := Parse(value)
	if !ok && logger != nil {
		logger.Warn("unparseable timestamp, defaulting to 0", slog.String("value", value))
	}
	return seconds
}

func markerSeconds(m []string) float64 {
	minutes := atoi(m[1])
	seconds := atoi(m[2])
	millis := atoi(m[3])
	return float64(minutes*60+seconds) + float64(millis)/1000
}

func millisFraction(field string) float64 {
	if field == "" {
		return 0
	}
	// "5" means 500ms, "05" means 50ms.
	for len(field) < 3 {
		field += "0"
	}
	return float64(atoi(field)) / 1000
}

func atoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

// FormatSRT renders seconds as an SRT timestamp, "HH:MM:SS,mmm". Negative or
// non-finite input is clamped to zero.
func FormatSRT(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// FormatVTT renders seconds as a WebVTT timestamp, "HH:MM:SS.mmm".
func FormatVTT(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatMarker renders seconds in the "MMmSSsNNNms" minute-marker encoding
// the model prompt uses, the inverse of the primary Parse form.
func FormatMarker(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	minutes := totalMillis / 60000
	totalMillis %= 60000
	secs := totalMillis / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02dm%02ds%03dms", minutes, secs, millis)
}

func clockParts(seconds float64) (int64, int64, int64, int64) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	h := totalMillis / 3600000
	totalMillis %= 3600000
	m := totalMillis / 60000
	totalMillis %= 60000
	s := totalMillis / 1000
	ms := totalMillis % 1000
	return h, m, s, ms
}

package export

import (
	"fmt"
	"strconv"
	"strings"

	"subweave/internal/subtitle"
	"subweave/internal/timecode"
)

// RenderSRT serializes records as SRT: "id\nHH:MM:SS,mmm --> HH:MM:SS,mmm\ntext".
// The list is assumed normalized; ids are taken as-is.
func RenderSRT(records []subtitle.Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n",
			r.ID, timecode.FormatSRT(r.Start), timecode.FormatSRT(r.End), r.Text)
	}
	return b.String()
}

// ParseSRT reads SRT content into records. Malformed blocks are skipped, not
// fatal: a damaged cue should not abort an import of hundreds.
func ParseSRT(content string) []subtitle.Record {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return nil
	}

	var records []subtitle.Record
	for _, block := range strings.Split(trimmed, "\n\n") {
		if rec, ok := parseBlock(block); ok {
			rec.ID = len(records) + 1
			records = append(records, rec)
		}
	}
	return records
}

func parseBlock(block string) (subtitle.Record, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) == 0 {
		return subtitle.Record{}, false
	}

	start := 0
	if isNumeric(lines[start]) {
		start++
	}
	if start >= len(lines) || !strings.Contains(lines[start], "-->") {
		return subtitle.Record{}, false
	}

	parts := strings.Split(lines[start], "-->")
	if len(parts) != 2 {
		return subtitle.Record{}, false
	}
	startSeconds, okStart := parseSRTTimestamp(parts[0])
	endSeconds, okEnd := parseSRTTimestamp(parts[1])
	if !okStart || !okEnd {
		return subtitle.Record{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[start+1:], "\n"))
	if text == "" {
		return subtitle.Record{}, false
	}
	return subtitle.Record{Start: startSeconds, End: endSeconds, Text: text}, true
}

func parseSRTTimestamp(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	// SRT standard uses a comma before milliseconds; tolerate a period.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, false
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, false
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(hms[0]))
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, false
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, true
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}

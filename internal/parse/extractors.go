package parse

import (
	"regexp"
	"strings"

	"subweave/internal/subtitle"
	"subweave/internal/timecode"
)

// Single-timestamp entries carry weak duration information: the end of each
// entry is inferred from the next entry's start, and runaway gaps say more
// about silence than about how long a line stays on screen. These two
// constants are empirically tuned and load-bearing; change them and the
// inference examples in the tests change with them.
const (
	// TailSeconds is the duration assigned to the final single-timestamp
	// entry, which has no successor to infer an end from.
	TailSeconds = 5.0
	// MaxInferredGapSeconds caps inference: when the gap to the next entry
	// exceeds this, the entry gets TailSeconds instead of the full gap.
	MaxInferredGapSeconds = 10.0
)

var (
	rangeMillisPattern = regexp.MustCompile(`\[\s*(\d{1,3}m\d{1,2}s\d{1,3}ms)\s*-\s*(\d{1,3}m\d{1,2}s\d{1,3}ms)\s*\]\s*([^\[]*)`)
	rangePlainPattern  = regexp.MustCompile(`\[\s*(\d{1,3}m\d{1,2}s)\s*-\s*(\d{1,3}m\d{1,2}s)\s*\]\s*([^\[]*)`)
	singleStampPattern = regexp.MustCompile(`\[\s*(\d{1,3}m\d{1,2}s(?:\d{1,3}ms)?)\s*\]\s*([^\[]*)`)
	spacedRangePattern = regexp.MustCompile(`\[\s*(\d{1,3})m\s*(\d{1,2})s(?:\s*(\d{1,3})ms)?\s*-\s*(\d{1,3})m\s*(\d{1,2})s(?:\s*(\d{1,3})ms)?\s*\]\s*([^\[]*)`)
	lineRangePattern   = regexp.MustCompile(`^\s*\[\s*(\d{1,3})m\s*(\d{1,2})s\s*-\s*(\d{1,3})m\s*(\d{1,2})s\s*\]\s*(.*)$`)
)

// RangeWithMillis extracts entries of the form
// "[ 0m0s000ms - 0m1s500ms ] text", the strictest and most common dialect.
func RangeWithMillis(text string) []subtitle.Record {
	return extractRanges(text, rangeMillisPattern)
}

// RangeWithoutMillis extracts "[ 0m0s - 0m1s ] text" entries.
func RangeWithoutMillis(text string) []subtitle.Record {
	return extractRanges(text, rangePlainPattern)
}

func extractRanges(text string, pattern *regexp.Regexp) []subtitle.Record {
	matches := pattern.FindAllStringSubmatch(text, -1)
	var records []subtitle.Record
	for _, m := range matches {
		body := strings.TrimSpace(m[3])
		if body == "" {
			continue
		}
		start, _ := timecode.Parse(m[1])
		end, _ := timecode.Parse(m[2])
		records = append(records, subtitle.Record{
			ID:    len(records) + 1,
			Start: start,
			End:   end,
			Text:  body,
		})
	}
	return records
}

// SingleTimestamp extracts "[0m0s] text" entries and infers each entry's end
// from the next entry's start. The final entry, and any entry whose inferred
// duration would exceed MaxInferredGapSeconds, gets TailSeconds instead.
func SingleTimestamp(text string) []subtitle.Record {
	matches := singleStampPattern.FindAllStringSubmatch(text, -1)
	var records []subtitle.Record
	for _, m := range matches {
		body := strings.TrimSpace(m[2])
		if body == "" {
			continue
		}
		start, _ := timecode.Parse(m[1])
		records = append(records, subtitle.Record{
			ID:    len(records) + 1,
			Start: start,
			Text:  body,
		})
	}
	for i := range records {
		if i+1 < len(records) {
			gap := records[i+1].Start - records[i].Start
			if gap > MaxInferredGapSeconds || gap <= 0 {
				records[i].End = records[i].Start + TailSeconds
			} else {
				records[i].End = records[i+1].Start
			}
			continue
		}
		records[i].End = records[i].Start + TailSeconds
	}
	return records
}

// SpacedBracket handles the dialect with whitespace inside the timestamp
// components, "[ 0m 0s - 0m 1s 500ms ] text". When the spaced range form
// finds nothing it falls back to the tighter dialects, so a caller can treat
// this extractor as a superset of the first three.
func SpacedBracket(text string) []subtitle.Record {
	matches := spacedRangePattern.FindAllStringSubmatch(text, -1)
	var records []subtitle.Record
	for _, m := range matches {
		body := strings.TrimSpace(m[7])
		if body == "" {
			continue
		}
		records = append(records, subtitle.Record{
			ID:    len(records) + 1,
			Start: componentSeconds(m[1], m[2], m[3]),
			End:   componentSeconds(m[4], m[5], m[6]),
			Text:  body,
		})
	}
	if len(records) > 0 {
		return records
	}
	if records = RangeWithMillis(text); len(records) > 0 {
		return records
	}
	if records = RangeWithoutMillis(text); len(records) > 0 {
		return records
	}
	return SingleTimestamp(text)
}

// LineFallback is the most permissive extractor and the chain's last resort:
// it walks the response line by line looking for "[Xm Ys - Xm Ys] text".
func LineFallback(text string) []subtitle.Record {
	var records []subtitle.Record
	for _, line := range strings.Split(text, "\n") {
		m := lineRangePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[5])
		if body == "" {
			continue
		}
		records = append(records, subtitle.Record{
			ID:    len(records) + 1,
			Start: componentSeconds(m[1], m[2], ""),
			End:   componentSeconds(m[3], m[4], ""),
			Text:  body,
		})
	}
	return records
}

func componentSeconds(minutes, seconds, millis string) float64 {
	value := minutes + "m" + seconds + "s"
	if millis != "" {
		value += millis + "ms"
	} else {
		value += "000ms"
	}
	parsed, _ := timecode.Parse(value)
	return parsed
}

// Response runs the extractor chain over a plain-text model response,
// stopping at the first dialect that yields entries. When every dialect
// comes up empty it returns a KindUnrecognizedFormat error carrying the raw
// text so the caller can show it or retry.
func Response(text string) ([]subtitle.Record, error) {
	extractors := []func(string) []subtitle.Record{
		RangeWithMillis,
		RangeWithoutMillis,
		SingleTimestamp,
		SpacedBracket,
		LineFallback,
	}
	for _, extract := range extractors {
		if records := extract(text); len(records) > 0 {
			return records, nil
		}
	}
	return nil, NewUnrecognizedFormat(text)
}

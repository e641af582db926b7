package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"subweave/internal/logging"
	"subweave/internal/parse"
	"subweave/internal/subtitle"
	"subweave/internal/timecode"
)

// placeholderRatio is the share of zero-time empty entries beyond which a
// response is rejected wholesale instead of filtered entry by entry.
const placeholderRatio = 0.9

// Context carries the external lookups a parse may need, supplied by the
// orchestrator as plain data. All fields are optional.
type Context struct {
	// OriginalByID maps a prior-pass subtitle id to its record, used to
	// recover timing for translated entries.
	OriginalByID map[int]subtitle.Record

	// Originals is the prior-pass list in order, the positional fallback
	// when an id lookup misses.
	Originals []subtitle.Record

	// Lines holds user-provided subtitle text addressed by zero-based index
	// in timing-only responses.
	Lines []string

	// Logger receives best-effort warnings (missing lookups, skipped
	// entries). Nil suppresses them.
	Logger *slog.Logger
}

func (c Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.NewNop()
}

// Parse converts a provider response into subtitle records. The input may be
// an envelope carrying a structuredJson field, a bare JSON array, or a
// translations object. When the structured path fails and the envelope holds
// plain text, the plain-text extractor chain runs as a recovery attempt
// before the structured error propagates.
func Parse(raw string, ctx Context) ([]subtitle.Record, error) {
	structured, plain := splitResponse(raw)

	records, err := parseStructured(structured, ctx)
	if err == nil {
		return records, nil
	}
	if strings.TrimSpace(plain) != "" {
		if recovered, fallbackErr := parse.Response(plain); fallbackErr == nil {
			ctx.logger().Warn("structured parse failed, recovered via text extractors",
				slog.String("error", err.Error()))
			return recovered, nil
		}
	}
	return nil, err
}

// splitResponse separates the structured JSON payload from the plain-text
// fallback material.
func splitResponse(raw string) (json.RawMessage, string) {
	trimmed := strings.TrimSpace(raw)
	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err == nil {
		if len(env.StructuredJSON) > 0 {
			return env.StructuredJSON, env.Text
		}
		if len(env.Translations) > 0 {
			return json.RawMessage(trimmed), env.Text
		}
		if env.Text != "" {
			// Envelope with no structured payload at all; only the plain
			// text is usable.
			return nil, env.Text
		}
	}
	// Bare array, or something unrecognizable that parseStructured will
	// reject; the raw text doubles as the fallback material either way.
	return json.RawMessage(trimmed), raw
}

func parseStructured(payload json.RawMessage, ctx Context) ([]subtitle.Record, error) {
	if len(payload) == 0 {
		return nil, parse.NewUnrecognizedFormat("")
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil && len(env.Translations) > 0 {
		return resolveTranslations(env.Translations, ctx), nil
	}

	var items []item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, parse.NewUnrecognizedFormat(string(payload))
	}
	return parseFlatArray(items, ctx)
}

// resolveTranslations recovers timing for {id, text} entries from the
// caller's original-subtitle lookups. Lookup misses degrade to zero timing
// rather than failing: callers treat start==0 && end==0 as timing unknown.
func resolveTranslations(items []item, ctx Context) []subtitle.Record {
	records := make([]subtitle.Record, 0, len(items))
	for i, it := range items {
		if it.Text == nil || strings.TrimSpace(*it.Text) == "" {
			continue
		}
		start, end, originalID := lookupTiming(it, i, ctx)
		records = append(records, subtitle.Record{
			ID:         len(records) + 1,
			Start:      start,
			End:        end,
			Text:       strings.TrimSpace(*it.Text),
			OriginalID: originalID,
		})
	}
	return records
}

func lookupTiming(it item, position int, ctx Context) (float64, float64, int) {
	if it.ID != nil {
		if original, ok := ctx.OriginalByID[*it.ID]; ok {
			return original.Start, original.End, original.ID
		}
	}
	if position < len(ctx.Originals) {
		original := ctx.Originals[position]
		return original.Start, original.End, original.ID
	}
	ctx.logger().Warn("no timing source for translated entry, defaulting to 0",
		slog.Int("position", position))
	return 0, 0, idOrZero(it.ID)
}

func idOrZero(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}

func parseFlatArray(items []item, ctx Context) ([]subtitle.Record, error) {
	if len(items) == 0 {
		return nil, parse.NewEmptySubtitles("response array is empty", "")
	}

	placeholders := 0
	records := make([]subtitle.Record, 0, len(items))
	logger := ctx.logger()

	for i, it := range items {
		shape := detectItemShape(it)
		var rec subtitle.Record
		switch shape {
		case ShapeTimingOnly:
			text, ok := resolveIndexedText(it, ctx)
			if !ok {
				logger.Warn("timing-only entry index out of range, skipping",
					slog.Int("index", *it.Index))
				continue
			}
			rec = subtitle.Record{
				Start: timecode.ParseOrZero(*it.StartTime, logger),
				End:   timecode.ParseOrZero(*it.EndTime, logger),
				Text:  text,
			}
		case ShapeFlatTimed:
			rec = subtitle.Record{
				Start: timecode.ParseOrZero(*it.StartTime, logger),
				End:   timecode.ParseOrZero(*it.EndTime, logger),
				Text:  strings.TrimSpace(*it.Text),
			}
		case ShapeTranslationFlat:
			start, end, originalID := lookupTiming(it, i, ctx)
			rec = subtitle.Record{
				Start:      start,
				End:        end,
				Text:       strings.TrimSpace(*it.Text),
				OriginalID: originalID,
			}
		case ShapeUnknown:
			logger.Warn("unrecognized entry shape, skipping", slog.Int("position", i))
			continue
		}

		if rec.Start == 0 && rec.End == 0 && rec.Text == "" {
			// Leading zero-marker artifact; drop it but remember it for the
			// all-placeholder check below.
			placeholders++
			continue
		}

		if shape != ShapeTranslationFlat && looksHallucinated(rec.Text) {
			return nil, parse.NewHallucination(rec.Text, rec.Start, rec.End)
		}

		rec.ID = len(records) + 1
		records = append(records, rec)
	}

	if placeholders == len(items) || float64(placeholders) > placeholderRatio*float64(len(items)) {
		return nil, parse.NewEmptySubtitles(
			fmt.Sprintf("%d of %d entries are zero-time placeholders", placeholders, len(items)), "")
	}
	return records, nil
}

func resolveIndexedText(it item, ctx Context) (string, bool) {
	if it.Text != nil && strings.TrimSpace(*it.Text) != "" {
		return strings.TrimSpace(*it.Text), true
	}
	idx := *it.Index
	if idx < 0 || idx >= len(ctx.Lines) {
		return "", false
	}
	return strings.TrimSpace(ctx.Lines[idx]), true
}

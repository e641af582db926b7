package response

import "encoding/json"

// Shape classifies one duck-typed response item. Detection is explicit so
// every branch downstream switches over a closed set instead of re-probing
// optional fields.
type Shape int

const (
	// ShapeUnknown means no recognized field combination.
	ShapeUnknown Shape = iota
	// ShapeTranslationLineage is the {translations: [{id, text}]} envelope.
	ShapeTranslationLineage
	// ShapeFlatTimed is a standard transcription item {startTime, endTime, text}.
	ShapeFlatTimed
	// ShapeTimingOnly is {startTime, endTime, index}, text resolved by index
	// from caller-supplied lines unless inlined.
	ShapeTimingOnly
	// ShapeTranslationFlat is {id, text} inside a flat array.
	ShapeTranslationFlat
)

func (s Shape) String() string {
	switch s {
	case ShapeTranslationLineage:
		return "translationLineage"
	case ShapeFlatTimed:
		return "flatTimed"
	case ShapeTimingOnly:
		return "timingOnly"
	case ShapeTranslationFlat:
		return "translationFlat"
	default:
		return "unknown"
	}
}

// item is the superset of fields a response entry may carry. Pointers
// distinguish absent from zero.
type item struct {
	ID        *int    `json:"id"`
	Index     *int    `json:"index"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Text      *string `json:"text"`
}

// envelope is the provider response wrapper. Any of the fields may be
// absent; a bare array response has none of them.
type envelope struct {
	StructuredJSON json.RawMessage `json:"structuredJson"`
	Text           string          `json:"text"`
	Translations   []item          `json:"translations"`
}

// detectItemShape classifies a single flat-array item.
func detectItemShape(it item) Shape {
	hasTiming := it.StartTime != nil && it.EndTime != nil
	switch {
	case hasTiming && it.Index != nil:
		return ShapeTimingOnly
	case hasTiming && it.Text != nil:
		return ShapeFlatTimed
	case it.ID != nil && it.Text != nil:
		return ShapeTranslationFlat
	default:
		return ShapeUnknown
	}
}

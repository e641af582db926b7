package parse

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal, caller-surfaced parse failures. Everything not
// covered here is handled locally with a best-effort fallback.
type Kind string

const (
	// KindUnrecognizedFormat means no extractor matched the response at all.
	KindUnrecognizedFormat Kind = "unrecognized_format"
	// KindEmptySubtitles means the response parsed but is placeholder noise.
	KindEmptySubtitles Kind = "empty_subtitles"
	// KindHallucination means the repetition guard rejected an entry's text.
	KindHallucination Kind = "hallucination_detected"
)

// Error is the structured failure surfaced to callers. It always carries
// enough raw material for the caller to show diagnostics or decide to retry:
// the original response for format failures, the offending sample and time
// range for hallucinations.
type Error struct {
	Kind    Kind
	Message string

	// Raw holds the original response text when the whole response was
	// rejected.
	Raw string

	// Sample, Start, and End describe the offending entry when a single
	// entry triggered the rejection.
	Sample string
	Start  float64
	End    float64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewUnrecognizedFormat builds an Error for a response no extractor matched.
func NewUnrecognizedFormat(raw string) *Error {
	return &Error{
		Kind:    KindUnrecognizedFormat,
		Message: "no subtitle format recognized in response",
		Raw:     raw,
	}
}

// NewEmptySubtitles builds an Error for an all-placeholder response.
func NewEmptySubtitles(message, raw string) *Error {
	return &Error{Kind: KindEmptySubtitles, Message: message, Raw: raw}
}

// NewHallucination builds an Error for a repetition-guard rejection.
func NewHallucination(sample string, start, end float64) *Error {
	display := sample
	if len(display) > 80 {
		display = display[:80] + "..."
	}
	return &Error{
		Kind:    KindHallucination,
		Message: fmt.Sprintf("pathological repetition in entry %.3f-%.3f: %q", start, end, display),
		Sample:  sample,
		Start:   start,
		End:     end,
	}
}

// IsKind reports whether err is a parse Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		return false
	}
	return parseErr.Kind == kind
}

package export

import (
	"fmt"
	"strings"

	"subweave/internal/subtitle"
	"subweave/internal/timecode"
)

// RenderVTT serializes records as WebVTT: the "WEBVTT" header followed by
// "id\nHH:MM:SS.mmm --> HH:MM:SS.mmm\ntext" cues.
func RenderVTT(records []subtitle.Record) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n",
			r.ID, timecode.FormatVTT(r.Start), timecode.FormatVTT(r.End), r.Text)
	}
	return b.String()
}

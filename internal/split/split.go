package split

import (
	"math"
	"strings"
	"unicode"

	"subweave/internal/language"
	"subweave/internal/subtitle"
)

// lookbackRunes is how far back from a CJK chunk boundary the splitter will
// move to land on whitespace or punctuation instead of cutting mid-phrase.
const lookbackRunes = 6

// chunk is one piece of a divided subtitle: its text and the weight it
// carries, used to apportion the original time range.
type chunk struct {
	text   string
	weight int
}

// Weight measures subtitle text in the unit the splitter budgets by:
// punctuation-and-whitespace-free rune count for CJK text, whitespace word
// count otherwise.
func Weight(text string) int {
	if language.ContainsCJK(text) {
		count := 0
		for _, r := range text {
			if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
				continue
			}
			count++
		}
		return count
	}
	return len(strings.Fields(text))
}

// Auto divides one subtitle whose weight exceeds maxWeight into several
// records, each covering a time share proportional to its weight. The last
// piece always ends exactly at the original end so repeated splits cannot
// accumulate floating-point drift. Subtitles within budget come back
// unchanged as a single-element slice. IDs are left for the caller; AutoAll
// renumbers across a whole list.
func Auto(record subtitle.Record, maxWeight int) []subtitle.Record {
	if maxWeight <= 0 {
		return []subtitle.Record{record}
	}
	total := Weight(record.Text)
	if total <= maxWeight {
		return []subtitle.Record{record}
	}

	numChunks := int(math.Ceil(float64(total) / float64(maxWeight)))
	var chunks []chunk
	if language.ContainsCJK(record.Text) {
		chunks = divideCJK(record.Text, total, numChunks)
	} else {
		chunks = divideWords(record.Text, numChunks)
	}
	if len(chunks) <= 1 {
		return []subtitle.Record{record}
	}

	out := make([]subtitle.Record, 0, len(chunks))
	duration := record.End - record.Start
	cursor := record.Start
	for i, c := range chunks {
		piece := record
		piece.Text = c.text
		piece.Start = cursor
		if i == len(chunks)-1 {
			piece.End = record.End
		} else {
			piece.End = cursor + duration*float64(c.weight)/float64(total)
		}
		cursor = piece.End
		out = append(out, piece)
	}
	return out
}

// AutoAll splits every over-budget subtitle in the list and renumbers the
// combined result sequentially.
func AutoAll(records []subtitle.Record, maxWeight int) []subtitle.Record {
	out := make([]subtitle.Record, 0, len(records))
	for _, r := range records {
		out = append(out, Auto(r, maxWeight)...)
	}
	return subtitle.ReassignIDs(out)
}

// divideWords splits whitespace-delimited text into numChunks pieces, each
// sized to an even share of the words still remaining.
func divideWords(text string, numChunks int) []chunk {
	words := strings.Fields(text)
	chunks := make([]chunk, 0, numChunks)
	remaining := len(words)
	for i := 0; i < numChunks && remaining > 0; i++ {
		chunksLeft := numChunks - i
		take := int(math.Ceil(float64(remaining) / float64(chunksLeft)))
		start := len(words) - remaining
		piece := words[start : start+take]
		chunks = append(chunks, chunk{
			text:   strings.Join(piece, " "),
			weight: take,
		})
		remaining -= take
	}
	return chunks
}

// divideCJK splits character-counted text into numChunks pieces, preferring
// a whitespace or punctuation boundary within the lookback window over a cut
// mid-run.
func divideCJK(text string, total, numChunks int) []chunk {
	runes := []rune(text)
	chunks := make([]chunk, 0, numChunks)
	remaining := total
	pos := 0
	for i := 0; i < numChunks && pos < len(runes); i++ {
		chunksLeft := numChunks - i
		target := int(math.Ceil(float64(remaining) / float64(chunksLeft)))
		if i == numChunks-1 {
			// Final chunk absorbs everything left.
			piece := strings.TrimSpace(string(runes[pos:]))
			if piece != "" {
				chunks = append(chunks, chunk{text: piece, weight: remaining})
			}
			break
		}

		cut := advanceByWeight(runes, pos, target)
		cut = preferBoundary(runes, pos, cut)
		piece := strings.TrimSpace(string(runes[pos:cut]))
		if piece == "" {
			break
		}
		weight := weightOfRunes(runes[pos:cut])
		chunks = append(chunks, chunk{text: piece, weight: weight})
		remaining -= weight
		pos = cut
	}
	return chunks
}

// advanceByWeight returns the rune index after consuming target units of
// weight from pos.
func advanceByWeight(runes []rune, pos, target int) int {
	counted := 0
	i := pos
	for ; i < len(runes) && counted < target; i++ {
		if countsTowardWeight(runes[i]) {
			counted++
		}
	}
	return i
}

// preferBoundary pulls a cut position back to the nearest whitespace or
// punctuation within the lookback window, keeping the boundary rune on the
// left side.
func preferBoundary(runes []rune, pos, cut int) int {
	for back := 0; back < lookbackRunes && cut-back > pos+1; back++ {
		r := runes[cut-back-1]
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			return cut - back
		}
	}
	return cut
}

func countsTowardWeight(r rune) bool {
	return !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r)
}

func weightOfRunes(runes []rune) int {
	count := 0
	for _, r := range runes {
		if countsTowardWeight(r) {
			count++
		}
	}
	return count
}

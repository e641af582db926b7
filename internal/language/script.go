package language

import "unicode"

// cjkRanges covers the scripts whose text is measured per character rather
// than per whitespace-delimited word: Han ideographs, kana, and hangul.
var cjkRanges = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

// IsCJKRune reports whether a single rune belongs to a CJK script.
func IsCJKRune(r rune) bool {
	for _, table := range cjkRanges {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

// ContainsCJK reports whether any rune in the text belongs to a CJK script.
// One ideograph is enough to switch the splitter's weight function: mixed
// text dominated by CJK is common and Western word counting undercounts it
// badly.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if IsCJKRune(r) {
			return true
		}
	}
	return false
}

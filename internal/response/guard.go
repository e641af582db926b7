package response

// Repetition-guard thresholds. A looping model produces either one character
// smeared across the entry, a short phrase stuttered dozens of times, or an
// entry dominated by a single character; all three patterns are vanishingly
// rare in real dialogue at these levels.
const (
	singleRunLimit     = 20  // consecutive repeats of one character
	substrRepeatLimit  = 10  // consecutive repeats of a 2-5 char substring
	dominanceRatio     = 0.8 // share of text one character may occupy
	dominanceMinLength = 10  // runes required before the dominance check applies
)

// looksHallucinated reports whether text shows pathological repetition.
func looksHallucinated(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	if hasLongRun(runes) {
		return true
	}
	if hasRepeatedSubstring(runes) {
		return true
	}
	return isDominatedByOneRune(runes)
}

func hasLongRun(runes []rune) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= singleRunLimit {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

func hasRepeatedSubstring(runes []rune) bool {
	for width := 2; width <= 5; width++ {
		if len(runes) < width*substrRepeatLimit {
			continue
		}
		for start := 0; start+width*substrRepeatLimit <= len(runes); start++ {
			repeats := 1
			for runesEqual(runes, start, start+repeats*width, width) {
				repeats++
				if repeats >= substrRepeatLimit {
					return true
				}
			}
		}
	}
	return false
}

func runesEqual(runes []rune, a, b, width int) bool {
	if b+width > len(runes) {
		return false
	}
	for i := 0; i < width; i++ {
		if runes[a+i] != runes[b+i] {
			return false
		}
	}
	return true
}

func isDominatedByOneRune(runes []rune) bool {
	if len(runes) < dominanceMinLength {
		return false
	}
	counts := make(map[rune]int)
	max := 0
	for _, r := range runes {
		counts[r]++
		if counts[r] > max {
			max = counts[r]
		}
	}
	return float64(max) > dominanceRatio*float64(len(runes))
}

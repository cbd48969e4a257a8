package textinput

import "unicode"

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBoundaries lists every offset a word-wise motion may land on: zero,
// the start of each run of word runes, and the end of the line.
func wordBoundaries(line []rune) []int {
	bounds := []int{0}
	for i := 1; i < len(line); i++ {
		if isWordRune(line[i]) && !isWordRune(line[i-1]) {
			bounds = append(bounds, i)
		}
	}
	return append(bounds, len(line))
}

// prevBoundary returns the last boundary strictly before pos, or zero.
func prevBoundary(line []rune, pos int) int {
	prev := 0
	for _, b := range wordBoundaries(line) {
		if b >= pos {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the first boundary strictly after pos, or the end of
// the line.
func nextBoundary(line []rune, pos int) int {
	for _, b := range wordBoundaries(line) {
		if b > pos {
			return b
		}
	}
	return len(line)
}

package chunking

import (
	"strings"
	"unicode"
)

// SplitText splits text into pieces of at most maxSize characters, with up
// to overlap characters of trailing context carried into the next piece.
// When a cut is required it prefers, in order: a paragraph break, a sentence
// break, a word break, and finally a hard cut at exactly maxSize. Boundaries
// are searched backward from the cutoff within a fixed lookback window so
// the function is a pure, deterministic mapping of its inputs.
//
// Text no longer than maxSize is returned as a single trimmed piece; empty
// or whitespace-only text yields no pieces. Sizes are measured in runes, so
// a hard cut never lands inside a character.
func SplitText(text string, maxSize, overlap int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	n := len(runes)
	if n <= maxSize {
		return []string{trimmed}
	}

	// How far back from the cutoff to look for a natural boundary before
	// falling through to the next weaker boundary type.
	window := maxSize / 4
	if window < 1 {
		window = 1
	}

	var pieces []string
	start := 0
	for start < n {
		end := start + maxSize
		if end >= n {
			pieces = appendPiece(pieces, runes[start:n])
			break
		}

		cut := findCut(runes, start, end, window)
		pieces = appendPiece(pieces, runes[start:cut])

		next := cut - overlap
		if next <= start {
			// Degenerate case: the boundary landed so early that carrying
			// the full overlap would stall. Drop the carry for this pair.
			next = cut
		}
		// Do not resume mid-word: advance to the next word boundary inside
		// the overlap region, then past any leading whitespace.
		for next < cut && next > 0 && !unicode.IsSpace(runes[next]) && !unicode.IsSpace(runes[next-1]) {
			next++
		}
		for next < cut && unicode.IsSpace(runes[next]) {
			next++
		}
		start = next
	}
	return pieces
}

// findCut returns the cut position in (start, end] closest to end that lies
// on the strongest available boundary within the lookback window.
func findCut(runes []rune, start, end, window int) int {
	lo := end - window
	if lo <= start {
		lo = start + 1
	}

	// Paragraph break: a blank line.
	for i := end; i > lo; i-- {
		if runes[i-1] == '\n' && i >= 2 && runes[i-2] == '\n' {
			return i
		}
	}

	// Sentence break: terminal punctuation followed by whitespace.
	for i := end; i > lo; i-- {
		if i < 2 {
			break
		}
		if isSpaceRune(runes[i-1]) && isSentenceEnd(runes[i-2]) {
			return i
		}
	}

	// Word break.
	for i := end; i > lo; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}

	// Hard cut.
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

// appendPiece trims a candidate piece and drops it when empty, so emitted
// piece indices only ever count real content.
func appendPiece(pieces []string, runes []rune) []string {
	s := strings.TrimSpace(string(runes))
	if s == "" {
		return pieces
	}
	return append(pieces, s)
}

package chunking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortTextSinglePiece(t *testing.T) {
	pieces := SplitText("  Hello world  ", 1000, 200)

	require.Len(t, pieces, 1)
	assert.Equal(t, "Hello world", pieces[0])
}

func TestSplitText_EmptyText(t *testing.T) {
	assert.Empty(t, SplitText("", 1000, 200))
	assert.Empty(t, SplitText("   \n\t  ", 1000, 200))
}

func TestSplitText_ProseThreePieces(t *testing.T) {
	// 2500+ characters of plain prose with regular sentence boundaries
	// splits into exactly three pieces at 1000/200.
	text := strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 56))
	require.Greater(t, len(text), 2500)

	pieces := SplitText(text, 1000, 200)

	require.Len(t, pieces, 3)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p)), 1000)
		// Sentence boundary preferred over a hard cut.
		assert.True(t, strings.HasSuffix(p, "."), "piece should end on a sentence: %q", p[len(p)-20:])
	}
}

func TestSplitText_Deterministic(t *testing.T) {
	text := strings.Repeat("Some sentence about documents. ", 120)

	first := SplitText(text, 500, 100)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SplitText(text, 500, 100))
	}
}

func TestSplitText_PrefersParagraphBreak(t *testing.T) {
	para1 := strings.TrimSpace(strings.Repeat("word ", 180)) // 899 chars
	para2 := strings.TrimSpace(strings.Repeat("tail ", 160))
	text := para1 + "\n\n" + para2

	pieces := SplitText(text, 1000, 200)

	require.Len(t, pieces, 2)
	assert.Equal(t, para1, pieces[0])
}

func TestSplitText_WordBoundaryFallback(t *testing.T) {
	// No punctuation and no blank lines: the cut falls back to word breaks.
	text := strings.TrimSpace(strings.Repeat("word ", 300))

	pieces := SplitText(text, 1000, 200)

	require.Len(t, pieces, 2)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p)), 1000)
		assert.True(t, strings.HasSuffix(p, "word"))
		assert.NotContains(t, p, "  ")
	}
}

func TestSplitText_HardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 2500)

	pieces := SplitText(text, 1000, 200)

	require.Len(t, pieces, 3)
	assert.Equal(t, 1000, len(pieces[0]))
	assert.Equal(t, 1000, len(pieces[1]))
	assert.Equal(t, 500, len(pieces[2]))
}

func TestSplitText_OverlapAndCoverage(t *testing.T) {
	// Unique sentences so each piece has a single position in the source.
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "Sentence number %03d ends now. ", i)
	}
	text := strings.TrimSpace(sb.String())
	overlap := 200

	pieces := SplitText(text, 1000, overlap)
	require.Greater(t, len(pieces), 1)

	prevEnd := 0
	for i, p := range pieces {
		start := strings.Index(text, p)
		require.GreaterOrEqual(t, start, 0, "piece %d must be a substring of the source", i)
		end := start + len(p)

		if i > 0 {
			// No gap: each piece starts at or before the previous end
			// (modulo trimmed whitespace), and backs up by at most overlap.
			assert.LessOrEqual(t, start, prevEnd+2, "gap before piece %d", i)
			assert.GreaterOrEqual(t, start, prevEnd-overlap, "piece %d overlaps more than %d", i, overlap)
		}
		assert.Greater(t, end, prevEnd, "piece %d must advance", i)
		prevEnd = end
	}
	// Nothing lost at the tail.
	assert.True(t, strings.HasSuffix(text, pieces[len(pieces)-1]))
}

func TestSplitText_RuneSafety(t *testing.T) {
	// Multi-byte runes: sizes are counted in runes and no piece may split one.
	text := strings.Repeat("héllo wörld é ", 200)

	pieces := SplitText(text, 300, 50)

	require.NotEmpty(t, pieces)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p)), 300)
		assert.True(t, strings.HasPrefix(p, "h") || strings.HasPrefix(p, "w") || strings.HasPrefix(p, "é"))
	}
}

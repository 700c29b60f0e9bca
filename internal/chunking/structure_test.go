package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeStructure_Headers(t *testing.T) {
	text := "# Title\n## Section\n### Sub\nINTRODUCTION\n1. Numbered Section\nplain body text"

	st := AnalyzeStructure(text)

	require.Len(t, st.Headers, 5)
	assert.Equal(t, Header{Text: "# Title", Line: 0, Level: 1}, st.Headers[0])
	assert.Equal(t, Header{Text: "## Section", Line: 1, Level: 2}, st.Headers[1])
	assert.Equal(t, Header{Text: "### Sub", Line: 2, Level: 3}, st.Headers[2])
	assert.Equal(t, Header{Text: "INTRODUCTION", Line: 3, Level: 1}, st.Headers[3])
	assert.Equal(t, Header{Text: "1. Numbered Section", Line: 4, Level: 2}, st.Headers[4])
	assert.Empty(t, st.Lists)
}

func TestAnalyzeStructure_Lists(t *testing.T) {
	text := "* bullet one\n- bullet two\n+ bullet three\n2. numbered item\nnot a list"

	st := AnalyzeStructure(text)

	require.Len(t, st.Lists, 4)
	assert.Equal(t, "bullet", st.Lists[0].Type)
	assert.Equal(t, "bullet", st.Lists[1].Type)
	assert.Equal(t, "bullet", st.Lists[2].Type)
	assert.Equal(t, "numbered", st.Lists[3].Type)
	assert.Equal(t, 3, st.Lists[3].Line)
}

func TestAnalyzeStructure_HeaderWinsOverList(t *testing.T) {
	// "1. Introduction" matches the numbered-section header rule; it must
	// not also be classified as a numbered list item.
	st := AnalyzeStructure("1. Introduction\n2. details in lowercase")

	require.Len(t, st.Headers, 1)
	assert.Equal(t, "1. Introduction", st.Headers[0].Text)
	require.Len(t, st.Lists, 1)
	assert.Equal(t, "2. details in lowercase", st.Lists[0].Text)
	assert.Equal(t, "numbered", st.Lists[0].Type)
}

func TestAnalyzeStructure_EmptyAndReservedFields(t *testing.T) {
	st := AnalyzeStructure("")

	assert.Empty(t, st.Headers)
	assert.Empty(t, st.Lists)
	assert.NotNil(t, st.Tables)
	assert.NotNil(t, st.Sections)
}

func TestAnalyzeStructure_BlankAndPlainLinesIgnored(t *testing.T) {
	st := AnalyzeStructure("\n\njust a sentence here.\n\n")

	assert.Empty(t, st.Headers)
	assert.Empty(t, st.Lists)
}

package chunking

import (
	"regexp"
	"strings"
	"unicode"
)

// Header is a detected heading line.
type Header struct {
	Text  string `json:"text"`
	Line  int    `json:"line_number"`
	Level int    `json:"level"`
}

// ListItem is a detected bullet or numbered list line.
type ListItem struct {
	Text string `json:"text"`
	Line int    `json:"line_number"`
	Type string `json:"type"` // "bullet" or "numbered"
}

// DocumentStructure is a heuristic outline of a document, produced
// independently of chunking. Tables and Sections are reserved: no
// detection policy is implemented for them yet.
type DocumentStructure struct {
	Headers  []Header   `json:"headers"`
	Lists    []ListItem `json:"lists"`
	Tables   []string   `json:"tables"`
	Sections []string   `json:"sections"`
}

var (
	mdHeaderRe        = regexp.MustCompile(`^#+\s`)
	numberedSectionRe = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)
	bulletItemRe      = regexp.MustCompile(`^[*+-]\s+`)
	numberedItemRe    = regexp.MustCompile(`^\d+\.?\s+`)
)

// AnalyzeStructure scans text line by line for headings and list items.
// It is a pure, stateless pass; header rules win over list rules, so a
// line is never classified as both.
func AnalyzeStructure(text string) *DocumentStructure {
	st := &DocumentStructure{
		Headers:  []Header{},
		Lists:    []ListItem{},
		Tables:   []string{},
		Sections: []string{},
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isUpperLine(line) || mdHeaderRe.MatchString(line) || numberedSectionRe.MatchString(line) {
			st.Headers = append(st.Headers, Header{Text: line, Line: i, Level: headerLevel(line)})
			continue
		}

		switch {
		case bulletItemRe.MatchString(line):
			st.Lists = append(st.Lists, ListItem{Text: line, Line: i, Type: "bullet"})
		case numberedItemRe.MatchString(line):
			st.Lists = append(st.Lists, ListItem{Text: line, Line: i, Type: "numbered"})
		}
	}
	return st
}

// headerLevel estimates heading depth: markdown hash count capped at 3,
// ALL-CAPS lines rank 1, numbered sections rank 2, everything else 3.
func headerLevel(line string) int {
	switch {
	case strings.HasPrefix(line, "###"):
		return 3
	case strings.HasPrefix(line, "##"):
		return 2
	case strings.HasPrefix(line, "#"):
		return 1
	case isUpperLine(line):
		return 1
	case numberedItemRe.MatchString(line):
		return 2
	default:
		return 3
	}
}

// isUpperLine reports whether the line has at least one cased rune and
// none of them lowercase.
func isUpperLine(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

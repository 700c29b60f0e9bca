package chunking

import (
	"strconv"
	"strings"
)

// Segment is one structurally delimited slice of a document's text: a page,
// a slide, or the preamble before the first marker.
type Segment struct {
	Label  int    // page or slide number; 0 for the preamble
	Marked bool   // true when the segment came from an explicit marker
	Body   string
}

// segmentByMarker splits text on delimiters of the form "--- <kind> <n> ---".
// Content before the first marker becomes an unmarked segment labeled 0.
// A label that does not parse as an integer is replaced by the segment's
// sequential ordinal; segmentation itself never fails. Content after the
// last marker is always retained.
func segmentByMarker(text, kind string) []Segment {
	parts := strings.Split(text, "--- "+kind+" ")

	segs := make([]Segment, 0, len(parts))
	ordinal := 0
	for i, part := range parts {
		if i == 0 {
			if strings.TrimSpace(part) != "" {
				segs = append(segs, Segment{Label: 0, Body: part})
			}
			continue
		}

		ordinal++
		label := ordinal
		if head, _, ok := strings.Cut(part, " ---"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(head)); err == nil {
				label = n
			}
		}

		// Body starts after the closing "---\n"; if the marker tail is
		// malformed the whole part is kept rather than dropped.
		body := part
		if _, after, ok := strings.Cut(part, "---\n"); ok {
			body = after
		}

		segs = append(segs, Segment{Label: label, Marked: true, Body: body})
	}
	return segs
}

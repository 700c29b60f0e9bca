package extraction

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTxt reads the file as UTF-8, falling back to Latin-1 for the
// common legacy-encoding case.
func extractTxt(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read txt: %w", err)
	}

	text := string(data)
	if !utf8.Valid(data) {
		decoded, derr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if derr != nil {
			return nil, fmt.Errorf("decode txt: %w", derr)
		}
		text = string(decoded)
	}

	return &Content{Text: text, Links: scanLinks(text)}, nil
}

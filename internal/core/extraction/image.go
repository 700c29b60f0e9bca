package extraction

import (
	"context"
	"fmt"
	"os"

	"github.com/markdave123-py/docuflow/internal/chunking"
)

// extractImage treats the whole file as one image: its OCR text becomes
// the document text and the file itself the single extracted image.
func (e *Extractor) extractImage(ctx context.Context, path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	text, err := e.ocr.Recognize(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("ocr image: %w", err)
	}

	name := stemOf(path)
	return &Content{
		Text:   text,
		Images: []chunking.ExtractedImage{{Name: name, OCRText: text}},
		Links:  scanLinks(text),
		Files:  []ImageFile{{Name: name, Data: data}},
	}, nil
}

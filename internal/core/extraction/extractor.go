// Package extraction implements the content-extraction collaborator: given
// a validated file path it produces the unified text representation (with
// page/slide markers for paged formats), the OCR-annotated embedded images,
// and the extracted hyperlinks that the chunking core consumes.
package extraction

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core/ocr"
)

// Content is the extractor's output boundary. Images and Links may be
// empty; the chunking core tolerates both.
type Content struct {
	Text   string                    `json:"text"`
	Images []chunking.ExtractedImage `json:"images"`
	Links  []string                  `json:"links"`

	// Files carries the raw bytes of each extracted image, under the same
	// names as Images, for callers that archive them.
	Files []ImageFile `json:"-"`
}

// ImageFile is one extracted image's bytes.
type ImageFile struct {
	Name string
	Data []byte
}

// Extractor dispatches on file extension to the format-specific routines.
// The OCR engine is injected at construction; extraction never fails
// because OCR degraded.
type Extractor struct {
	ocr   ocr.Engine
	maxMB int64
}

// New builds an Extractor. maxMB <= 0 falls back to DefaultMaxFileMB.
func New(engine ocr.Engine, maxMB int64) *Extractor {
	if engine == nil {
		engine = ocr.NewChain()
	}
	if maxMB <= 0 {
		maxMB = DefaultMaxFileMB
	}
	return &Extractor{ocr: engine, maxMB: maxMB}
}

// Extract validates the file and runs the extraction routine for its type.
func (e *Extractor) Extract(ctx context.Context, path string) (*Content, error) {
	if err := Validate(path, e.maxMB); err != nil {
		return nil, err
	}

	switch chunking.DetectType(path) {
	case chunking.DocumentPDF:
		return e.extractPDF(ctx, path)
	case chunking.DocumentDocx:
		return e.extractDocx(ctx, path)
	case chunking.DocumentPptx:
		return e.extractPptx(ctx, path)
	case chunking.DocumentTxt:
		return extractTxt(path)
	case chunking.DocumentImage:
		return e.extractImage(ctx, path)
	default:
		return nil, fmt.Errorf("extraction: unsupported file type %q", filepath.Ext(path))
	}
}

// stemOf returns the file name without directory or extension; it seeds
// the image naming convention ("<stem>_page<n>_img<i>").
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

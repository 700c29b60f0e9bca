package chunking

import (
	"path/filepath"
	"strings"
)

// DocumentType selects the chunking policy for a document. It is a closed
// set; anything unrecognized falls back to DocumentUnknown.
type DocumentType string

const (
	DocumentPDF     DocumentType = "pdf"
	DocumentDocx    DocumentType = "docx"
	DocumentPptx    DocumentType = "pptx"
	DocumentTxt     DocumentType = "txt"
	DocumentImage   DocumentType = "image"
	DocumentUnknown DocumentType = "unknown"
)

// DetectType maps a file name to its document type by extension.
func DetectType(path string) DocumentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return DocumentPDF
	case ".docx":
		return DocumentDocx
	case ".pptx":
		return DocumentPptx
	case ".txt", ".text":
		return DocumentTxt
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff":
		return DocumentImage
	default:
		return DocumentUnknown
	}
}

// ExtractedImage pairs an embedded image identifier with its OCR text.
// The name carries the positional tag ("page3", "slide2") used to correlate
// the image with a chunk.
type ExtractedImage struct {
	Name    string `json:"name"`
	OCRText string `json:"ocr_text"`
}

// Chunk is one bounded unit of document text plus its provenance.
//
// Metadata always carries "source", "chunk_id" and "document_type"; paged
// formats add "page"/"slide" and "total_pages"/"total_slides", linear
// formats add "total_chunks". Keys are accessed by name, never by position.
type Chunk struct {
	Content  string           `json:"content"`
	Metadata map[string]any   `json:"metadata"`
	Images   []ExtractedImage `json:"images,omitempty"`
	Links    []string         `json:"links,omitempty"`
}

package extraction

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/markdave123-py/docuflow/internal/chunking"
)

// pdfcpu names extracted images "<base>_<page>_<resource>.<ext>".
var pdfImageNameRe = regexp.MustCompile(`_(\d+)_[^_.]+\.[^.]+$`)

// extractPDF renders each page's plain text behind a "--- Page N ---"
// marker, then appends one OCR annotation line per embedded image so the
// recognized text survives into the unified representation.
func (e *Extractor) extractPDF(ctx context.Context, path string) (*Content, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("extraction: pdf %s page %d: %v", filepath.Base(path), i, err)
			continue
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s", i, text)
	}

	images, files := e.pdfImages(ctx, path)
	for _, img := range images {
		if strings.TrimSpace(img.OCRText) != "" {
			fmt.Fprintf(&sb, "\n[Image OCR - %s]: %s\n", img.Name, img.OCRText)
		}
	}

	text := sb.String()
	return &Content{Text: text, Images: images, Links: scanLinks(text), Files: files}, nil
}

// pdfImages extracts embedded images into a scratch dir, renames them to
// the "<stem>_page<n>_img<i>" convention and OCRs each one. Image
// extraction is best effort; a failure only costs the annotations.
func (e *Extractor) pdfImages(ctx context.Context, path string) ([]chunking.ExtractedImage, []ImageFile) {
	tmpDir, err := os.MkdirTemp("", "docuflow-pdf-")
	if err != nil {
		log.Printf("extraction: scratch dir: %v", err)
		return nil, nil
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractImagesFile(path, tmpDir, nil, nil); err != nil {
		log.Printf("extraction: pdf image extraction for %s: %v", filepath.Base(path), err)
		return nil, nil
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, nil
	}

	stem := stemOf(path)
	perPage := make(map[int]int)
	var images []chunking.ExtractedImage
	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			continue
		}
		page := pdfImagePage(entry.Name())
		perPage[page]++
		name := fmt.Sprintf("%s_page%d_img%d%s", stem, page, perPage[page], filepath.Ext(entry.Name()))

		text, err := e.ocr.Recognize(ctx, data)
		if err != nil {
			log.Printf("extraction: ocr %s: %v", name, err)
		}
		images = append(images, chunking.ExtractedImage{Name: name, OCRText: text})
		files = append(files, ImageFile{Name: name, Data: data})
	}
	return images, files
}

func pdfImagePage(name string) int {
	m := pdfImageNameRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

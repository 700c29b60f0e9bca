package extraction

import (
	"archive/zip"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/docuflow/internal/chunking"
)

// extractDocx takes the body text from docconv and supplements it with
// the pieces docconv drops: embedded media (OCR'd) and hyperlink
// relationships from the document part.
func (e *Extractor) extractDocx(ctx context.Context, path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	res, err := docconv.Convert(f, docconv.MimeTypeByExtension(path), false)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("convert docx: %w", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}
	defer zr.Close()

	var sb strings.Builder
	sb.WriteString(res.Body)

	stem := stemOf(path)
	count := 0
	var images []chunking.ExtractedImage
	var files []ImageFile
	for _, zf := range zr.File {
		if !strings.HasPrefix(zf.Name, "word/media/") || zf.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(zf)
		if err != nil {
			continue
		}
		count++
		name := fmt.Sprintf("%s_img%d", stem, count)

		text, err := e.ocr.Recognize(ctx, data)
		if err != nil {
			log.Printf("extraction: ocr %s: %v", name, err)
		}
		if strings.TrimSpace(text) != "" {
			fmt.Fprintf(&sb, "\n[Image OCR - %s]: %s\n", name, text)
		}
		images = append(images, chunking.ExtractedImage{Name: name, OCRText: text})
		files = append(files, ImageFile{Name: name, Data: data})
	}

	links := relationshipTargets(&zr.Reader, "word/_rels/document.xml.rels", relTypeHyperlink)
	links = append(links, scanLinks(res.Body)...)

	return &Content{Text: sb.String(), Images: images, Links: dedupe(links), Files: files}, nil
}

package extraction

import (
	"archive/zip"
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/markdave123-py/docuflow/internal/chunking"
)

var slideFileRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPptx walks the slide parts in slide order, emitting a
// "--- Slide N ---" marker per slide followed by its text runs, then the
// slide's images (via its rels part) as OCR annotation lines.
func (e *Extractor) extractPptx(ctx context.Context, path string) (*Content, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx archive: %w", err)
	}
	defer zr.Close()

	slides := make(map[int]*zip.File)
	var nums []int
	for _, zf := range zr.File {
		m := slideFileRe.FindStringSubmatch(zf.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides[n] = zf
		nums = append(nums, n)
	}
	sort.Ints(nums)

	stem := stemOf(path)
	var sb strings.Builder
	var images []chunking.ExtractedImage
	var files []ImageFile
	var links []string

	for _, n := range nums {
		fmt.Fprintf(&sb, "\n--- Slide %d ---\n", n)
		if data, err := readZipFile(slides[n]); err == nil {
			sb.WriteString(drawingText(data))
		}

		relsPath := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)
		count := 0
		for _, target := range relationshipTargets(&zr.Reader, relsPath, relTypeImage) {
			data := readZipEntry(&zr.Reader, resolveSlideTarget(target))
			if data == nil {
				continue
			}
			count++
			name := fmt.Sprintf("%s_slide%d_img%d", stem, n, count)

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

		links = append(links, relationshipTargets(&zr.Reader, relsPath, relTypeHyperlink)...)
	}

	text := sb.String()
	links = append(links, scanLinks(text)...)
	return &Content{Text: text, Images: images, Links: dedupe(links), Files: files}, nil
}

// resolveSlideTarget maps a slide-relative rels target such as
// "../media/image1.png" onto its archive path "ppt/media/image1.png".
func resolveSlideTarget(target string) string {
	if rest, ok := strings.CutPrefix(target, "../"); ok {
		return "ppt/" + rest
	}
	return "ppt/slides/" + target
}

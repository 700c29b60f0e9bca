package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxSize = 1000
	DefaultOverlap = 200
)

// Config tunes the chunker.
//
// MaxSize: maximum chunk length in characters (runes).
// Overlap: characters of context carried between consecutive split pieces;
// must stay below MaxSize.
type Config struct {
	MaxSize int
	Overlap int
}

// DefaultConfig returns the standard 1000/200 configuration.
func DefaultConfig() Config {
	return Config{MaxSize: DefaultMaxSize, Overlap: DefaultOverlap}
}

// Chunker turns a document's extracted text into an ordered sequence of
// metadata-tagged chunks. It holds no mutable state; one instance can chunk
// any number of documents, concurrently if the caller wishes.
type Chunker struct {
	cfg Config
}

// New validates the configuration and returns a Chunker. A zero Config gets
// the defaults; otherwise MaxSize must be positive and Overlap must be a
// non-negative value smaller than MaxSize.
func New(cfg Config) (*Chunker, error) {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if cfg.MaxSize <= 0 {
		return nil, fmt.Errorf("chunking: max size must be positive, got %d", cfg.MaxSize)
	}
	if cfg.Overlap < 0 {
		return nil, fmt.Errorf("chunking: overlap must be non-negative, got %d", cfg.Overlap)
	}
	if cfg.Overlap >= cfg.MaxSize {
		return nil, fmt.Errorf("chunking: overlap %d must be smaller than max size %d", cfg.Overlap, cfg.MaxSize)
	}
	return &Chunker{cfg: cfg}, nil
}

// ChunkDocument applies the policy for docType to the extracted text and
// returns the chunk sequence in source order. Nil images/links are treated
// as empty. Empty input yields an empty sequence, never an error.
func (c *Chunker) ChunkDocument(text, source string, docType DocumentType, images []ExtractedImage, links []string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	switch docType {
	case DocumentPDF:
		return c.chunkPaged(text, source, docType, images, links)
	case DocumentPptx:
		return c.chunkPaged(text, source, docType, images, links)
	case DocumentDocx:
		return c.chunkParagraphs(text, source, images, links)
	case DocumentTxt:
		// Plain text never carries images or links.
		return c.chunkLinear(text, source, DocumentTxt, nil, nil)
	default:
		return c.chunkLinear(text, source, docType, images, links)
	}
}

// chunkPaged handles pdf and pptx: one segment per page/slide marker,
// oversized segments sub-split, images filtered to the segment's positional
// tag, links attached in full.
func (c *Chunker) chunkPaged(text, source string, docType DocumentType, images []ExtractedImage, links []string) []Chunk {
	kind, label := "Page", "page"
	if docType == DocumentPptx {
		kind, label = "Slide", "slide"
	}

	segs := segmentByMarker(text, kind)
	total := 0
	for _, seg := range segs {
		if seg.Marked {
			total++
		}
	}

	var out []Chunk
	for _, seg := range segs {
		body := strings.TrimSpace(seg.Body)
		if body == "" {
			continue
		}

		segImages := filterImages(images, fmt.Sprintf("%s%d", label, seg.Label))
		meta := func(chunkID string) map[string]any {
			return map[string]any{
				"source":          source,
				label:             seg.Label,
				"chunk_id":        chunkID,
				"document_type":   string(docType),
				"total_" + label + "s": total,
			}
		}

		if len([]rune(body)) > c.cfg.MaxSize {
			for j, piece := range SplitText(body, c.cfg.MaxSize, c.cfg.Overlap) {
				out = append(out, Chunk{
					Content:  piece,
					Metadata: meta(fmt.Sprintf("%s_%d_chunk_%d", label, seg.Label, j)),
					Images:   segImages,
					Links:    links,
				})
			}
		} else {
			out = append(out, Chunk{
				Content:  body,
				Metadata: meta(fmt.Sprintf("%s_%d", label, seg.Label)),
				Images:   segImages,
				Links:    links,
			})
		}
	}
	return out
}

// chunkParagraphs handles docx: paragraphs accumulate greedily into a
// buffer that flushes whenever the next paragraph would overflow MaxSize.
// A single paragraph longer than MaxSize is emitted whole rather than cut.
func (c *Chunker) chunkParagraphs(text, source string, images []ExtractedImage, links []string) []Chunk {
	var out []Chunk
	var buf strings.Builder
	bufRunes := 0
	k := 0

	flush := func() {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		bufRunes = 0
		if content == "" {
			return
		}
		out = append(out, Chunk{
			Content: content,
			Metadata: map[string]any{
				"source":        source,
				"chunk_id":      fmt.Sprintf("docx_chunk_%d", k),
				"document_type": string(DocumentDocx),
			},
			Images: images,
			Links:  links,
		})
		k++
	}

	for _, line := range strings.Split(text, "\n") {
		para := strings.TrimSpace(line)
		if para == "" {
			continue
		}
		paraRunes := utf8.RuneCountInString(para)
		if bufRunes > 0 && bufRunes+paraRunes > c.cfg.MaxSize {
			flush()
		}
		buf.WriteString(para)
		buf.WriteByte('\n')
		bufRunes += paraRunes + 1
	}
	flush()
	return out
}

// chunkLinear handles txt and unknown types: the splitter runs over the
// whole text and every chunk is annotated with the final chunk count.
func (c *Chunker) chunkLinear(text, source string, docType DocumentType, images []ExtractedImage, links []string) []Chunk {
	pieces := SplitText(text, c.cfg.MaxSize, c.cfg.Overlap)

	out := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		out = append(out, Chunk{
			Content: piece,
			Metadata: map[string]any{
				"source":        source,
				"chunk_id":      fmt.Sprintf("%s_chunk_%d", docType, i),
				"document_type": string(docType),
				"total_chunks":  len(pieces),
			},
			Images: images,
			Links:  links,
		})
	}
	return out
}

// filterImages keeps images whose name contains the positional tag, e.g.
// "page3" or "slide2". Name collisions are accepted as-is; the tag scheme
// is the extractor's side of the contract.
func filterImages(images []ExtractedImage, tag string) []ExtractedImage {
	var out []ExtractedImage
	for _, img := range images {
		if strings.Contains(img.Name, tag) {
			out = append(out, img)
		}
	}
	return out
}

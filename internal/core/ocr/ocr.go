package ocr

import (
	"context"
	"log"
)

// Placeholder strings returned when no engine can produce text. Downstream
// chunking treats these as ordinary degraded text, never as an error.
const (
	TextUnavailable = "[OCR not available - no text extracted from image]"
	TextFailed      = "[OCR failed - no text extracted from image]"
)

// Engine converts image bytes to text. Implementations wrap a single
// backend; fallback ordering lives in Chain.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Name() string
}

// Chain tries its engines in order and degrades to a placeholder string
// instead of failing. Capabilities are injected at construction; there are
// no package-level availability flags.
type Chain struct {
	engines []Engine
}

// NewChain builds the fallback chain from the available engines, in the
// order given (e.g. remote Vision first, local Tesseract second).
func NewChain(engines ...Engine) *Chain {
	return &Chain{engines: engines}
}

// Recognize returns the first engine's successful output. When every engine
// fails it returns TextFailed; when no engine is configured at all it
// returns TextUnavailable. The error return is always nil so callers can
// treat OCR as an infallible, possibly-degraded text source.
func (c *Chain) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(c.engines) == 0 {
		return TextUnavailable, nil
	}
	for _, eng := range c.engines {
		text, err := eng.Recognize(ctx, image)
		if err != nil {
			log.Printf("ocr: %s failed: %v", eng.Name(), err)
			continue
		}
		return text, nil
	}
	return TextFailed, nil
}

func (c *Chain) Name() string { return "chain" }

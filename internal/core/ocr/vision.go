package ocr

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// VisionEngine performs text detection through the Google Vision API.
type VisionEngine struct {
	svc *vision.Service
}

// NewVisionEngine builds the Vision client with an API key.
func NewVisionEngine(ctx context.Context, apiKey string) (*VisionEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("vision: API key not set")
	}
	svc, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("vision: create service: %w", err)
	}
	return &VisionEngine{svc: svc}, nil
}

func (e *VisionEngine) Name() string { return "google-vision" }

// Recognize runs TEXT_DETECTION on the image and returns the full-text
// annotation, or an empty string when the image contains no text.
func (e *VisionEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := e.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("vision: annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("vision: empty response")
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision: %s", r.Error.Message)
	}
	if len(r.TextAnnotations) == 0 {
		return "", nil
	}
	return r.TextAnnotations[0].Description, nil
}

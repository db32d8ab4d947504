// Package ocr provides the text-recognition boundary for label images: an
// Engine contract, a Tesseract-backed default provider, a Gemini-backed
// alternative, and the image-quality gate that runs before recognition.
package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"labelcheck-backend/models"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Input encapsulates a single label image submitted for OCR.
type Input struct {
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// Languages is a list of language hints (e.g., "eng") that providers can
	// use to select trained data.
	Languages []string
	// DPI carries the effective dots-per-inch for the image; zero means unknown.
	DPI int
	// Metadata allows callers to pass through engine-specific knobs (e.g.,
	// "tessedit_pageseg_mode" for Tesseract) without hard-coding them into the
	// API surface.
	Metadata map[string]string
}

// Word represents a single recognized token with its position on the label.
type Word struct {
	Text string
	Box  models.BoundingBox
}

// Result captures OCR output for a single label image.
type Result struct {
	// PlainText contains the linearized text extracted from the image.
	PlainText string
	// Words carries word-level positions; providers without layout support
	// leave it empty.
	Words []Word
}

// WordBoxes groups recognized words (lower-cased) to their bounding boxes,
// keeping only words at or above minConfidence (0-100). A word appearing
// multiple times on the label yields multiple boxes.
func (r Result) WordBoxes(minConfidence int) models.WordBoxes {
	boxes := make(models.WordBoxes)
	for _, w := range r.Words {
		if w.Box.Conf < minConfidence {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(w.Text))
		if key == "" {
			continue
		}
		boxes[key] = append(boxes[key], w.Box)
	}
	return boxes
}

// Engine is the OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// NewEngineFromEnv creates an OCR engine from environment variables.
// OCR_PROVIDER selects the backend; Tesseract is the default.
func NewEngineFromEnv() (Engine, error) {
	provider := os.Getenv("OCR_PROVIDER")
	if provider == "" {
		provider = "tesseract"
	}

	switch provider {
	case "tesseract":
		return NewTesseractEngine(), nil
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required for the gemini OCR provider")
		}
		model := os.Getenv("GEMINI_OCR_MODEL")
		if model == "" {
			model = defaultGeminiModel
		}
		return NewGeminiEngine(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider: %s", provider)
	}
}

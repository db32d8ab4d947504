package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

const geminiOCRPrompt = `You are an OCR engine for beverage label images.
Transcribe ALL visible text from the image exactly as printed, preserving
casing, punctuation and line breaks. Do not correct spelling, do not add
commentary, do not summarize. Output the raw transcription only.`

// GeminiEngine implements Engine using the Gemini vision API. It returns
// plain text only; word-level bounding boxes are not available from this
// provider.
type GeminiEngine struct {
	apiKey string
	model  string
}

// NewGeminiEngine constructs a Gemini-backed OCR engine.
func NewGeminiEngine(apiKey, model string) *GeminiEngine {
	return &GeminiEngine{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

func (e *GeminiEngine) Name() string { return "gemini" }

// Recognize sends the label image to Gemini with a verbatim-transcription
// instruction and returns the transcribed text.
func (e *GeminiEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	if e.apiKey == "" {
		return Result{}, errors.New("gemini: API key is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return Result{}, fmt.Errorf("gemini: create client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.model)
	var temperature float32
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: &temperature,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(geminiOCRPrompt)},
	}

	resp, err := m.GenerateContent(ctx,
		genai.ImageData(imageDataFormat(in.Format), in.Image),
		genai.Text("Transcribe the label text."),
	)
	if err != nil {
		return Result{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return Result{PlainText: strings.TrimSpace(sb.String())}, nil
}

// imageDataFormat converts a MIME content type into the bare format name the
// genai SDK expects ("image/png" -> "png").
func imageDataFormat(format ImageFormat) string {
	if f, ok := strings.CutPrefix(string(format), "image/"); ok && f != "" {
		return f
	}
	return "png"
}

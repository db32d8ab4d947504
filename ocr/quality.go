package ocr

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for the formats accepted by the quality gate.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image quality thresholds
const (
	MinWidth    = 400
	MinHeight   = 400
	MinFileSize = 5000             // 5KB
	MaxFileSize = 10 * 1024 * 1024 // 10MB
)

// ValidateImageQuality checks a label image before OCR processing. It returns
// false with a human-readable reason when the image is too small, too large,
// too low-resolution or not decodable; OCR must not run on rejected input.
func ValidateImageQuality(imageBytes []byte) (bool, string) {
	size := len(imageBytes)
	if size < MinFileSize {
		return false, fmt.Sprintf("Image file too small (%d bytes). Minimum %d bytes required for quality OCR.", size, MinFileSize)
	}
	if size > MaxFileSize {
		return false, fmt.Sprintf("Image file too large (%.1fMB). Maximum %dMB allowed.", float64(size)/1024/1024, MaxFileSize/1024/1024)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageBytes))
	if err != nil {
		return false, fmt.Sprintf("Invalid image file: %v", err)
	}

	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return false, fmt.Sprintf("Image resolution too low (%dx%d). Minimum %dx%d pixels required for accurate OCR.",
			cfg.Width, cfg.Height, MinWidth, MinHeight)
	}

	return true, "OK"
}

// DetectFormat returns the declared image format of the payload, defaulting
// to PNG when the format is not recognized.
func DetectFormat(imageBytes []byte) ImageFormat {
	_, format, err := image.DecodeConfig(bytes.NewReader(imageBytes))
	if err != nil {
		return ImageFormatPNG
	}
	switch format {
	case "jpeg":
		return ImageFormatJPEG
	case "tiff":
		return ImageFormatTIFF
	default:
		return ImageFormatPNG
	}
}

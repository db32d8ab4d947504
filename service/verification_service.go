package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"labelcheck-backend/models"
	"labelcheck-backend/ocr"
	"labelcheck-backend/repository"
	"labelcheck-backend/storage"
	"labelcheck-backend/verification"

	"github.com/google/uuid"
)

// VerificationService runs the label verification pipeline: image quality
// gate, OCR, the verification engine, and best-effort persistence of the
// verdict and the uploaded image.
type VerificationService struct {
	submissionRepo *repository.SubmissionRepository
	imageStorage   storage.Storage
	ocrEngine      ocr.Engine
}

// VerificationServiceOption is a functional option for VerificationService
type VerificationServiceOption func(*VerificationService)

// WithSubmissionRepository sets the submission repository
func WithSubmissionRepository(repo *repository.SubmissionRepository) VerificationServiceOption {
	return func(s *VerificationService) {
		s.submissionRepo = repo
	}
}

// WithImageStorage sets the label image storage
func WithImageStorage(store storage.Storage) VerificationServiceOption {
	return func(s *VerificationService) {
		s.imageStorage = store
	}
}

// WithOCREngine sets the OCR engine
func WithOCREngine(engine ocr.Engine) VerificationServiceOption {
	return func(s *VerificationService) {
		s.ocrEngine = engine
	}
}

// NewVerificationService creates a new verification service
func NewVerificationService(opts ...VerificationServiceOption) *VerificationService {
	s := &VerificationService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrMissingOCREngine = errors.New("ocr engine not set")
	ErrMissingImage     = errors.New("label image is required")
	ErrOCRFailed        = errors.New("text recognition failed")
)

const (
	// OCR output shorter than this cannot carry a meaningful label.
	minExtractedTextLength = 10

	// Words below this OCR confidence (0-100) are excluded from the
	// word-box map returned for highlighting.
	minWordConfidence = 60
)

// VerifyLabelRequest represents a request to verify a label image
type VerifyLabelRequest struct {
	UserID        *uuid.UUID
	Attributes    models.ClaimedAttributes
	ImageBytes    []byte
	ImageFilename string
}

// VerifyLabelResult represents the outcome of a verification request
type VerifyLabelResult struct {
	Result       *models.VerificationResult
	SubmissionID *uuid.UUID
}

// VerifyLabel runs the full pipeline for one uploaded label image. Rejections
// by the quality gate and unreadable images produce a failure verdict
// (Success=false) rather than an error; errors are reserved for pipeline
// breakage such as the OCR engine being unavailable.
func (s *VerificationService) VerifyLabel(ctx context.Context, req VerifyLabelRequest) (*VerifyLabelResult, error) {
	if s.ocrEngine == nil {
		return nil, ErrMissingOCREngine
	}
	if len(req.ImageBytes) == 0 {
		return nil, ErrMissingImage
	}

	// Validate image quality before OCR
	if ok, reason := ocr.ValidateImageQuality(req.ImageBytes); !ok {
		log.Printf("Image quality validation failed: %s", reason)
		return &VerifyLabelResult{
			Result: &models.VerificationResult{
				Success:      false,
				OverallMatch: false,
				Message:      "Image quality check failed: " + reason,
			},
		}, nil
	}

	ocrResult, err := s.ocrEngine.Recognize(ctx, ocr.Input{
		Image:     req.ImageBytes,
		Format:    ocr.DetectFormat(req.ImageBytes),
		Languages: []string{"eng"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}

	extractedText := ocrResult.PlainText
	if len(strings.TrimSpace(extractedText)) < minExtractedTextLength {
		log.Printf("Could not extract sufficient text from image (%d characters)", len(extractedText))
		return &VerifyLabelResult{
			Result: &models.VerificationResult{
				Success:       false,
				OverallMatch:  false,
				Message:       "Could not read text from the label image. Please try a clearer image.",
				ExtractedText: extractedText,
			},
		}, nil
	}

	result := verification.VerifyLabelData(extractedText, req.Attributes)
	result.WordBoxes = ocrResult.WordBoxes(minWordConfidence)

	// Persistence is best effort: a storage or database hiccup must not
	// withhold a verdict that was already computed.
	submissionID := s.persist(ctx, req, result)

	return &VerifyLabelResult{
		Result:       result,
		SubmissionID: submissionID,
	}, nil
}

func (s *VerificationService) persist(ctx context.Context, req VerifyLabelRequest, result *models.VerificationResult) *uuid.UUID {
	if s.submissionRepo == nil {
		return nil
	}

	imagePath := ""
	if s.imageStorage != nil {
		path, err := s.imageStorage.Upload(ctx, uuid.New(), req.ImageFilename, bytes.NewReader(req.ImageBytes))
		if err != nil {
			log.Printf("Warning: failed to store label image: %v", err)
		} else {
			imagePath = path
		}
	}

	submission := &models.Submission{
		UserID:         req.UserID,
		BrandName:      req.Attributes.BrandName,
		ProductClass:   req.Attributes.ProductClass,
		AlcoholContent: req.Attributes.AlcoholContent,
		NetContents:    req.Attributes.NetContents,
		BeverageType:   req.Attributes.BeverageType,
		ImagePath:      imagePath,
		ExtractedText:  result.ExtractedText,
		Success:        result.Success,
		OverallMatch:   result.OverallMatch,
		Message:        result.Message,
		Checks:         result.Checks,
		WordBoxes:      result.WordBoxes,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		log.Printf("Warning: failed to save submission record: %v", err)
		return nil
	}

	return &submission.ID
}

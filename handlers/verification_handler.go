package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"labelcheck-backend/models"
	"labelcheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VerificationHandler handles HTTP requests for label verification
type VerificationHandler struct {
	verificationService *service.VerificationService
	maxImageSize        int64
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		maxImageSize:        10 * 1024 * 1024, // 10MB
	}
}

// VerifyLabel handles POST /api/verify
func (h *VerificationHandler) VerifyLabel(c *gin.Context) {
	brandName := strings.TrimSpace(c.PostForm("brand_name"))
	if brandName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_BRAND_NAME",
				"message": "brand_name is required",
			},
		})
		return
	}

	productClass := strings.TrimSpace(c.PostForm("product_class"))
	if productClass == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_PRODUCT_CLASS",
				"message": "product_class is required",
			},
		})
		return
	}

	alcoholContent, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("alcohol_content")), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ALCOHOL_CONTENT",
				"message": "alcohol_content must be a number",
			},
		})
		return
	}

	var netContents *string
	if nc := strings.TrimSpace(c.PostForm("net_contents")); nc != "" {
		netContents = &nc
	}

	beverageType := models.ParseBeverageType(strings.ToLower(c.PostForm("beverage_type")))

	var userID *uuid.UUID
	if uidStr := c.PostForm("user_id"); uidStr != "" {
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_USER_ID",
					"message": "Invalid user_id format",
				},
			})
			return
		}
		userID = &uid
	}

	fileHeader, err := c.FormFile("label_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "label_image file is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxImageSize),
			},
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Uploaded file must be an image (JPEG, PNG, etc.)",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	log.Printf("Processing verification request for %s - brand: %s", beverageType, brandName)

	result, err := h.verificationService.VerifyLabel(c.Request.Context(), service.VerifyLabelRequest{
		UserID: userID,
		Attributes: models.ClaimedAttributes{
			BrandName:      brandName,
			ProductClass:   productClass,
			AlcoholContent: alcoholContent,
			NetContents:    netContents,
			BeverageType:   beverageType,
		},
		ImageBytes:    imageBytes,
		ImageFilename: fileHeader.Filename,
	})
	if err != nil {
		code := "VERIFICATION_ERROR"
		if errors.Is(err, service.ErrOCRFailed) {
			code = "OCR_ERROR"
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": fmt.Sprintf("Error processing verification: %v", err),
			},
		})
		return
	}

	log.Printf("Verification complete. Match: %v", result.Result.OverallMatch)

	response := gin.H{
		"success":        result.Result.Success,
		"overall_match":  result.Result.OverallMatch,
		"message":        result.Result.Message,
		"extracted_text": result.Result.ExtractedText,
		"checks":         result.Result.Checks,
		"word_boxes":     result.Result.WordBoxes,
	}
	if result.SubmissionID != nil {
		response["submission_id"] = result.SubmissionID
	}

	c.JSON(http.StatusOK, response)
}

package handlers

import (
	"net/http"
	"strconv"

	"labelcheck-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionHandler handles HTTP requests for stored verification submissions
type SubmissionHandler struct {
	submissionRepo *repository.SubmissionRepository
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionRepo *repository.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{
		submissionRepo: submissionRepo,
	}
}

// GetSubmission handles GET /api/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid submission ID format",
			},
		})
		return
	}

	submission, err := h.submissionRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Submission not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submission,
	})
}

// ListSubmissions handles GET /api/submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	submissions, err := h.submissionRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list submissions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submissions,
	})
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents a persisted label verification request and its verdict
type Submission struct {
	ID             uuid.UUID    `json:"id"`
	UserID         *uuid.UUID   `json:"user_id,omitempty"`
	BrandName      string       `json:"brand_name"`
	ProductClass   string       `json:"product_class"`
	AlcoholContent float64      `json:"alcohol_content"`
	NetContents    *string      `json:"net_contents,omitempty"`
	BeverageType   BeverageType `json:"beverage_type"`
	ImagePath      string       `json:"image_path"`
	ExtractedText  string       `json:"extracted_text"`
	Success        bool         `json:"success"`
	OverallMatch   bool         `json:"overall_match"`
	Message        string       `json:"message"`
	Checks         FieldChecks  `json:"checks"`
	WordBoxes      WordBoxes    `json:"word_boxes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

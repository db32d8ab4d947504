package models

import (
	"database/sql/driver"
	"encoding/json"
)

// BeverageType represents the category of beverage being verified
type BeverageType string

const (
	BeverageSpirits BeverageType = "spirits"
	BeverageWine    BeverageType = "wine"
	BeverageBeer    BeverageType = "beer"
)

// ParseBeverageType converts a form value into a BeverageType,
// defaulting to spirits for unknown values
func ParseBeverageType(s string) BeverageType {
	switch BeverageType(s) {
	case BeverageWine:
		return BeverageWine
	case BeverageBeer:
		return BeverageBeer
	default:
		return BeverageSpirits
	}
}

// ClaimedAttributes holds the label attributes declared on the submission form
type ClaimedAttributes struct {
	BrandName      string       `json:"brand_name"`
	ProductClass   string       `json:"product_class"`
	AlcoholContent float64      `json:"alcohol_content"`
	NetContents    *string      `json:"net_contents,omitempty"`
	BeverageType   BeverageType `json:"beverage_type"`
}

// BoundingBox represents word-level OCR coordinates for highlighting
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Conf   int `json:"conf"`
}

// FieldCheck represents the verification result for a single label field
type FieldCheck struct {
	FieldName     string   `json:"field_name"`
	ExpectedValue string   `json:"expected_value"`
	FoundValue    *string  `json:"found_value"`
	Matched       bool     `json:"matched"`
	Message       string   `json:"message"`
	Violations    []string `json:"violations,omitempty"`
}

// FieldChecks is a list of field checks, stored as JSONB
type FieldChecks []FieldCheck

// Value implements driver.Valuer for JSONB
func (f FieldChecks) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB
func (f *FieldChecks) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*f = nil
		return nil
	}

	return json.Unmarshal(bytes, f)
}

// WordBoxes maps lower-cased recognized words to their bounding boxes
type WordBoxes map[string][]BoundingBox

// Value implements driver.Valuer for JSONB
func (w WordBoxes) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements sql.Scanner for JSONB
func (w *WordBoxes) Scan(value interface{}) error {
	if value == nil {
		*w = make(WordBoxes)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*w = make(WordBoxes)
		return nil
	}

	return json.Unmarshal(bytes, w)
}

// VerificationResult represents the complete outcome of one label verification
type VerificationResult struct {
	Success       bool        `json:"success"`
	OverallMatch  bool        `json:"overall_match"`
	Message       string      `json:"message"`
	ExtractedText string      `json:"extracted_text"`
	Checks        FieldChecks `json:"checks"`
	WordBoxes     WordBoxes   `json:"word_boxes,omitempty"`
}

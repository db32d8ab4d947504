package repository

import (
	"context"

	"labelcheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles database operations for label submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create creates a new submission record
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO label_submissions (
			user_id, brand_name, product_class, alcohol_content, net_contents,
			beverage_type, image_path, extracted_text, success, overall_match,
			message, checks, word_boxes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		submission.UserID,
		submission.BrandName,
		submission.ProductClass,
		submission.AlcoholContent,
		submission.NetContents,
		submission.BeverageType,
		submission.ImagePath,
		submission.ExtractedText,
		submission.Success,
		submission.OverallMatch,
		submission.Message,
		submission.Checks,
		submission.WordBoxes,
	).Scan(&submission.ID, &submission.CreatedAt)

	return err
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	submission := &models.Submission{}
	query := `
		SELECT id, user_id, brand_name, product_class, alcohol_content, net_contents,
			beverage_type, image_path, extracted_text, success, overall_match,
			message, checks, word_boxes, created_at
		FROM label_submissions
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&submission.ID,
		&submission.UserID,
		&submission.BrandName,
		&submission.ProductClass,
		&submission.AlcoholContent,
		&submission.NetContents,
		&submission.BeverageType,
		&submission.ImagePath,
		&submission.ExtractedText,
		&submission.Success,
		&submission.OverallMatch,
		&submission.Message,
		&submission.Checks,
		&submission.WordBoxes,
		&submission.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return submission, nil
}

// List retrieves submissions ordered by recency
func (r *SubmissionRepository) List(ctx context.Context, limit, offset int) ([]*models.Submission, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, brand_name, product_class, alcohol_content, net_contents,
			beverage_type, image_path, extracted_text, success, overall_match,
			message, checks, word_boxes, created_at
		FROM label_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission := &models.Submission{}
		err := rows.Scan(
			&submission.ID,
			&submission.UserID,
			&submission.BrandName,
			&submission.ProductClass,
			&submission.AlcoholContent,
			&submission.NetContents,
			&submission.BeverageType,
			&submission.ImagePath,
			&submission.ExtractedText,
			&submission.Success,
			&submission.OverallMatch,
			&submission.Message,
			&submission.Checks,
			&submission.WordBoxes,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

// Delete deletes a submission record
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM label_submissions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

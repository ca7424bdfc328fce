package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// CreateReview creates a new review
func (s *Storage) CreateReview(ctx context.Context, review *api.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, user_name, title, comment, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.UserName,
		review.Title,
		review.Comment,
		review.Rating,
		review.CreatedAt,
	)

	if err != nil {
		// Один пользователь - один отзыв на товар
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrReviewAlreadyExists
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// GetReview retrieves review by ID
func (s *Storage) GetReview(ctx context.Context, reviewID string) (*api.Review, error) {
	query := `
		SELECT id, product_id, user_id, user_name, title, comment, rating, created_at
		FROM reviews
		WHERE id = ?
	`

	review := &api.Review{}
	err := s.db.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.ProductID,
		&review.UserID,
		&review.UserName,
		&review.Title,
		&review.Comment,
		&review.Rating,
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// ListReviews returns reviews, optionally filtered by product
func (s *Storage) ListReviews(ctx context.Context, productID string) ([]api.Review, error) {
	query := `
		SELECT id, product_id, user_id, user_name, title, comment, rating, created_at
		FROM reviews
	`
	args := []any{}
	if productID != "" {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]api.Review, 0)
	for rows.Next() {
		var review api.Review
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.UserID,
			&review.UserName,
			&review.Title,
			&review.Comment,
			&review.Rating,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// DeleteReview removes a review
func (s *Storage) DeleteReview(ctx context.Context, reviewID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrReviewNotFound
	}

	return nil
}

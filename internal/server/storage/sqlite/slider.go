package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// CreateImage stores a slider image record
func (s *Storage) CreateImage(ctx context.Context, image *api.SliderImage) error {
	query := `
		INSERT INTO slider_images (id, title, image_url, delete_token, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		image.ID,
		image.Title,
		image.ImageURL,
		image.DeleteToken,
		image.Position,
		image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert slider image: %w", err)
	}

	return nil
}

// ListImages returns all slider images ordered by position
func (s *Storage) ListImages(ctx context.Context) ([]api.SliderImage, error) {
	query := `
		SELECT id, title, image_url, delete_token, position, created_at
		FROM slider_images
		ORDER BY position, created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list slider images: %w", err)
	}
	defer rows.Close()

	images := make([]api.SliderImage, 0)
	for rows.Next() {
		var image api.SliderImage
		err := rows.Scan(
			&image.ID,
			&image.Title,
			&image.ImageURL,
			&image.DeleteToken,
			&image.Position,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slider image: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slider images: %w", err)
	}

	return images, nil
}

// GetImage retrieves slider image by ID
func (s *Storage) GetImage(ctx context.Context, imageID string) (*api.SliderImage, error) {
	query := `
		SELECT id, title, image_url, delete_token, position, created_at
		FROM slider_images
		WHERE id = ?
	`

	image := &api.SliderImage{}
	err := s.db.QueryRowContext(ctx, query, imageID).Scan(
		&image.ID,
		&image.Title,
		&image.ImageURL,
		&image.DeleteToken,
		&image.Position,
		&image.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSliderImageNotFound
		}
		return nil, fmt.Errorf("failed to get slider image: %w", err)
	}

	return image, nil
}

// DeleteImage removes a slider image record
func (s *Storage) DeleteImage(ctx context.Context, imageID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM slider_images WHERE id = ?`, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete slider image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrSliderImageNotFound
	}

	return nil
}

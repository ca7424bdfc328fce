package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
)

// UpsertCode stores a code for the email, replacing any previous one
func (s *Storage) UpsertCode(ctx context.Context, code *models.OTPCode) error {
	query := `
		INSERT INTO otp_codes (email, code, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			code = excluded.code,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`

	_, err := s.db.ExecContext(ctx, query,
		code.Email,
		code.Code,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert otp code: %w", err)
	}

	return nil
}

// GetCode retrieves the active code for the email
func (s *Storage) GetCode(ctx context.Context, email string) (*models.OTPCode, error) {
	query := `
		SELECT email, code, expires_at, created_at
		FROM otp_codes
		WHERE email = ?
	`

	code := &models.OTPCode{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&code.Email,
		&code.Code,
		&code.ExpiresAt,
		&code.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get otp code: %w", err)
	}

	return code, nil
}

// DeleteCode removes the code for the email
func (s *Storage) DeleteCode(ctx context.Context, email string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete otp code: %w", err)
	}

	return nil
}

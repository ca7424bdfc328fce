package storage

import (
	"context"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// MarkVerified marks the user's email as verified
	// Returns ErrUserNotFound if user doesn't exist
	MarkVerified(ctx context.Context, userID string) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}

// TokenStorage defines interface for refresh token persistence
type TokenStorage interface {
	// SaveRefreshToken stores a refresh token
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves a refresh token
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteRefreshToken removes a refresh token
	// Returns ErrTokenNotFound if token doesn't exist
	DeleteRefreshToken(ctx context.Context, token string) error

	// DeleteUserTokens removes all refresh tokens of the user,
	// returns the number of deleted tokens
	DeleteUserTokens(ctx context.Context, userID string) (int, error)

	// DeleteExpiredTokens removes all expired tokens,
	// returns the number of deleted tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}

// OTPStorage defines interface for one-time verification codes.
// На один email хранится не более одного активного кода.
type OTPStorage interface {
	// UpsertCode stores a code for the email, replacing any previous one
	UpsertCode(ctx context.Context, code *models.OTPCode) error

	// GetCode retrieves the active code for the email
	// Returns ErrOTPNotFound if no code is stored
	GetCode(ctx context.Context, email string) (*models.OTPCode, error)

	// DeleteCode removes the code for the email (после успешной проверки)
	DeleteCode(ctx context.Context, email string) error
}

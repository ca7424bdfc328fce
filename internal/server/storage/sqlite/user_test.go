package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t.Run("create new user successfully", func(t *testing.T) {
		user := createTestUser(t, ctx, s, "first@example.com")

		got, err := s.GetUserByEmail(ctx, "first@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Name, got.Name)
		assert.Equal(t, models.RoleCustomer, got.Role)
		assert.True(t, got.Verified)
		assert.Nil(t, got.LastLogin)
	})

	t.Run("duplicate email", func(t *testing.T) {
		createTestUser(t, ctx, s, "dup@example.com")

		err := s.CreateUser(ctx, &models.User{
			ID:           uuid.New().String(),
			Email:        "dup@example.com",
			Name:         "Another",
			PasswordHash: "hash",
			Role:         models.RoleCustomer,
			CreatedAt:    time.Now().UTC(),
		})
		assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	})
}

func TestUserStorage_GetUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "user@example.com")

	t.Run("by id", func(t *testing.T) {
		got, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", got.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.GetUserByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})
}

func TestUserStorage_MarkVerified(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "fresh@example.com")
	_, err := s.db.ExecContext(ctx, `UPDATE users SET verified = 0 WHERE id = ?`, user.ID)
	require.NoError(t, err)

	require.NoError(t, s.MarkVerified(ctx, user.ID))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	assert.ErrorIs(t, s.MarkVerified(ctx, uuid.New().String()), storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "user@example.com")
	loginTime := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.UpdateLastLogin(ctx, user.ID, loginTime))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, loginTime, *got.LastLogin, time.Second)
}

func TestTokenStorage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "user@example.com")

	newToken := func(token string, expiresAt time.Time) *models.RefreshToken {
		return &models.RefreshToken{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: expiresAt.UTC(),
			CreatedAt: time.Now().UTC(),
		}
	}

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-1", time.Now().Add(time.Hour))))

		got, err := s.GetRefreshToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := s.GetRefreshToken(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	})

	t.Run("delete token", func(t *testing.T) {
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-del", time.Now().Add(time.Hour))))
		require.NoError(t, s.DeleteRefreshToken(ctx, "tok-del"))

		_, err := s.GetRefreshToken(ctx, "tok-del")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound)

		assert.ErrorIs(t, s.DeleteRefreshToken(ctx, "tok-del"), storage.ErrTokenNotFound)
	})

	t.Run("delete all user tokens", func(t *testing.T) {
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-a", time.Now().Add(time.Hour))))
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-b", time.Now().Add(time.Hour))))

		count, err := s.DeleteUserTokens(ctx, user.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 2)

		_, err = s.GetRefreshToken(ctx, "tok-a")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	})

	t.Run("delete expired tokens", func(t *testing.T) {
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-old", time.Now().Add(-time.Hour))))
		require.NoError(t, s.SaveRefreshToken(ctx, newToken("tok-live", time.Now().Add(time.Hour))))

		count, err := s.DeleteExpiredTokens(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, err = s.GetRefreshToken(ctx, "tok-old")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound)
		_, err = s.GetRefreshToken(ctx, "tok-live")
		assert.NoError(t, err)
	})
}

func TestOTPStorage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	newCode := func(email, code string) *models.OTPCode {
		now := time.Now().UTC()
		return &models.OTPCode{
			Email:     email,
			Code:      code,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now,
		}
	}

	t.Run("upsert and get", func(t *testing.T) {
		require.NoError(t, s.UpsertCode(ctx, newCode("user@example.com", "111111")))

		got, err := s.GetCode(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "111111", got.Code)
	})

	t.Run("upsert replaces previous code", func(t *testing.T) {
		require.NoError(t, s.UpsertCode(ctx, newCode("user@example.com", "222222")))

		got, err := s.GetCode(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "222222", got.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.GetCode(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrOTPNotFound)
	})

	t.Run("delete code", func(t *testing.T) {
		require.NoError(t, s.UpsertCode(ctx, newCode("del@example.com", "333333")))
		require.NoError(t, s.DeleteCode(ctx, "del@example.com"))

		_, err := s.GetCode(ctx, "del@example.com")
		assert.ErrorIs(t, err, storage.ErrOTPNotFound)
	})
}

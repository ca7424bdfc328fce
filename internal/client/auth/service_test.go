package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/api"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// memAuthStorage держит сессию в памяти для тестов
type memAuthStorage struct {
	auth *storage.AuthData
}

func (m *memAuthStorage) SaveAuth(_ context.Context, auth *storage.AuthData) error {
	copied := *auth
	m.auth = &copied
	return nil
}

func (m *memAuthStorage) GetAuth(_ context.Context) (*storage.AuthData, error) {
	if m.auth == nil {
		return nil, storage.ErrAuthNotFound
	}
	copied := *m.auth
	return &copied, nil
}

func (m *memAuthStorage) DeleteAuth(_ context.Context) error {
	if m.auth == nil {
		return storage.ErrAuthNotFound
	}
	m.auth = nil
	return nil
}

func (m *memAuthStorage) IsAuthenticated(_ context.Context) (bool, error) {
	return m.auth != nil && time.Now().Unix() < m.auth.ExpiresAt, nil
}

func newTestService(t *testing.T, handler http.Handler) (*Service, *memAuthStorage, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &memAuthStorage{}
	service := NewService(api.NewClient(server.URL), store)
	return service, store, server
}

func tokenHandler(t *testing.T, path string, resp pkgapi.TokenResponse) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, path, r.URL.Path)
		_ = json.NewEncoder(w).Encode(resp)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login saves session", func(t *testing.T) {
		service, store, _ := newTestService(t, tokenHandler(t, "/api/auth/login", pkgapi.TokenResponse{
			Success:      true,
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    900,
			User: &pkgapi.UserInfo{
				ID:    "u1",
				Email: "user@example.com",
				Role:  "customer",
			},
		}))

		user, err := service.Login(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		require.NotNil(t, store.auth)
		assert.Equal(t, "access-1", store.auth.AccessToken)
		assert.Equal(t, "refresh-1", store.auth.RefreshToken)
		assert.Equal(t, "user@example.com", store.auth.Email)
		assert.Equal(t, "customer", store.auth.Role)
		assert.Greater(t, store.auth.ExpiresAt, time.Now().Unix())
	})

	t.Run("invalid email fails before the request", func(t *testing.T) {
		service, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not reach the server")
		}))

		_, err := service.Login(ctx, "not-an-email", "password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email")
	})

	t.Run("server rejection is surfaced", func(t *testing.T) {
		service, store, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: "Invalid email or password"})
		}))

		_, err := service.Login(ctx, "user@example.com", "wrong-password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
		assert.Nil(t, store.auth)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		service, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/register", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(pkgapi.RegisterResponse{Success: true, UserID: "u1"})
		}))

		resp, err := service.Register(ctx, "new@example.com", "New User", "password123")
		require.NoError(t, err)
		assert.Equal(t, "u1", resp.UserID)
	})

	t.Run("weak password rejected locally", func(t *testing.T) {
		service, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not reach the server")
		}))

		_, err := service.Register(ctx, "new@example.com", "New User", "short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid password")
	})
}

func TestService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code saves session", func(t *testing.T) {
		service, store, _ := newTestService(t, tokenHandler(t, "/api/auth/verify-otp", pkgapi.TokenResponse{
			Success:      true,
			AccessToken:  "access-otp",
			RefreshToken: "refresh-otp",
			ExpiresIn:    900,
			User:         &pkgapi.UserInfo{ID: "u1", Email: "user@example.com"},
		}))

		user, err := service.VerifyOTP(ctx, "user@example.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		require.NotNil(t, store.auth)
		assert.Equal(t, "access-otp", store.auth.AccessToken)
	})

	t.Run("malformed code rejected locally", func(t *testing.T) {
		service, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not reach the server")
		}))

		_, err := service.VerifyOTP(ctx, "user@example.com", "12ab56")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid code")
	})
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored session", func(t *testing.T) {
		service, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not reach the server")
		}))

		_, err := service.Restore(ctx)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("valid session restored without network", func(t *testing.T) {
		service, store, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not reach the server")
		}))
		store.auth = &storage.AuthData{
			Email:       "user@example.com",
			AccessToken: "still-valid",
			ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		}

		auth, err := service.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "still-valid", auth.AccessToken)
	})

	t.Run("expired access token is refreshed", func(t *testing.T) {
		service, store, _ := newTestService(t, tokenHandler(t, "/api/auth/refresh", pkgapi.TokenResponse{
			Success:      true,
			AccessToken:  "fresh-access",
			RefreshToken: "fresh-refresh",
			ExpiresIn:    900,
			User:         &pkgapi.UserInfo{ID: "u1", Email: "user@example.com"},
		}))
		store.auth = &storage.AuthData{
			Email:        "user@example.com",
			AccessToken:  "expired-access",
			RefreshToken: "old-refresh",
			ExpiresAt:    time.Now().Add(-time.Hour).Unix(),
		}

		auth, err := service.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fresh-access", auth.AccessToken)
		assert.Equal(t, "fresh-refresh", auth.RefreshToken)
	})

	t.Run("dead refresh token drops the session", func(t *testing.T) {
		service, store, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: "invalid refresh token"})
		}))
		store.auth = &storage.AuthData{
			AccessToken:  "expired-access",
			RefreshToken: "dead-refresh",
			ExpiresAt:    time.Now().Add(-time.Hour).Unix(),
		}

		_, err := service.Restore(ctx)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Nil(t, store.auth)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	service, store, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/logout", r.URL.Path)
		_ = json.NewEncoder(w).Encode(pkgapi.StatusResponse{Success: true})
	}))
	store.auth = &storage.AuthData{
		AccessToken: "access",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}

	require.NoError(t, service.Logout(ctx))
	assert.Nil(t, store.auth)
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "bcrypt-hash",
		Role:         models.RoleCustomer,
		Verified:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user
}

func createTestProduct(t *testing.T, ctx context.Context, s *Storage, name string) *api.Product {
	t.Helper()
	now := time.Now().UTC()
	product := &api.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  "exhaust",
		Brand:     "Akrapovic",
		Images:    []string{"https://images.example.com/1.jpg"},
		Price:     24999,
		Stock:     3,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateProduct(ctx, product))
	return product
}

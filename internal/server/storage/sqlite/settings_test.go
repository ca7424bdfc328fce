package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

func TestSettingsStorage(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("returns defaults when never saved", func(t *testing.T) {
		settings, err := s.GetSettings(ctx)
		require.NoError(t, err)

		defaults := api.DefaultStoreSettings()
		assert.Equal(t, defaults.Store.Name, settings.Store.Name)
		assert.Equal(t, defaults.Features, settings.Features)
		assert.True(t, settings.UpdatedAt.IsZero())
	})

	t.Run("save and get", func(t *testing.T) {
		settings := api.DefaultStoreSettings()
		settings.Store.Name = "Custom Parts Shop"
		settings.Features.EnableReviews = false
		settings.UpdatedAt = time.Now().UTC()

		require.NoError(t, s.SaveSettings(ctx, &settings))

		got, err := s.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Custom Parts Shop", got.Store.Name)
		assert.False(t, got.Features.EnableReviews)
		assert.WithinDuration(t, settings.UpdatedAt, got.UpdatedAt, time.Second)
	})

	t.Run("save is an upsert of the single row", func(t *testing.T) {
		settings := api.DefaultStoreSettings()
		settings.Store.Name = "First Name"
		settings.UpdatedAt = time.Now().UTC()
		require.NoError(t, s.SaveSettings(ctx, &settings))

		settings.Store.Name = "Second Name"
		settings.UpdatedAt = time.Now().UTC()
		require.NoError(t, s.SaveSettings(ctx, &settings))

		got, err := s.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Second Name", got.Store.Name)

		// в таблице ровно одна строка
		var count int
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM store_settings`).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestWishlistStorage(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, ctx, s, "wishlist@example.com")
	product := createTestProduct(t, ctx, s, "Brake Pads")

	newItem := func(productID string, quantity int) *api.WishlistItem {
		return &api.WishlistItem{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		}
	}

	t.Run("add and list", func(t *testing.T) {
		item := newItem(product.ID, 1)
		require.NoError(t, s.AddItem(ctx, item))

		items, err := s.ListItems(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
		assert.Equal(t, product.ID, items[0].ProductID)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("re-adding same product updates quantity", func(t *testing.T) {
		item := newItem(product.ID, 3)
		require.NoError(t, s.AddItem(ctx, item))

		items, err := s.ListItems(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("list is ordered by added_at desc", func(t *testing.T) {
		older := createTestProduct(t, ctx, s, "Chain Lube")
		newer := createTestProduct(t, ctx, s, "Handlebar Grips")

		olderItem := newItem(older.ID, 1)
		olderItem.AddedAt = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, s.AddItem(ctx, olderItem))

		newerItem := newItem(newer.ID, 1)
		newerItem.AddedAt = time.Now().UTC().Add(time.Hour)
		require.NoError(t, s.AddItem(ctx, newerItem))

		items, err := s.ListItems(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, newer.ID, items[0].ProductID)
		assert.Equal(t, older.ID, items[len(items)-1].ProductID)
	})

	t.Run("list for user without items", func(t *testing.T) {
		other := createTestUser(t, ctx, s, "empty-wishlist@example.com")

		items, err := s.ListItems(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("remove item", func(t *testing.T) {
		target := createTestProduct(t, ctx, s, "Air Filter")
		item := newItem(target.ID, 1)
		require.NoError(t, s.AddItem(ctx, item))

		require.NoError(t, s.RemoveItem(ctx, user.ID, item.ID))

		items, err := s.ListItems(ctx, user.ID)
		require.NoError(t, err)
		for _, got := range items {
			assert.NotEqual(t, item.ID, got.ID)
		}
	})

	t.Run("remove refuses another user's item", func(t *testing.T) {
		stranger := createTestUser(t, ctx, s, "stranger@example.com")

		item := newItem(product.ID, 1)
		require.NoError(t, s.AddItem(ctx, item))

		err := s.RemoveItem(ctx, stranger.ID, item.ID)
		assert.ErrorIs(t, err, storage.ErrWishlistItemNotFound)
	})

	t.Run("remove unknown item", func(t *testing.T) {
		err := s.RemoveItem(ctx, user.ID, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrWishlistItemNotFound)
	})

	t.Run("clear removes only the user's items", func(t *testing.T) {
		keeper := createTestUser(t, ctx, s, "keeper@example.com")
		kept := &api.WishlistItem{
			ID:        uuid.New().String(),
			UserID:    keeper.ID,
			ProductID: product.ID,
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		}
		require.NoError(t, s.AddItem(ctx, kept))
		require.NoError(t, s.AddItem(ctx, newItem(product.ID, 2)))

		require.NoError(t, s.ClearItems(ctx, user.ID))

		items, err := s.ListItems(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = s.ListItems(ctx, keeper.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, kept.ID, items[0].ID)
	})

	t.Run("clear on empty wishlist", func(t *testing.T) {
		require.NoError(t, s.ClearItems(ctx, user.ID))
	})
}

func TestSliderStorage(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	newImage := func(title string, position int) *api.SliderImage {
		return &api.SliderImage{
			ID:          uuid.New().String(),
			Title:       title,
			ImageURL:    "https://images.example.com/" + uuid.New().String() + ".jpg",
			DeleteToken: "delete-" + uuid.New().String(),
			Position:    position,
			CreatedAt:   time.Now().UTC(),
		}
	}

	t.Run("create and get", func(t *testing.T) {
		image := newImage("Summer sale", 1)
		require.NoError(t, s.CreateImage(ctx, image))

		got, err := s.GetImage(ctx, image.ID)
		require.NoError(t, err)
		assert.Equal(t, image.Title, got.Title)
		assert.Equal(t, image.ImageURL, got.ImageURL)
		assert.Equal(t, image.DeleteToken, got.DeleteToken)
		assert.Equal(t, image.Position, got.Position)
	})

	t.Run("get unknown image", func(t *testing.T) {
		_, err := s.GetImage(ctx, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrSliderImageNotFound)
	})

	t.Run("list ordered by position", func(t *testing.T) {
		second := newImage("Second banner", 20)
		first := newImage("First banner", 10)
		require.NoError(t, s.CreateImage(ctx, second))
		require.NoError(t, s.CreateImage(ctx, first))

		images, err := s.ListImages(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(images), 2)

		positions := make([]int, 0, len(images))
		for _, image := range images {
			positions = append(positions, image.Position)
		}
		assert.IsNonDecreasing(t, positions)
	})

	t.Run("delete image", func(t *testing.T) {
		image := newImage("Short lived", 99)
		require.NoError(t, s.CreateImage(ctx, image))

		require.NoError(t, s.DeleteImage(ctx, image.ID))

		_, err := s.GetImage(ctx, image.ID)
		assert.ErrorIs(t, err, storage.ErrSliderImageNotFound)
	})

	t.Run("delete unknown image", func(t *testing.T) {
		err := s.DeleteImage(ctx, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrSliderImageNotFound)
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

func TestWishlistHandler_Add(t *testing.T) {
	t.Run("adds existing product", func(t *testing.T) {
		wishlist := newMockWishlistStorage()
		products := newMockProductStorage()
		seedProduct(products, "p1", "Slip-on exhaust", 24999)
		h := NewWishlistHandler(testLogger(), wishlist, products)

		body, _ := json.Marshal(api.AddWishlistItemRequest{ProductID: "p1", Quantity: 2})
		req := authedRequest(http.MethodPost, "/api/user/wishlist", body, "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Add(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.WishlistResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "p1", resp.Data[0].ProductID)
		assert.Equal(t, 2, resp.Data[0].Quantity)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		wishlist := newMockWishlistStorage()
		products := newMockProductStorage()
		seedProduct(products, "p1", "Slip-on exhaust", 24999)
		h := NewWishlistHandler(testLogger(), wishlist, products)

		body, _ := json.Marshal(api.AddWishlistItemRequest{ProductID: "p1"})
		req := authedRequest(http.MethodPost, "/api/user/wishlist", body, "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Add(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.WishlistResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, 1, resp.Data[0].Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		h := NewWishlistHandler(testLogger(), newMockWishlistStorage(), newMockProductStorage())

		body, _ := json.Marshal(api.AddWishlistItemRequest{ProductID: "ghost"})
		req := authedRequest(http.MethodPost, "/api/user/wishlist", body, "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Add(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Product not found")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewWishlistHandler(testLogger(), newMockWishlistStorage(), newMockProductStorage())

		req := httptest.NewRequest(http.MethodPost, "/api/user/wishlist", nil)
		w := httptest.NewRecorder()

		h.Add(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWishlistHandler_List(t *testing.T) {
	wishlist := newMockWishlistStorage()
	wishlist.items["i1"] = &api.WishlistItem{ID: "i1", UserID: "user1", ProductID: "p1", Quantity: 1, AddedAt: time.Now()}
	wishlist.items["i2"] = &api.WishlistItem{ID: "i2", UserID: "other", ProductID: "p2", Quantity: 1, AddedAt: time.Now()}
	h := NewWishlistHandler(testLogger(), wishlist, newMockProductStorage())

	req := authedRequest(http.MethodGet, "/api/user/wishlist", nil, "user1", models.RoleCustomer)
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.WishlistResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	// Только свои позиции
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "i1", resp.Data[0].ID)
}

func TestWishlistHandler_Remove(t *testing.T) {
	t.Run("removes own item", func(t *testing.T) {
		wishlist := newMockWishlistStorage()
		wishlist.items["i1"] = &api.WishlistItem{ID: "i1", UserID: "user1", ProductID: "p1", Quantity: 1}
		h := NewWishlistHandler(testLogger(), wishlist, newMockProductStorage())

		req := authedRequest(http.MethodDelete, "/api/user/wishlist/i1", nil, "user1", models.RoleCustomer)
		req.SetPathValue("id", "i1")
		w := httptest.NewRecorder()

		h.Remove(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, wishlist.items)
	})

	t.Run("cannot remove another user's item", func(t *testing.T) {
		wishlist := newMockWishlistStorage()
		wishlist.items["i1"] = &api.WishlistItem{ID: "i1", UserID: "owner", ProductID: "p1", Quantity: 1}
		h := NewWishlistHandler(testLogger(), wishlist, newMockProductStorage())

		req := authedRequest(http.MethodDelete, "/api/user/wishlist/i1", nil, "intruder", models.RoleCustomer)
		req.SetPathValue("id", "i1")
		w := httptest.NewRecorder()

		h.Remove(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, wishlist.items, 1)
	})
}

func TestWishlistHandler_Clear(t *testing.T) {
	t.Run("clears only own items", func(t *testing.T) {
		wishlist := newMockWishlistStorage()
		wishlist.items["i1"] = &api.WishlistItem{ID: "i1", UserID: "user1", ProductID: "p1", Quantity: 1}
		wishlist.items["i2"] = &api.WishlistItem{ID: "i2", UserID: "user1", ProductID: "p2", Quantity: 3}
		wishlist.items["i3"] = &api.WishlistItem{ID: "i3", UserID: "other", ProductID: "p1", Quantity: 1}
		h := NewWishlistHandler(testLogger(), wishlist, newMockProductStorage())

		req := authedRequest(http.MethodDelete, "/api/user/wishlist", nil, "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Clear(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Wishlist cleared")
		require.Len(t, wishlist.items, 1)
		assert.Equal(t, "other", wishlist.items["i3"].UserID)
	})

	t.Run("empty wishlist is not an error", func(t *testing.T) {
		h := NewWishlistHandler(testLogger(), newMockWishlistStorage(), newMockProductStorage())

		req := authedRequest(http.MethodDelete, "/api/user/wishlist", nil, "user1", models.RoleCustomer)
		w := httptest.NewRecorder()

		h.Clear(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewWishlistHandler(testLogger(), newMockWishlistStorage(), newMockProductStorage())

		req := httptest.NewRequest(http.MethodDelete, "/api/user/wishlist", nil)
		w := httptest.NewRecorder()

		h.Clear(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// WishlistHandler обрабатывает запросы wishlist/корзины
type WishlistHandler struct {
	logger         *slog.Logger
	storage        storage.WishlistStorage
	productStorage storage.ProductStorage
}

// NewWishlistHandler создает новый handler для wishlist
func NewWishlistHandler(logger *slog.Logger, st storage.WishlistStorage, products storage.ProductStorage) *WishlistHandler {
	return &WishlistHandler{
		logger:         logger,
		storage:        st,
		productStorage: products,
	}
}

// List обрабатывает GET /api/user/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.storage.ListItems(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list wishlist items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.WishlistResponse{
		Success: true,
		Data:    items,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Add обрабатывает POST /api/user/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ProductID == "" {
		sendError(h.logger, w, "product_id is required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// Товар должен существовать, иначе wishlist засоряется висячими ссылками
	if _, err := h.productStorage.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	item := &api.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		AddedAt:   time.Now(),
	}

	if err := h.storage.AddItem(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to add wishlist item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	items, err := h.storage.ListItems(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list wishlist items", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.WishlistResponse{
		Success: true,
		Data:    items,
		Message: "Added to wishlist",
	}
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Remove обрабатывает DELETE /api/user/wishlist/{id}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.PathValue("id")
	if itemID == "" {
		sendError(h.logger, w, "item id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.RemoveItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			sendError(h.logger, w, "Wishlist item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to remove wishlist item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.StatusResponse{
		Success: true,
		Message: "Removed from wishlist",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Clear обрабатывает DELETE /api/user/wishlist
// Удаляет все позиции пользователя; пустой wishlist не ошибка.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.storage.ClearItems(ctx, userID); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear wishlist", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.StatusResponse{
		Success: true,
		Message: "Wishlist cleared",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/validation"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// ReviewHandler обрабатывает CRUD запросы отзывов
type ReviewHandler struct {
	logger      *slog.Logger
	storage     storage.ReviewStorage
	userStorage storage.UserStorage
}

// NewReviewHandler создает новый handler для отзывов
func NewReviewHandler(logger *slog.Logger, reviewStorage storage.ReviewStorage, userStorage storage.UserStorage) *ReviewHandler {
	return &ReviewHandler{
		logger:      logger,
		storage:     reviewStorage,
		userStorage: userStorage,
	}
}

// List обрабатывает GET /api/reviews?productId=...
// Пустой productId возвращает все отзывы.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.URL.Query().Get("productId")

	reviews, err := h.storage.ListReviews(ctx, productID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list reviews", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ReviewsResponse{
		Success: true,
		Data:    reviews,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewID := r.PathValue("id")
	if reviewID == "" {
		sendError(h.logger, w, "review id is required", http.StatusBadRequest)
		return
	}

	review, err := h.storage.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			sendError(h.logger, w, "Review not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ReviewResponse{
		Success: true,
		Data:    review,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/reviews
// Требует аутентификации; автор берется из контекста.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create review request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.ProductID == "" {
		sendError(h.logger, w, "product_id is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		h.logger.WarnContext(ctx, "invalid rating", slog.Int("rating", req.Rating))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Имя автора для отображения на витрине
	userName := ""
	if user, err := h.userStorage.GetUserByID(ctx, userID); err == nil {
		userName = user.Name
	}

	review := &api.Review{
		ID:        uuid.New().String(),
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  userName,
		Title:     req.Title,
		Comment:   req.Comment,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}

	if err := h.storage.CreateReview(ctx, review); err != nil {
		if errors.Is(err, storage.ErrReviewAlreadyExists) {
			h.logger.WarnContext(ctx, "duplicate review",
				slog.String("user_id", userID),
				slog.String("product_id", req.ProductID))
			sendError(h.logger, w, "You have already reviewed this product", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", req.ProductID))

	resp := api.ReviewResponse{
		Success: true,
		Data:    review,
		Message: "Review submitted successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Delete обрабатывает DELETE /api/reviews/{id}
// Удалить отзыв может его автор или ритейлер.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := GetRole(ctx)

	reviewID := r.PathValue("id")
	if reviewID == "" {
		sendError(h.logger, w, "review id is required", http.StatusBadRequest)
		return
	}

	review, err := h.storage.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			sendError(h.logger, w, "Review not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if review.UserID != userID && role != models.RoleRetailer {
		sendError(h.logger, w, "You can only delete your own reviews", http.StatusForbidden)
		return
	}

	if err := h.storage.DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			sendError(h.logger, w, "Review not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "review deleted", slog.String("review_id", reviewID))

	resp := api.StatusResponse{
		Success: true,
		Message: "Review deleted successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

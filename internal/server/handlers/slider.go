package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/images"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// maxSliderImageSize ограничивает размер загружаемого баннера (5 MiB)
const maxSliderImageSize = 5 << 20

// SliderHandler обрабатывает запросы баннеров главной страницы
type SliderHandler struct {
	logger   *slog.Logger
	storage  storage.SliderStorage
	uploader images.Uploader
}

// NewSliderHandler создает новый handler для слайдера
func NewSliderHandler(logger *slog.Logger, st storage.SliderStorage, uploader images.Uploader) *SliderHandler {
	return &SliderHandler{
		logger:   logger,
		storage:  st,
		uploader: uploader,
	}
}

// List обрабатывает GET /api/slider
func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	imgs, err := h.storage.ListImages(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list slider images", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SliderResponse{
		Success: true,
		Data:    imgs,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/slider
// Картинка уходит на сторонний хостинг, в БД хранится только URL.
func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can manage slider images", http.StatusForbidden)
		return
	}

	var req api.CreateSliderImageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSliderImageSize)).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Data) == 0 {
		sendError(h.logger, w, "image data is required", http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		req.Filename = "slider.jpg"
	}

	result, err := h.uploader.Upload(ctx, req.Filename, req.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to upload image", slog.Any("error", err))
		sendError(h.logger, w, "Failed to upload image", http.StatusBadGateway)
		return
	}

	image := &api.SliderImage{
		ID:          uuid.NewString(),
		Title:       req.Title,
		ImageURL:    result.URL,
		DeleteToken: result.DeleteToken,
		Position:    req.Position,
		CreatedAt:   time.Now(),
	}

	if err := h.storage.CreateImage(ctx, image); err != nil {
		h.logger.ErrorContext(ctx, "failed to save slider image", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "slider image created", slog.String("image_id", image.ID))

	imgs, err := h.storage.ListImages(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list slider images", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SliderResponse{
		Success: true,
		Data:    imgs,
		Message: "Slider image uploaded",
	}
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Delete обрабатывает DELETE /api/slider/{id}
func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can manage slider images", http.StatusForbidden)
		return
	}

	imageID := r.PathValue("id")
	if imageID == "" {
		sendError(h.logger, w, "image id is required", http.StatusBadRequest)
		return
	}

	image, err := h.storage.GetImage(ctx, imageID)
	if err != nil {
		if errors.Is(err, storage.ErrSliderImageNotFound) {
			sendError(h.logger, w, "Slider image not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get slider image", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Удаление на хостинге best-effort: запись из БД уходит в любом случае
	if err := h.uploader.Delete(ctx, image.DeleteToken); err != nil {
		h.logger.WarnContext(ctx, "failed to delete image from hosting",
			slog.String("image_id", imageID),
			slog.Any("error", err))
	}

	if err := h.storage.DeleteImage(ctx, imageID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete slider image", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.StatusResponse{
		Success: true,
		Message: "Slider image deleted",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

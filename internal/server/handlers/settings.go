package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// SettingsHandler обрабатывает запросы настроек магазина
type SettingsHandler struct {
	logger  *slog.Logger
	storage storage.SettingsStorage
}

// NewSettingsHandler создает новый handler для настроек магазина
func NewSettingsHandler(logger *slog.Logger, storage storage.SettingsStorage) *SettingsHandler {
	return &SettingsHandler{
		logger:  logger,
		storage: storage,
	}
}

// Get обрабатывает GET /api/store-settings
// Настройки читают все инстансы, авторизация не требуется.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.storage.GetSettings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get settings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SettingsResponse{
		Success: true,
		Data:    settings,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PUT /api/store-settings
// Мутация настроек доступна только ритейлеру.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can update store settings", http.StatusForbidden)
		return
	}

	var settings api.StoreSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode settings", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if settings.Store.Name == "" {
		sendError(h.logger, w, "store name cannot be empty", http.StatusBadRequest)
		return
	}

	settings.UpdatedAt = time.Now()

	if err := h.storage.SaveSettings(ctx, &settings); err != nil {
		h.logger.ErrorContext(ctx, "failed to save settings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "store settings updated")

	resp := api.SettingsResponse{
		Success: true,
		Data:    &settings,
		Message: "Store settings updated successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// HealthHandler обрабатывает health check
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// Check обрабатывает GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

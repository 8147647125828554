package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"customer-service/internal/api/handler/dto"
)

const healthPingTimeout = 2 * time.Second

// PingFunc checks connectivity to the customer store.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping   PingFunc
	logger *slog.Logger
}

// NewHealthHandler accepts a nil ping, in which case only liveness is reported.
func NewHealthHandler(ping PingFunc, l *slog.Logger) *HealthHandler {
	if l == nil {
		panic("logger cannot be nil")
	}
	return &HealthHandler{
		ping:   ping,
		logger: l.With("component", "HealthHandler"),
	}
}

// Health handles GET /health
// @Summary Service health
// @Description Reports liveness and customer store connectivity.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Customer store unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping == nil {
		respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "Health check failed: customer store unreachable", slog.Any("error", err))
		respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}

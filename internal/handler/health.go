package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/forgo/guildhall/internal/model"
)

// Pinger reports whether the roster store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler. A nil store only reports liveness.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, timeout: 2 * time.Second}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			WriteError(w, model.NewServiceUnavailableError("store unreachable"))
			return
		}
		status["store"] = "ok"
	}

	WriteJSON(w, http.StatusOK, status)
}

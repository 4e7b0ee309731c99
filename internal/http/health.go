package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/hours-bot/internal/logging"
)

// HealthHandler serves the liveness probe used by the hosting platform.
type HealthHandler struct {
	logger *slog.Logger
}

func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{logger: logger}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	payload := map[string]string{"status": "ok", "service": "hours-bot"}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(r.Context(), h.logger).ErrorContext(r.Context(), "write health response", "error", err)
	}
}

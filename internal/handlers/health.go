package handlers

import (
	"net/http"

	"github.com/blogly/blogly/internal/store"

	"go.uber.org/zap"
)

type HealthHandler struct {
	Store *store.Store
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.Store.Ping(r.Context()); err != nil {
		LoggerFrom(r.Context(), nil).Warn("health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

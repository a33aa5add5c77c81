package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/blogly/blogly/internal/store"

	"go.uber.org/zap"
)

// Renderer is the view layer: it turns a page name and plain data into HTML.
type Renderer interface {
	HTML(w http.ResponseWriter, status int, page string, data map[string]interface{}) error
}

type ErrorHandler struct {
	Views Renderer
	Log   *zap.Logger
}

func (h *ErrorHandler) Render(w http.ResponseWriter, status int, msg string) {
	if h == nil || h.Views == nil {
		http.Error(w, msg, status)
		return
	}
	err := h.Views.HTML(w, status, "error", map[string]interface{}{
		"Error":  msg,
		"Status": status,
	})
	if err != nil {
		http.Error(w, msg, status)
	}
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render(w, http.StatusNotFound, "Page not found")
}

func (h *ErrorHandler) BadRequest(w http.ResponseWriter, r *http.Request) {
	h.Render(w, http.StatusBadRequest, "Could not read the form")
}

func (h *ErrorHandler) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger(r).Error("request failed", zap.Error(err))
	h.Render(w, http.StatusInternalServerError, "Internal server error")
}

// StoreError answers 404 for store.ErrNotFound and 500 for anything else.
func (h *ErrorHandler) StoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	h.ServerError(w, r, err)
}

func (h *ErrorHandler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger(r).Error("panic",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				h.Render(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) logger(r *http.Request) *zap.Logger {
	var fallback *zap.Logger
	if h != nil {
		fallback = h.Log
	}
	return LoggerFrom(r.Context(), fallback)
}

// render writes page, falling back to a 500 page if the template fails.
func render(w http.ResponseWriter, r *http.Request, views Renderer, errs *ErrorHandler, status int, page string, data map[string]interface{}) {
	if err := views.HTML(w, status, page, data); err != nil {
		errs.ServerError(w, r, err)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"product-detail-bff/internal/auth"
	"product-detail-bff/internal/models"
	"product-detail-bff/internal/view"
)

type RateLimiter interface {
	IsRateLimited(ctx context.Context, ip string) bool
}

type Handler struct {
	views   *view.Registry
	limiter RateLimiter
}

func NewHandler(views *view.Registry, limiter RateLimiter) *Handler {
	return &Handler{
		views:   views,
		limiter: limiter,
	}
}

// Register wires the detail-view routes; wrap is the middleware chain
// (session, telemetry) applied to each.
func (h *Handler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /api/products/{id}", wrap(h.GetProduct))
	mux.HandleFunc("POST /api/products/{id}/carousel/next", wrap(h.NextImage))
	mux.HandleFunc("POST /api/products/{id}/carousel/prev", wrap(h.PrevImage))
	mux.HandleFunc("PUT /api/products/{id}/carousel/{index}", wrap(h.SelectImage))
	mux.HandleFunc("POST /api/products/{id}/reviews/toggle", wrap(h.ToggleReviews))
	mux.HandleFunc("GET /healthz", h.Healthz)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeView(w, ctrl.Show(r.Context(), r.PathValue("id")))
}

func (h *Handler) NextImage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.showing(w, r)
	if !ok {
		return
	}
	writeView(w, ctrl.NextImage())
}

func (h *Handler) PrevImage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.showing(w, r)
	if !ok {
		return
	}
	writeView(w, ctrl.PrevImage())
}

func (h *Handler) SelectImage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.showing(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, `{"error": "invalid image index"}`, http.StatusBadRequest)
		return
	}

	v, err := ctrl.SelectImage(index)
	if err != nil {
		if errors.Is(err, view.ErrIndexOutOfRange) {
			http.Error(w, `{"error": "image index out of range"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeView(w, v)
}

func (h *Handler) ToggleReviews(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.showing(w, r)
	if !ok {
		return
	}
	writeView(w, ctrl.ToggleReviews())
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// controller resolves the viewer session to its view controller, enforcing
// the per-IP rate limit on the way.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	ctx := r.Context()

	clientIP := r.RemoteAddr
	if idx := strings.LastIndex(clientIP, ":"); idx != -1 {
		clientIP = clientIP[:idx]
	}

	if h.limiter.IsRateLimited(ctx, clientIP) {
		slog.Warn("Rate limit exceeded", "ip", clientIP)
		http.Error(w, `{"error": "Too many requests"}`, http.StatusTooManyRequests)
		return nil, false
	}

	sessionID := auth.SessionID(ctx)
	if sessionID == "" {
		http.Error(w, `{"error": "missing session"}`, http.StatusUnauthorized)
		return nil, false
	}

	return h.views.Controller(sessionID), true
}

// showing is controller plus a guarantee that the session currently shows
// the addressed product; a session landing on a mutation first (back or
// forward navigation) is driven through Show.
func (h *Handler) showing(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return nil, false
	}

	id := r.PathValue("id")
	if ctrl.ProductID() != id {
		if v := ctrl.Show(r.Context(), id); v.State == models.StateFailed {
			writeView(w, v)
			return nil, false
		}
	}
	return ctrl, true
}

func writeView(w http.ResponseWriter, v models.DetailView) {
	status := http.StatusOK
	if v.State == models.StateFailed {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response body", "error", err)
	}
}

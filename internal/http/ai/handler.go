package ai

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/moneta/internal/advisor"
	"github.com/avoronov/moneta/internal/auth"
)

type Handler struct {
	svc *advisor.Service
}

func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/tips", h.tips)
}

func (h *Handler) tips(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	tips, err := h.svc.Tips(r.Context(), userID)
	if err != nil {
		if errors.Is(err, advisor.ErrNoExpenses) {
			http.Error(w, "no expenses found to analyze", http.StatusNotFound)
			return
		}

		http.Error(w, "advice service error", http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string][]string{"tips": tips}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

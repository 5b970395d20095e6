package paymentmethod

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avoronov/moneta/internal/auth"
	"github.com/avoronov/moneta/internal/paymentmethod"
)

type Handler struct {
	svc *paymentmethod.Service
}

func NewHandler(svc *paymentmethod.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type methodResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bank      string    `json:"bank,omitempty"`
	CardType  string    `json:"card_type,omitempty"`
	Last4     string    `json:"last4,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(m *paymentmethod.PaymentMethod) methodResponse {
	return methodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Bank:      m.Bank,
		CardType:  m.CardType,
		Last4:     m.Last4,
		Icon:      m.Icon,
		CreatedAt: m.CreatedAt,
	}
}

type createMethodRequest struct {
	Name     string `json:"name"`
	Bank     string `json:"bank"`
	CardType string `json:"card_type"`
	Last4    string `json:"last4"`
	Icon     string `json:"icon"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req createMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Create(r.Context(), paymentmethod.CreateParams{
		UserID:   userID,
		Name:     req.Name,
		Bank:     req.Bank,
		CardType: req.CardType,
		Last4:    req.Last4,
		Icon:     req.Icon,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	methods, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]methodResponse, len(methods))
	for i, m := range methods {
		resp[i] = toResponse(m)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, paymentmethod.ErrNotFound) {
			http.Error(w, "payment method not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateMethodRequest struct {
	Name     *string `json:"name,omitempty"`
	Bank     *string `json:"bank,omitempty"`
	CardType *string `json:"card_type,omitempty"`
	Icon     *string `json:"icon,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Update(r.Context(), id, userID, paymentmethod.UpdateParams{
		Name:     req.Name,
		Bank:     req.Bank,
		CardType: req.CardType,
		Icon:     req.Icon,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentmethod.ErrNotFound):
			http.Error(w, "payment method not found", http.StatusNotFound)
		case errors.Is(err, paymentmethod.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, paymentmethod.ErrNotFound):
			http.Error(w, "payment method not found", http.StatusNotFound)
		case errors.Is(err, paymentmethod.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

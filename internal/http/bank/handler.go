package bank

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/auth"
	"github.com/avoronov/moneta/internal/banksync"
)

type Handler struct {
	svc *banksync.Service
}

func NewHandler(svc *banksync.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/link-token", h.createLinkToken)
	r.Post("/exchange-public-token", h.exchangePublicToken)
	r.Get("/accounts", h.syncAccounts)
	r.Post("/sync", h.syncTransactions)
	r.Delete("/connections/{id}", h.removeConnection)
}

func (h *Handler) createLinkToken(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	token, err := h.svc.CreateLinkToken(r.Context(), userID)
	if err != nil {
		http.Error(w, "bank provider error", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"link_token": token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

func (h *Handler) exchangePublicToken(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PublicToken == "" {
		http.Error(w, "public_token is required", http.StatusBadRequest)
		return
	}

	conn, err := h.svc.ExchangePublicToken(r.Context(), userID, req.PublicToken)
	if err != nil {
		http.Error(w, "bank provider error", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := map[string]string{
		"connection_id": conn.ID.String(),
		"item_id":       conn.ItemID,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type accountResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	OfficialName     string          `json:"official_name,omitempty"`
	Type             string          `json:"type"`
	Subtype          string          `json:"subtype,omitempty"`
	Mask             string          `json:"mask,omitempty"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	CurrencyCode     string          `json:"currency_code,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (h *Handler) syncAccounts(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	accounts, err := h.svc.SyncAccounts(r.Context(), userID)
	if err != nil {
		if errors.Is(err, banksync.ErrNoConnections) {
			http.Error(w, "no bank connections found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = accountResponse{
			ID:               a.ID,
			Name:             a.Name,
			OfficialName:     a.OfficialName,
			Type:             a.Type,
			Subtype:          a.Subtype,
			Mask:             a.Mask,
			CurrentBalance:   a.CurrentBalance,
			AvailableBalance: a.AvailableBalance,
			CurrencyCode:     a.CurrencyCode,
			CreatedAt:        a.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type syncResponse struct {
	Imported int             `json:"imported"`
	Balance  decimal.Decimal `json:"balance"`
}

func (h *Handler) syncTransactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	window := banksync.WindowFull
	if r.URL.Query().Get("window") == string(banksync.WindowLatest) {
		window = banksync.WindowLatest
	}

	result, err := h.svc.SyncTransactions(r.Context(), userID, window)
	if err != nil {
		if errors.Is(err, banksync.ErrNoAccounts) {
			http.Error(w, "no bank accounts found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(syncResponse{
		Imported: result.Imported,
		Balance:  result.Balance,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) removeConnection(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveConnection(r.Context(), userID, id); err != nil {
		if errors.Is(err, banksync.ErrNotFound) {
			http.Error(w, "connection not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

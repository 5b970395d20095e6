package analytics

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/moneta/internal/analytics"
	"github.com/avoronov/moneta/internal/auth"
	"github.com/avoronov/moneta/internal/transaction"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/pie", h.pie)
	r.Get("/line", h.line)
	r.Get("/compare", h.compareMonths)
	r.Get("/budget-analysis", h.budgetAnalysis)
	r.Get("/compare-types", h.compareTypes)
}

func kindFilter(r *http.Request) *transaction.Kind {
	if s := r.URL.Query().Get("kind"); s != "" {
		kind := transaction.Kind(s)
		if kind.Valid() {
			return &kind
		}
	}

	return nil
}

func timeframe(r *http.Request) analytics.Timeframe {
	if s := r.URL.Query().Get("timeframe"); s != "" {
		return analytics.Timeframe(s)
	}

	return analytics.TimeframeMonth
}

// respond maps the analytics sentinels to status codes and writes the
// payload on success.
func respond(w http.ResponseWriter, payload any, err error) {
	switch {
	case errors.Is(err, analytics.ErrNoData):
		http.Error(w, "no data for the requested window", http.StatusNotFound)
		return
	case errors.Is(err, analytics.ErrInvalidTimeframe):
		http.Error(w, "invalid timeframe", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	summary, err := h.svc.Summary(r.Context(), userID, kindFilter(r))
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, toSummaryResponse(summary), nil)
}

func (h *Handler) pie(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	stats, err := h.svc.Pie(r.Context(), userID, kindFilter(r))
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, pieResponse{Data: toCategoryStats(stats)}, nil)
}

func (h *Handler) line(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	chart, err := h.svc.Line(r.Context(), userID, timeframe(r), kindFilter(r))
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, toLineResponse(chart), nil)
}

func (h *Handler) compareMonths(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	cmp, err := h.svc.CompareMonths(r.Context(), userID, kindFilter(r))
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, toMonthComparisonResponse(cmp), nil)
}

func (h *Handler) budgetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	stats, err := h.svc.BudgetAnalysis(r.Context(), userID)
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, budgetAnalysisResponse{Categories: toBudgetStats(stats)}, nil)
}

func (h *Handler) compareTypes(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	cmp, err := h.svc.CompareTypes(r.Context(), userID, timeframe(r))
	if err != nil {
		respond(w, nil, err)
		return
	}

	respond(w, toTypeComparisonResponse(cmp), nil)
}

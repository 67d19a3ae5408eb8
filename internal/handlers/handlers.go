package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NaiduBagana/cam2cart/internal/receipt"
	"github.com/NaiduBagana/cam2cart/internal/state"
	"github.com/NaiduBagana/cam2cart/models"
	"go.uber.org/zap"
)

const maxHistoryLimit = 100

type Refresher interface {
	Refresh(ctx context.Context) (state.View, bool)
}

type ViewSource interface {
	Current() (state.View, bool)
}

type History interface {
	GetLoadAttempts(ctx context.Context, limit int) ([]models.LoadAttempt, error)
}

type Handler struct {
	Refresher Refresher
	Views     ViewSource
	History   History
	Logger    *zap.SugaredLogger
}

type receiptResponse struct {
	receipt.Receipt
	FailureReason string    `json:"failureReason,omitempty"`
	Generation    uint64    `json:"generation"`
	LoadedAt      time.Time `json:"loadedAt"`
}

type refreshResponse struct {
	receiptResponse
	Committed bool `json:"committed"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func newReceiptResponse(v state.View) receiptResponse {
	return receiptResponse{
		Receipt:       v.Receipt,
		FailureReason: v.FailureReason,
		Generation:    v.Generation,
		LoadedAt:      v.LoadedAt,
	}
}

// Receipt returns the currently displayed receipt as JSON.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	v, ok := h.Views.Current()
	if !ok {
		h.writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "loading"})
		return
	}
	h.writeJSON(w, http.StatusOK, newReceiptResponse(v))
}

// Refresh reloads the order. The load is detached from the request so a
// client that goes away does not cancel it.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	_, committed := h.Refresher.Refresh(context.WithoutCancel(r.Context()))

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	v, ok := h.Views.Current()
	if !ok {
		h.Logger.Error("no view after refresh")
		h.writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "internal error"})
		return
	}
	h.writeJSON(w, http.StatusOK, refreshResponse{
		receiptResponse: newReceiptResponse(v),
		Committed:       committed,
	})
}

// LoadHistory lists recent load attempts, newest first.
func (h *Handler) LoadHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	attempts, err := h.History.GetLoadAttempts(r.Context(), limit)
	if err != nil {
		h.Logger.Errorw("error getting load history", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, attempts)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorw("error writing response", "error", err)
	}
}

func wantsHTML(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/services"
	"hostel-backend/pkg/utils"
)

// BillingRunner triggers a billing cycle. Satisfied by services.BillingService.
type BillingRunner interface {
	RunForDate(ctx context.Context, date, remarks string) (billing.Summary, error)
}

type BillingHandler struct {
	Runner BillingRunner
}

func NewBillingHandler(runner BillingRunner) *BillingHandler {
	return &BillingHandler{Runner: runner}
}

type runBillingRequest struct {
	Date    string `json:"date"`
	Remarks string `json:"remarks"`
}

// RunBilling triggers the monthly debit cycle on demand. An empty body bills
// for the current month; a date reruns (idempotently) for that month.
// POST /api/billing/run
func (h *BillingHandler) RunBilling(w http.ResponseWriter, r *http.Request) {
	var req runBillingRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	summary, err := h.Runner.RunForDate(r.Context(), req.Date, req.Remarks)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			utils.Error(w, http.StatusBadRequest, "Date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Billing run failed")
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

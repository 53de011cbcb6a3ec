package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/services"
)

type stubBillingRunner struct {
	date    string
	remarks string
	summary billing.Summary
	err     error
}

func (s *stubBillingRunner) RunForDate(ctx context.Context, date, remarks string) (billing.Summary, error) {
	s.date = date
	s.remarks = remarks
	return s.summary, s.err
}

func TestRunBillingEmptyBody(t *testing.T) {
	stub := &stubBillingRunner{summary: billing.Summary{Users: 2, DebitsCreated: 3}}
	h := NewBillingHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/billing/run", nil)
	rec := httptest.NewRecorder()
	h.RunBilling(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if stub.date != "" || stub.remarks != "" {
		t.Fatalf("expected empty date and remarks, got %q / %q", stub.date, stub.remarks)
	}
	if !strings.Contains(rec.Body.String(), `"debitsCreated":3`) {
		t.Fatalf("summary not in response: %s", rec.Body.String())
	}
}

func TestRunBillingWithDate(t *testing.T) {
	stub := &stubBillingRunner{}
	h := NewBillingHandler(stub)

	body := strings.NewReader(`{"date":"2025-03-01","remarks":"March rerun"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/run", body)
	rec := httptest.NewRecorder()
	h.RunBilling(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if stub.date != "2025-03-01" {
		t.Fatalf("date = %q, want 2025-03-01", stub.date)
	}
	if stub.remarks != "March rerun" {
		t.Fatalf("remarks = %q, want March rerun", stub.remarks)
	}
}

func TestRunBillingInvalidDate(t *testing.T) {
	stub := &stubBillingRunner{err: services.ErrInvalidDate}
	h := NewBillingHandler(stub)

	body := strings.NewReader(`{"date":"not-a-date"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/run", body)
	rec := httptest.NewRecorder()
	h.RunBilling(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRunBillingMalformedBody(t *testing.T) {
	stub := &stubBillingRunner{}
	h := NewBillingHandler(stub)

	body := strings.NewReader(`{"date":`)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/run", body)
	rec := httptest.NewRecorder()
	h.RunBilling(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if stub.date != "" {
		t.Fatal("runner should not be invoked on malformed body")
	}
}

package billing

import (
	"math"
	"testing"
	"time"

	"hostel-backend/internal/models"
)

func credit(amount float64, ts time.Time) models.Payment {
	return models.Payment{Amount: amount, Type: models.PaymentTypeCredit, Timestamp: ts}
}

func debit(amount float64, ts time.Time) models.Payment {
	return models.Payment{Amount: amount, Type: models.PaymentTypeDebit, Timestamp: ts}
}

func TestBalance(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		fee      float64
		payments []models.Payment
		want     float64
	}{
		{"empty history yields fee", 1000, nil, 1000},
		{"single credit reduces due", 1000, []models.Payment{credit(500, now)}, 500},
		{"credit and debit net out", 1000, []models.Payment{credit(500, now), debit(200, now)}, 700},
		{"overpayment goes negative", 1000, []models.Payment{credit(1500, now)}, -500},
		{"zero fee zero payments", 0, []models.Payment{}, 0},
		{"full settlement is exactly zero", 2000, []models.Payment{credit(2000, now)}, 0},
		{"nan amount counts as zero", 1000, []models.Payment{credit(math.NaN(), now)}, 1000},
		{"inf amount counts as zero", 1000, []models.Payment{debit(math.Inf(1), now)}, 1000},
		{"unknown type is ignored", 1000, []models.Payment{{Amount: 300, Type: "refund"}}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Balance(tt.fee, tt.payments); got != tt.want {
				t.Errorf("Balance(%v) = %v, want %v", tt.fee, got, tt.want)
			}
		})
	}
}

func TestBalanceOrderIndependent(t *testing.T) {
	now := time.Now()
	forward := []models.Payment{credit(300, now), debit(100, now), credit(50, now)}
	reversed := []models.Payment{credit(50, now), debit(100, now), credit(300, now)}

	if Balance(1000, forward) != Balance(1000, reversed) {
		t.Errorf("aggregate balance must not depend on payment order")
	}
}

func TestRunningLedger(t *testing.T) {
	base := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	payments := []models.Payment{
		// Before the window: fee 1000 - 400 = opening 600.
		credit(400, base),
		// In the window, deliberately out of order to exercise sorting.
		debit(200, start.AddDate(0, 0, 20)),
		credit(300, start.AddDate(0, 0, 5)),
	}

	view := RunningLedger(1000, payments, start)

	if view.OpeningBalance != 600 {
		t.Fatalf("opening balance = %v, want 600", view.OpeningBalance)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(view.Lines))
	}
	if view.Lines[0].Running != 300 {
		t.Errorf("first running = %v, want 300", view.Lines[0].Running)
	}
	if view.Lines[1].Running != 500 {
		t.Errorf("second running = %v, want 500", view.Lines[1].Running)
	}
	if view.ClosingBalance != 500 {
		t.Errorf("closing = %v, want 500", view.ClosingBalance)
	}

	// Cross-check: the closing balance must equal the aggregate balance over
	// the entire history.
	if agg := Balance(1000, payments); view.ClosingBalance != agg {
		t.Errorf("closing %v != aggregate %v", view.ClosingBalance, agg)
	}
}

func TestRunningLedgerEmptyWindow(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	payments := []models.Payment{credit(250, start.AddDate(0, -1, 0))}

	view := RunningLedger(1000, payments, start)
	if view.OpeningBalance != 750 || view.ClosingBalance != 750 || len(view.Lines) != 0 {
		t.Errorf("empty window: got opening=%v closing=%v lines=%d, want 750/750/0",
			view.OpeningBalance, view.ClosingBalance, len(view.Lines))
	}
}

func fptr(v float64) *float64 { return &v }

func TestResolveFee(t *testing.T) {
	hostel := &models.Hostel{MonthlyFee: 2000}

	tests := []struct {
		name    string
		student models.Student
		want    float64
	}{
		{"applied fee wins when positive", models.Student{AppliedFee: fptr(1500), MonthlyFee: fptr(2000)}, 1500},
		{"zero applied fee falls through", models.Student{AppliedFee: fptr(0), MonthlyFee: fptr(1800)}, 1800},
		{"student monthly fee", models.Student{MonthlyFee: fptr(1200)}, 1200},
		{"hostel default", models.Student{}, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFee(&tt.student, hostel); got != tt.want {
				t.Errorf("ResolveFee = %v, want %v", got, tt.want)
			}
		})
	}

	if got := ResolveFee(&models.Student{}, nil); got != 0 {
		t.Errorf("ResolveFee with no hostel = %v, want 0", got)
	}
}

func TestResolveDebitAmount(t *testing.T) {
	hostel := &models.Hostel{MonthlyFee: 2000}

	tests := []struct {
		name    string
		student models.Student
		want    float64
	}{
		{"student monthly fee first", models.Student{MonthlyFee: fptr(1800), AppliedFee: fptr(900)}, 1800},
		{"hostel default second", models.Student{AppliedFee: fptr(900)}, 2000},
		{"explicit zero monthly fee is zero", models.Student{MonthlyFee: fptr(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDebitAmount(&tt.student, hostel); got != tt.want {
				t.Errorf("ResolveDebitAmount = %v, want %v", got, tt.want)
			}
		})
	}

	if got := ResolveDebitAmount(&models.Student{AppliedFee: fptr(700)}, nil); got != 700 {
		t.Errorf("applied fee fallback = %v, want 700", got)
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "03-2025"},
		{time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "12-2025"},
		{time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC), "01-2024"},
	}
	for _, tt := range tests {
		if got := MonthKey(tt.date); got != tt.want {
			t.Errorf("MonthKey(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

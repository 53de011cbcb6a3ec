// Package billing implements the monthly debit job and the balance
// derivation used by every read path. Positive balance = amount the student
// owes; zero or negative = settled or in advance. The stored currentBalance
// on a student is only a cache of what these functions compute from the
// payment history.
package billing

import (
	"math"
	"sort"
	"time"

	"hostel-backend/internal/models"
)

// Balance derives the aggregate balance from a fee and the payment history:
//
//	balance = fee - (sum of credits - sum of debits)
//
// Pure and total: a nil or empty payment list yields fee, malformed amounts
// count as zero, and ordering does not matter (summation is commutative).
func Balance(fee float64, payments []models.Payment) float64 {
	credits, debits := totals(payments)
	return fee - (credits - debits)
}

// RunningLedger builds the running-balance statement. The opening balance is
// fee minus the net of all payments strictly before start; each in-range
// payment then moves the running balance (credits down, debits up) in
// ascending timestamp order.
func RunningLedger(fee float64, payments []models.Payment, start time.Time) models.LedgerView {
	ordered := make([]models.Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	running := fee
	view := models.LedgerView{}
	for _, p := range ordered {
		if p.Timestamp.Before(start) {
			running += effect(p)
			continue
		}
		if view.Lines == nil {
			view.OpeningBalance = running
		}
		running += effect(p)
		view.Lines = append(view.Lines, models.LedgerLine{Payment: p, Running: running})
	}
	if view.Lines == nil {
		view.OpeningBalance = running
	}
	view.ClosingBalance = running
	return view
}

// ResolveFee applies the read-path fee policy: the per-student applied fee
// wins when present and positive, then the student's monthly fee, then the
// hostel default.
func ResolveFee(student *models.Student, hostel *models.Hostel) float64 {
	if student.AppliedFee != nil && *student.AppliedFee > 0 {
		return *student.AppliedFee
	}
	if student.MonthlyFee != nil {
		return sanitize(*student.MonthlyFee)
	}
	if hostel != nil {
		return sanitize(hostel.MonthlyFee)
	}
	return 0
}

// ResolveDebitAmount applies the billing job's fee chain: the student's
// monthly fee if set, else the hostel default if the hostel is known, else
// the applied fee, else zero. This order is a compatibility contract with
// historical billing runs and deliberately differs from ResolveFee.
func ResolveDebitAmount(student *models.Student, hostel *models.Hostel) float64 {
	if student.MonthlyFee != nil {
		return sanitize(*student.MonthlyFee)
	}
	if hostel != nil {
		return sanitize(hostel.MonthlyFee)
	}
	if student.AppliedFee != nil {
		return sanitize(*student.AppliedFee)
	}
	return 0
}

func totals(payments []models.Payment) (credits, debits float64) {
	for _, p := range payments {
		amount := sanitize(p.Amount)
		switch p.Type {
		case models.PaymentTypeCredit:
			credits += amount
		case models.PaymentTypeDebit:
			debits += amount
		}
	}
	return credits, debits
}

// effect is the signed balance movement of one payment.
func effect(p models.Payment) float64 {
	amount := sanitize(p.Amount)
	if p.Type == models.PaymentTypeCredit {
		return -amount
	}
	if p.Type == models.PaymentTypeDebit {
		return amount
	}
	return 0
}

// sanitize coerces malformed amounts to zero so the calculator never
// propagates NaN or Inf into a stored balance.
func sanitize(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}

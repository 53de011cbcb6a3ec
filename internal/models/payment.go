package models

import "time"

// Payment types. A credit is money received and reduces the amount due; a
// debit is a fee charged or adjustment and increases it.
const (
	PaymentTypeCredit = "credit"
	PaymentTypeDebit  = "debit"
)

// PaymentModeRentDebit is the mode stamped on automated monthly debits.
const PaymentModeRentDebit = "Rent Dr"

// Payment is one immutable ledger record under a student. BillingMonth carries
// the "MM-YYYY" key only on automated monthly debits; at most one debit with a
// given BillingMonth may exist per student (enforced by a partial unique index).
type Payment struct {
	ID           string    `json:"id"`
	StudentDocID string    `json:"studentDocId"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	PaymentMode  string    `json:"paymentMode"`
	Remarks      string    `json:"remarks"`
	BillingMonth string    `json:"billingMonth,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreatePaymentRequest represents the request body for recording a manual
// credit or debit against a student.
type CreatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	PaymentMode string  `json:"paymentMode"`
	Remarks     string  `json:"remarks"`
}

// LedgerLine is one payment with the running balance after applying it.
type LedgerLine struct {
	Payment Payment `json:"payment"`
	Running float64 `json:"running"`
}

// LedgerView is the running-balance statement for a student over a date range.
type LedgerView struct {
	OpeningBalance float64      `json:"openingBalance"`
	Lines          []LedgerLine `json:"lines"`
	ClosingBalance float64      `json:"closingBalance"`
}

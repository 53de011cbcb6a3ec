package models

import "time"

// Student enrollment statuses. "approved" is the active state for the rest of
// the system; the billing job's eligibility string is configurable separately
// because the two have historically disagreed (see billing.Options).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Student is owned by exactly one hostel. StudentID is the four-digit
// zero-padded sequence string; CombinedID = "{hostelId}/{studentId}" and
// doubles as the application/account number.
//
// MonthlyFee and AppliedFee are pointers so an absent fee is distinguishable
// from an explicit zero; AppliedFee is a per-student override that takes
// precedence over the hostel default when > 0. CurrentBalance is a
// denormalized cache, authoritatively recomputed from payment history by the
// balance calculator.
type Student struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"studentId"`
	HostelID         string    `json:"hostelId"`
	CombinedID       string    `json:"combinedId"`
	OwnerUserID      string    `json:"ownerUserId"`
	OwnerHostelDocID string    `json:"ownerHostelDocId"`
	Status           string    `json:"status"`
	MonthlyFee       *float64  `json:"monthlyFee,omitempty"`
	AppliedFee       *float64  `json:"appliedFee,omitempty"`
	CurrentBalance   *float64  `json:"currentBalance,omitempty"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	GuardianName     string    `json:"guardianName"`
	GuardianPhone    string    `json:"guardianPhone"`
	Address          string    `json:"address"`
	RoomNumber       string    `json:"roomNumber"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateStudentRequest represents the request body for enrolling a student,
// used by both the admin flow and the anonymous public submission flow.
type CreateStudentRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	GuardianName  string   `json:"guardianName"`
	GuardianPhone string   `json:"guardianPhone"`
	Address       string   `json:"address"`
	RoomNumber    string   `json:"roomNumber"`
	MonthlyFee    *float64 `json:"monthlyFee"`
	AppliedFee    *float64 `json:"appliedFee"`
}

// UpdateStudentStatusRequest updates the enrollment status
type UpdateStudentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStudentFeeRequest edits the per-student fee override
type UpdateStudentFeeRequest struct {
	MonthlyFee *float64 `json:"monthlyFee"`
	AppliedFee *float64 `json:"appliedFee"`
}

// StudentWithBalance is the read-side view: the stored student plus the
// balance recomputed from full payment history (the source of truth).
type StudentWithBalance struct {
	Student
	ComputedBalance float64 `json:"computedBalance"`
}

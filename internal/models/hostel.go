package models

import "time"

// Hostel is owned by exactly one user. HostelID is the two-digit zero-padded
// sequence string assigned at creation and never reused. NextStudentSeq is
// mutated only by the student sequence generator under a row lock.
type Hostel struct {
	ID             string    `json:"id"`
	OwnerUserID    string    `json:"ownerUserId"`
	HostelID       string    `json:"hostelId"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	MonthlyFee     float64   `json:"monthlyFee"`
	NextStudentSeq int       `json:"nextStudentSeq"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateHostelRequest represents the request body for creating a hostel
type CreateHostelRequest struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	MonthlyFee float64 `json:"monthlyFee"`
}

// UpdateHostelRequest represents the request body for updating a hostel
type UpdateHostelRequest struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	MonthlyFee float64 `json:"monthlyFee"`
}

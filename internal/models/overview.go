package models

// Overview is the superadmin cross-tenant aggregate.
type Overview struct {
	Users            int     `json:"users"`
	Hostels          int     `json:"hostels"`
	Students         int     `json:"students"`
	PendingStudents  int     `json:"pendingStudents"`
	ApprovedStudents int     `json:"approvedStudents"`
	Payments         int     `json:"payments"`
	TotalDue         float64 `json:"totalDue"`
}

package models

import "time"

// User roles. Superadmins can read aggregated data across all tenants.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User is a tenant administrator who owns hostels. NextHostelSeq is mutated
// only by the hostel sequence generator under a row lock.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // Never expose in JSON
	Role          string    `json:"role"`
	NextHostelSeq int       `json:"nextHostelSeq"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

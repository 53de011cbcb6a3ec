package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hostel-backend/internal/middleware"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/services"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	PaymentService *services.PaymentService
	StudentService *services.StudentService
	HostelService  *services.HostelService
}

func NewPaymentHandler(paymentService *services.PaymentService, studentService *services.StudentService, hostelService *services.HostelService) *PaymentHandler {
	return &PaymentHandler{
		PaymentService: paymentService,
		StudentService: studentService,
		HostelService:  hostelService,
	}
}

// CreatePayment records a manual ledger entry for a student
// POST /api/students/{id}/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.PaymentService.CreatePayment(r.Context(), student.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPaymentType):
			http.Error(w, "Payment type must be credit or debit", http.StatusBadRequest)
		case errors.Is(err, services.ErrInvalidPaymentAmount):
			http.Error(w, "Amount must be greater than zero", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// ListPayments returns a student's full payment history, oldest first
// GET /api/students/{id}/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	payments, err := h.PaymentService.ListPayments(r.Context(), student.ID)
	if err != nil {
		http.Error(w, "Failed to fetch payments", http.StatusInternalServerError)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

// GetLedger returns a running-balance statement for a student
// GET /api/students/{id}/ledger?start=2025-01-01
func (h *PaymentHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	var start time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = parsed
	}

	ledger, err := h.PaymentService.Ledger(r.Context(), student.ID, start)
	if err != nil {
		http.Error(w, "Failed to build ledger", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ledger)
}

// authorizedStudent loads the student from the path and verifies the caller
// owns the hostel it belongs to. Superadmins bypass the ownership check.
func (h *PaymentHandler) authorizedStudent(w http.ResponseWriter, r *http.Request) (*models.Student, bool) {
	studentDocID := mux.Vars(r)["id"]

	student, err := h.StudentService.GetStudent(r.Context(), studentDocID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			http.Error(w, "Student not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch student", http.StatusInternalServerError)
		}
		return nil, false
	}

	if role, _ := middleware.GetRoleFromContext(r.Context()); role == models.RoleSuperadmin {
		return student, true
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	if _, err := h.HostelService.GetHostel(r.Context(), userID, student.OwnerHostelDocID); err != nil {
		http.Error(w, "Student not found", http.StatusNotFound)
		return nil, false
	}
	return student, true
}

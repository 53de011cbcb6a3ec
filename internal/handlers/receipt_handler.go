package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"hostel-backend/internal/middleware"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/services"

	"github.com/gorilla/mux"
)

type ReceiptHandler struct {
	ReceiptService *services.ReceiptService
	PaymentService *services.PaymentService
	StudentService *services.StudentService
	HostelService  *services.HostelService
}

func NewReceiptHandler(receiptService *services.ReceiptService, paymentService *services.PaymentService, studentService *services.StudentService, hostelService *services.HostelService) *ReceiptHandler {
	return &ReceiptHandler{
		ReceiptService: receiptService,
		PaymentService: paymentService,
		StudentService: studentService,
		HostelService:  hostelService,
	}
}

// DownloadReceipt streams the PDF receipt for one payment
// GET /api/payments/{id}/receipt
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["id"]

	payment, err := h.PaymentService.GetPayment(r.Context(), paymentID)
	if err != nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}
	if !h.authorized(w, r, payment.StudentDocID) {
		return
	}

	pdf, err := h.ReceiptService.GeneratePaymentReceipt(r.Context(), paymentID)
	if err != nil {
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", paymentID))
	w.Write(pdf)
}

func (h *ReceiptHandler) authorized(w http.ResponseWriter, r *http.Request, studentDocID string) bool {
	if role, _ := middleware.GetRoleFromContext(r.Context()); role == models.RoleSuperadmin {
		return true
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	student, err := h.StudentService.GetStudent(r.Context(), studentDocID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			http.Error(w, "Payment not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch student", http.StatusInternalServerError)
		}
		return false
	}
	if _, err := h.HostelService.GetHostel(r.Context(), userID, student.OwnerHostelDocID); err != nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return false
	}
	return true
}

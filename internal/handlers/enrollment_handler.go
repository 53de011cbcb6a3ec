package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/services"

	"github.com/gorilla/mux"
)

// EnrollmentHandler handles the anonymous public submission flow: a QR code
// on a hostel's notice board links to a form that posts here. The owner and
// hostel are identified by the link, not by a session, and the student is
// created as "pending" for the admin to approve.
type EnrollmentHandler struct {
	StudentService *services.StudentService
}

func NewEnrollmentHandler(studentService *services.StudentService) *EnrollmentHandler {
	return &EnrollmentHandler{StudentService: studentService}
}

// Enroll creates a pending student from an anonymous submission
// POST /api/public/enroll/{userId}/{hostelId}
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerUserID := vars["userId"]
	hostelDocID := vars["hostelId"]

	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Phone == "" {
		http.Error(w, "Name and phone are required", http.StatusBadRequest)
		return
	}
	// Fee fields are admin-only; anonymous submissions cannot set them.
	req.MonthlyFee = nil
	req.AppliedFee = nil

	student, err := h.StudentService.CreateStudent(r.Context(), ownerUserID, hostelDocID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrHostelNotFound) {
			http.Error(w, "Hostel not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Enrollment failed", http.StatusInternalServerError)
		return
	}

	// Only the application number is echoed back to an anonymous caller.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"combinedId": student.CombinedID,
		"status":     student.Status,
	})
}

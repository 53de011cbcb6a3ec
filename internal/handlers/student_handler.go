package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hostel-backend/internal/middleware"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/services"

	"github.com/gorilla/mux"
)

// StudentHandler handles the admin-side student endpoints
type StudentHandler struct {
	StudentService *services.StudentService
	HostelService  *services.HostelService
}

func NewStudentHandler(studentService *services.StudentService, hostelService *services.HostelService) *StudentHandler {
	return &StudentHandler{StudentService: studentService, HostelService: hostelService}
}

// CreateStudent enrolls a student under one of the caller's hostels
// POST /api/hostels/{hostelId}/students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	hostelDocID := mux.Vars(r)["hostelId"]

	// Ownership check before touching the sequence counter
	if _, err := h.HostelService.GetHostel(r.Context(), userID, hostelDocID); err != nil {
		http.Error(w, "Hostel not found", http.StatusNotFound)
		return
	}

	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Student name is required", http.StatusBadRequest)
		return
	}

	student, err := h.StudentService.CreateStudent(r.Context(), userID, hostelDocID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrHostelNotFound) {
			http.Error(w, "Hostel not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(student)
}

// ListStudents lists the students under one of the caller's hostels
// GET /api/hostels/{hostelId}/students
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	hostelDocID := mux.Vars(r)["hostelId"]

	if _, err := h.HostelService.GetHostel(r.Context(), userID, hostelDocID); err != nil {
		http.Error(w, "Hostel not found", http.StatusNotFound)
		return
	}

	students, err := h.StudentService.ListStudents(r.Context(), hostelDocID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(students)
}

// GetStudent returns a student with the balance recomputed from history
// GET /api/students/{id}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	view, err := h.StudentService.GetStudentWithBalance(r.Context(), student.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// UpdateStatus moves a student between pending/approved/rejected
// PATCH /api/students/{id}/status
func (h *StudentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	var req models.UpdateStudentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.StudentService.UpdateStatus(r.Context(), student.ID, req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateFees edits the per-student fee override
// PATCH /api/students/{id}/fees
func (h *StudentHandler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	var req models.UpdateStudentFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.StudentService.UpdateFees(r.Context(), student.ID, &req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteStudent removes a student (payments cascade)
// DELETE /api/students/{id}
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	student, ok := h.authorizedStudent(w, r)
	if !ok {
		return
	}

	if err := h.StudentService.DeleteStudent(r.Context(), student.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorizedStudent loads the addressed student and verifies it belongs to
// the caller's tenant. Superadmins may address any student.
func (h *StudentHandler) authorizedStudent(w http.ResponseWriter, r *http.Request) (*models.Student, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	student, err := h.StudentService.GetStudent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			http.Error(w, "Student not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if student.OwnerUserID != userID && role != models.RoleSuperadmin {
		http.Error(w, "Student not found", http.StatusNotFound)
		return nil, false
	}
	return student, true
}

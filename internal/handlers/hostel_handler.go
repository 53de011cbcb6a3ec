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

// HostelHandler handles hostel CRUD for the authenticated tenant
type HostelHandler struct {
	HostelService *services.HostelService
}

func NewHostelHandler(hostelService *services.HostelService) *HostelHandler {
	return &HostelHandler{HostelService: hostelService}
}

// CreateHostel creates a hostel under the authenticated user
// POST /api/hostels
func (h *HostelHandler) CreateHostel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateHostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Hostel name is required", http.StatusBadRequest)
		return
	}

	hostel, err := h.HostelService.CreateHostel(r.Context(), userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(hostel)
}

// ListHostels returns the authenticated user's hostels
// GET /api/hostels
func (h *HostelHandler) ListHostels(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	hostels, err := h.HostelService.ListHostels(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hostels)
}

// GetHostel returns one hostel owned by the authenticated user
// GET /api/hostels/{id}
func (h *HostelHandler) GetHostel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	hostel, err := h.HostelService.GetHostel(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repositories.ErrHostelNotFound) {
			http.Error(w, "Hostel not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hostel)
}

// UpdateHostel edits name, address or the default monthly fee
// PUT /api/hostels/{id}
func (h *HostelHandler) UpdateHostel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateHostelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.HostelService.UpdateHostel(r.Context(), userID, mux.Vars(r)["id"], &req)
	if err != nil {
		if errors.Is(err, repositories.ErrHostelNotFound) {
			http.Error(w, "Hostel not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteHostel removes a hostel and cascades to its students and payments
// DELETE /api/hostels/{id}
func (h *HostelHandler) DeleteHostel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := h.HostelService.DeleteHostel(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repositories.ErrHostelNotFound) {
			http.Error(w, "Hostel not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

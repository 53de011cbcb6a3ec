package handlers

import (
	"net/http"

	"hostel-backend/internal/services"
	"hostel-backend/pkg/utils"
)

type OverviewHandler struct {
	OverviewService *services.OverviewService
}

func NewOverviewHandler(overviewService *services.OverviewService) *OverviewHandler {
	return &OverviewHandler{OverviewService: overviewService}
}

// GetOverview returns platform-wide totals for the superadmin dashboard
// GET /api/admin/overview
func (h *OverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.OverviewService.GetOverview(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch overview")
		return
	}

	utils.JSON(w, http.StatusOK, overview)
}

package services

import (
	"context"

	"hostel-backend/internal/cache"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
)

// OverviewService serves the superadmin cross-tenant aggregate, cached in
// Redis for a short TTL because it scans the whole tree.
type OverviewService struct {
	Repo *repositories.OverviewRepository
}

func NewOverviewService(repo *repositories.OverviewRepository) *OverviewService {
	return &OverviewService{Repo: repo}
}

func (s *OverviewService) GetOverview(ctx context.Context) (*models.Overview, error) {
	var cached models.Overview
	if cache.GetJSON(ctx, cache.OverviewKey, &cached) {
		return &cached, nil
	}

	overview, err := s.Repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.OverviewKey, overview)
	return overview, nil
}

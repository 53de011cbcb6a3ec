package services

import (
	"context"

	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
)

type HostelService struct {
	Repo *repositories.HostelRepository
}

func NewHostelService(repo *repositories.HostelRepository) *HostelService {
	return &HostelService{Repo: repo}
}

func (s *HostelService) CreateHostel(ctx context.Context, ownerUserID string, req *models.CreateHostelRequest) (*models.Hostel, error) {
	return s.Repo.Create(ctx, ownerUserID, req)
}

func (s *HostelService) GetHostel(ctx context.Context, ownerUserID, id string) (*models.Hostel, error) {
	return s.Repo.GetForOwner(ctx, ownerUserID, id)
}

func (s *HostelService) ListHostels(ctx context.Context, ownerUserID string) ([]models.Hostel, error) {
	return s.Repo.ListByOwner(ctx, ownerUserID)
}

func (s *HostelService) UpdateHostel(ctx context.Context, ownerUserID, id string, req *models.UpdateHostelRequest) error {
	return s.Repo.Update(ctx, ownerUserID, id, req)
}

func (s *HostelService) DeleteHostel(ctx context.Context, ownerUserID, id string) error {
	return s.Repo.Delete(ctx, ownerUserID, id)
}

package services

import (
	"context"
	"errors"
	"log"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
)

var ErrInvalidStatus = errors.New("status must be pending, approved or rejected")

type StudentService struct {
	Repo        *repositories.StudentRepository
	HostelRepo  *repositories.HostelRepository
	PaymentRepo *repositories.PaymentRepository
}

func NewStudentService(repo *repositories.StudentRepository, hostelRepo *repositories.HostelRepository, paymentRepo *repositories.PaymentRepository) *StudentService {
	return &StudentService{Repo: repo, HostelRepo: hostelRepo, PaymentRepo: paymentRepo}
}

// CreateStudent enrolls a student under a hostel. ownerUserID is the tenant
// the hostel belongs to; for the public QR flow it comes from the link, not
// from an authenticated session.
func (s *StudentService) CreateStudent(ctx context.Context, ownerUserID, hostelDocID string, req *models.CreateStudentRequest) (*models.Student, error) {
	return s.Repo.Create(ctx, ownerUserID, hostelDocID, req)
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.Repo.Get(ctx, id)
}

// GetStudentWithBalance returns the student with the balance recomputed from
// full payment history, the source of truth. When the stored cache has
// drifted it is overwritten opportunistically.
func (s *StudentService) GetStudentWithBalance(ctx context.Context, id string) (*models.StudentWithBalance, error) {
	student, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	hostel, err := s.HostelRepo.Get(ctx, student.OwnerHostelDocID)
	if err != nil && !errors.Is(err, repositories.ErrHostelNotFound) {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	fee := billing.ResolveFee(student, hostel)
	computed := billing.Balance(fee, payments)

	if student.CurrentBalance == nil || *student.CurrentBalance != computed {
		if err := s.Repo.UpdateCachedBalance(ctx, student.ID, computed); err != nil {
			// The cache is best-effort; the computed value is still returned.
			log.Printf("[Student] Balance cache reconcile failed for %s: %v", student.CombinedID, err)
		} else {
			student.CurrentBalance = &computed
		}
	}

	return &models.StudentWithBalance{Student: *student, ComputedBalance: computed}, nil
}

func (s *StudentService) ListStudents(ctx context.Context, hostelDocID string) ([]models.Student, error) {
	return s.Repo.ListByHostel(ctx, hostelDocID)
}

func (s *StudentService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *StudentService) UpdateFees(ctx context.Context, id string, req *models.UpdateStudentFeeRequest) error {
	return s.Repo.UpdateFees(ctx, id, req)
}

func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

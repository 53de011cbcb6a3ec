package services

import (
	"context"
	"errors"
	"time"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
)

var (
	ErrInvalidPaymentType   = errors.New("payment type must be credit or debit")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

type PaymentService struct {
	Repo        *repositories.PaymentRepository
	StudentRepo *repositories.StudentRepository
	HostelRepo  *repositories.HostelRepository
}

func NewPaymentService(repo *repositories.PaymentRepository, studentRepo *repositories.StudentRepository, hostelRepo *repositories.HostelRepository) *PaymentService {
	return &PaymentService{Repo: repo, StudentRepo: studentRepo, HostelRepo: hostelRepo}
}

// CreatePayment records a manual credit or debit and refreshes the student's
// cached balance from the full history.
func (s *PaymentService) CreatePayment(ctx context.Context, studentDocID string, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Type != models.PaymentTypeCredit && req.Type != models.PaymentTypeDebit {
		return nil, ErrInvalidPaymentType
	}
	if !(req.Amount > 0) { // rejects zero, negatives and NaN
		return nil, ErrInvalidPaymentAmount
	}

	student, err := s.StudentRepo.Get(ctx, studentDocID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StudentDocID: student.ID,
		Amount:       req.Amount,
		Type:         req.Type,
		PaymentMode:  req.PaymentMode,
		Remarks:      req.Remarks,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// Keep the cache aligned with the history the UI derives balances from.
	if balance, err := s.recompute(ctx, student); err == nil {
		s.StudentRepo.UpdateCachedBalance(ctx, student.ID, balance)
	}

	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, studentDocID string) ([]models.Payment, error) {
	return s.Repo.ListByStudent(ctx, studentDocID)
}

// Ledger builds the running-balance statement for a student from start
// onwards (zero start covers the full history).
func (s *PaymentService) Ledger(ctx context.Context, studentDocID string, start time.Time) (*models.LedgerView, error) {
	student, err := s.StudentRepo.Get(ctx, studentDocID)
	if err != nil {
		return nil, err
	}
	hostel, err := s.HostelRepo.Get(ctx, student.OwnerHostelDocID)
	if err != nil && !errors.Is(err, repositories.ErrHostelNotFound) {
		return nil, err
	}
	payments, err := s.Repo.ListByStudent(ctx, studentDocID)
	if err != nil {
		return nil, err
	}

	view := billing.RunningLedger(billing.ResolveFee(student, hostel), payments, start)
	return &view, nil
}

func (s *PaymentService) recompute(ctx context.Context, student *models.Student) (float64, error) {
	hostel, err := s.HostelRepo.Get(ctx, student.OwnerHostelDocID)
	if err != nil && !errors.Is(err, repositories.ErrHostelNotFound) {
		return 0, err
	}
	payments, err := s.Repo.ListByStudent(ctx, student.ID)
	if err != nil {
		return 0, err
	}
	return billing.Balance(billing.ResolveFee(student, hostel), payments), nil
}

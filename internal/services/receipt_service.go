package services

import (
	"bytes"
	"context"
	"fmt"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/models"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders a payment receipt as a downloadable PDF.
type ReceiptService struct {
	PaymentRepo *repositories.PaymentRepository
	StudentRepo *repositories.StudentRepository
	HostelRepo  *repositories.HostelRepository
}

func NewReceiptService(paymentRepo *repositories.PaymentRepository, studentRepo *repositories.StudentRepository, hostelRepo *repositories.HostelRepository) *ReceiptService {
	return &ReceiptService{PaymentRepo: paymentRepo, StudentRepo: studentRepo, HostelRepo: hostelRepo}
}

// GeneratePaymentReceipt builds the PDF for one payment.
func (s *ReceiptService) GeneratePaymentReceipt(ctx context.Context, paymentID string) ([]byte, error) {
	payment, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	student, err := s.StudentRepo.Get(ctx, payment.StudentDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	hostel, err := s.HostelRepo.Get(ctx, student.OwnerHostelDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}

	payments, err := s.PaymentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}
	balance := billing.Balance(billing.ResolveFee(student, hostel), payments)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, hostel.Name+" - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Student Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Student Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", student.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Account No: %s", student.CombinedID), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Room: %s", student.RoomNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", student.Phone), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment Details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	label := "Received (Credit)"
	if payment.Type == models.PaymentTypeDebit {
		label = "Charged (Debit)"
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Amount: %.2f", payment.Amount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Type: %s", label), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Mode: %s", payment.PaymentMode), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", payment.Timestamp.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	if payment.BillingMonth != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Billing Month: %s", payment.BillingMonth), "LRB", 1, "L", false, 0, "")
	}
	if payment.Remarks != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Remarks: %s", payment.Remarks), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Balance after full history
	pdf.SetFont("Arial", "B", 12)
	status := "Due"
	if balance < 0 {
		status = "Advance"
	} else if balance == 0 {
		status = "Settled"
	}
	pdf.CellFormat(190, 8, fmt.Sprintf("Current Balance: %.2f (%s)", balance, status), "1", 1, "L", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create records a manual credit or debit. Payments are immutable once
// created; there is no update or delete path.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO payments(id, student_doc_id, amount, type, payment_mode, remarks, ts)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		p.ID, p.StudentDocID, p.Amount, p.Type, p.PaymentMode, p.Remarks, p.Timestamp,
	).Scan(&p.CreatedAt)
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, student_doc_id, amount, type, payment_mode, remarks, COALESCE(billing_month, ''), ts, created_at
         FROM payments WHERE id=$1`, id)

	var p models.Payment
	err := row.Scan(&p.ID, &p.StudentDocID, &p.Amount, &p.Type, &p.PaymentMode,
		&p.Remarks, &p.BillingMonth, &p.Timestamp, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByStudent returns a student's full payment history in ascending
// timestamp order, the order the ledger accumulator requires.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentDocID string) ([]models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, student_doc_id, amount, type, payment_mode, remarks, COALESCE(billing_month, ''), ts, created_at
         FROM payments WHERE student_doc_id=$1 ORDER BY ts ASC`, studentDocID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.StudentDocID, &p.Amount, &p.Type, &p.PaymentMode,
			&p.Remarks, &p.BillingMonth, &p.Timestamp, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// HasMonthlyDebit reports whether a debit carrying the given billing month
// already exists for the student. This is the cheap read-side probe; the
// authoritative guard is the unique index hit inside CreateMonthlyDebit.
func (r *PaymentRepository) HasMonthlyDebit(ctx context.Context, studentDocID, monthKey string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(
             SELECT 1 FROM payments
             WHERE student_doc_id=$1 AND billing_month=$2 AND type='debit'
             LIMIT 1)`, studentDocID, monthKey).Scan(&exists)
	return exists, err
}

// CreateMonthlyDebit atomically creates the month's debit payment and updates
// the student's stored balance. Inside one transaction it:
//
//  1. Re-reads the student row under a lock (a concurrently deleted student
//     aborts with ErrStudentNotFound);
//  2. Inserts the debit with a deterministic id and ON CONFLICT DO NOTHING
//     against the partial unique (student, billing month) index, so a second
//     run for the same month inserts nothing;
//  3. Sets current_balance = (stored balance, else applied fee, else monthly
//     fee, else 0) + amount.
//
// Returns created=false without error when the month was already billed.
func (r *PaymentRepository) CreateMonthlyDebit(ctx context.Context, studentDocID string, amount float64, monthKey, remarks string, now time.Time) (bool, float64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var currentBalance, appliedFee, monthlyFee *float64
	err = tx.QueryRow(ctx,
		`SELECT current_balance, applied_fee, monthly_fee FROM students WHERE id=$1 FOR UPDATE`,
		studentDocID,
	).Scan(&currentBalance, &appliedFee, &monthlyFee)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, 0, ErrStudentNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to re-read student: %w", err)
	}

	base := 0.0
	switch {
	case currentBalance != nil:
		base = *currentBalance
	case appliedFee != nil:
		base = *appliedFee
	case monthlyFee != nil:
		base = *monthlyFee
	}
	newBalance := base + amount

	paymentID := studentDocID + ":debit-" + monthKey
	tag, err := tx.Exec(ctx,
		`INSERT INTO payments(id, student_doc_id, amount, type, payment_mode, remarks, billing_month, ts)
         VALUES($1, $2, $3, 'debit', $4, $5, $6, $7)
         ON CONFLICT (student_doc_id, billing_month) WHERE type = 'debit' DO NOTHING`,
		paymentID, studentDocID, amount, models.PaymentModeRentDebit, remarks, monthKey, now)
	if err != nil {
		return false, 0, fmt.Errorf("failed to create monthly debit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already billed this month; leave the balance untouched.
		return false, base, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE students SET current_balance=$1, updated_at=NOW() WHERE id=$2`,
		newBalance, studentDocID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit monthly debit: %w", err)
	}
	return true, newBalance, nil
}

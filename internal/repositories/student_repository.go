package repositories

import (
	"context"
	"errors"
	"fmt"

	"hostel-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository struct {
	DB *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

const studentColumns = `id, student_id, hostel_id, combined_id, owner_user_id, owner_hostel_doc_id,
	status, monthly_fee, applied_fee, current_balance,
	name, phone, guardian_name, guardian_phone, address, room_number, created_at, updated_at`

// Create assigns the next student sequence under the hostel and writes the
// student in one transaction, locking the hostel's counter row. A missing
// hostel is a hard ErrHostelNotFound, never a default-create: students must
// belong to a real hostel. Used by both the admin flow and the anonymous
// public enrollment flow.
func (r *StudentRepository) Create(ctx context.Context, ownerUserID, hostelDocID string, req *models.CreateStudentRequest) (*models.Student, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The owner filter also rejects enrollment links whose userId does not
	// match the hostel they point at.
	var hostelID string
	var seq int
	err = tx.QueryRow(ctx,
		`SELECT hostel_id, next_student_seq FROM hostels WHERE id=$1 AND owner_user_id=$2 FOR UPDATE`,
		hostelDocID, ownerUserID,
	).Scan(&hostelID, &seq)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHostelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read student sequence: %w", err)
	}

	studentID := models.FormatStudentSeq(seq)
	student := &models.Student{
		ID:               uuid.New().String(),
		StudentID:        studentID,
		HostelID:         hostelID,
		CombinedID:       models.CombinedID(hostelID, studentID),
		OwnerUserID:      ownerUserID,
		OwnerHostelDocID: hostelDocID,
		Status:           models.StatusPending,
		MonthlyFee:       req.MonthlyFee,
		AppliedFee:       req.AppliedFee,
		Name:             req.Name,
		Phone:            req.Phone,
		GuardianName:     req.GuardianName,
		GuardianPhone:    req.GuardianPhone,
		Address:          req.Address,
		RoomNumber:       req.RoomNumber,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO students(id, student_id, hostel_id, combined_id, owner_user_id, owner_hostel_doc_id,
             status, monthly_fee, applied_fee, name, phone, guardian_name, guardian_phone, address, room_number)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
         RETURNING created_at, updated_at`,
		student.ID, student.StudentID, student.HostelID, student.CombinedID,
		student.OwnerUserID, student.OwnerHostelDocID, student.Status,
		student.MonthlyFee, student.AppliedFee, student.Name, student.Phone,
		student.GuardianName, student.GuardianPhone, student.Address, student.RoomNumber,
	).Scan(&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE hostels SET next_student_seq = $1 WHERE id = $2`, seq+1, hostelDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance student sequence: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit student creation: %w", err)
	}
	return student, nil
}

func (r *StudentRepository) Get(ctx context.Context, id string) (*models.Student, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id=$1`, id)
	return scanStudent(row)
}

func (r *StudentRepository) ListByHostel(ctx context.Context, hostelDocID string) ([]models.Student, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE owner_hostel_doc_id=$1 ORDER BY student_id`,
		hostelDocID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudentRow(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

func (r *StudentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE students SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) UpdateFees(ctx context.Context, id string, req *models.UpdateStudentFeeRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE students SET monthly_fee=$1, applied_fee=$2, updated_at=NOW() WHERE id=$3`,
		req.MonthlyFee, req.AppliedFee, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// UpdateCachedBalance overwrites the denormalized balance cache. Called by
// read paths after a recompute from payment history shows drift.
func (r *StudentRepository) UpdateCachedBalance(ctx context.Context, id string, balance float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE students SET current_balance=$1, updated_at=NOW() WHERE id=$2`, balance, id)
	return err
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s, err := scanStudentRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStudentNotFound
	}
	return s, err
}

func scanStudentRow(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.StudentID, &s.HostelID, &s.CombinedID,
		&s.OwnerUserID, &s.OwnerHostelDocID, &s.Status,
		&s.MonthlyFee, &s.AppliedFee, &s.CurrentBalance,
		&s.Name, &s.Phone, &s.GuardianName, &s.GuardianPhone,
		&s.Address, &s.RoomNumber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

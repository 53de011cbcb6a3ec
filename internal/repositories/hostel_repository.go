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

type HostelRepository struct {
	DB *pgxpool.Pool
}

func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{DB: db}
}

// Create assigns the next hostel sequence for the owner and writes the hostel
// in one transaction. The owner's counter row is locked for the duration, so
// two concurrent creations under the same owner can never collide on a
// sequence number. A missing owner record is self-healed inside the same
// transaction rather than treated as an error, so the hostel is never
// orphaned.
func (r *HostelRepository) Create(ctx context.Context, ownerUserID string, req *models.CreateHostelRequest) (*models.Hostel, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int
	err = tx.QueryRow(ctx,
		`SELECT next_hostel_seq FROM users WHERE id=$1 FOR UPDATE`, ownerUserID,
	).Scan(&seq)
	if errors.Is(err, pgx.ErrNoRows) {
		seq = 1
		_, err = tx.Exec(ctx,
			`INSERT INTO users(id, username, role, next_hostel_seq) VALUES($1, $2, $3, $4)`,
			ownerUserID, ownerUserID, models.RoleAdmin, seq)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read owner sequence: %w", err)
	}

	hostel := &models.Hostel{
		ID:             uuid.New().String(),
		OwnerUserID:    ownerUserID,
		HostelID:       models.FormatHostelSeq(seq),
		Name:           req.Name,
		Address:        req.Address,
		MonthlyFee:     req.MonthlyFee,
		NextStudentSeq: 1,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO hostels(id, owner_user_id, hostel_id, name, address, monthly_fee, next_student_seq)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		hostel.ID, hostel.OwnerUserID, hostel.HostelID, hostel.Name,
		hostel.Address, hostel.MonthlyFee, hostel.NextStudentSeq,
	).Scan(&hostel.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create hostel: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET next_hostel_seq = $1, updated_at = NOW() WHERE id = $2`,
		seq+1, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance hostel sequence: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit hostel creation: %w", err)
	}
	return hostel, nil
}

func (r *HostelRepository) Get(ctx context.Context, id string) (*models.Hostel, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, owner_user_id, hostel_id, name, address, monthly_fee, next_student_seq, created_at
         FROM hostels WHERE id=$1`, id)
	return scanHostel(row)
}

// GetForOwner fetches a hostel only if it belongs to the given owner, so one
// tenant can never address another tenant's hostel by id.
func (r *HostelRepository) GetForOwner(ctx context.Context, ownerUserID, id string) (*models.Hostel, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, owner_user_id, hostel_id, name, address, monthly_fee, next_student_seq, created_at
         FROM hostels WHERE id=$1 AND owner_user_id=$2`, id, ownerUserID)
	return scanHostel(row)
}

func (r *HostelRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]models.Hostel, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, owner_user_id, hostel_id, name, address, monthly_fee, next_student_seq, created_at
         FROM hostels WHERE owner_user_id=$1 ORDER BY hostel_id`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hostels []models.Hostel
	for rows.Next() {
		var h models.Hostel
		err := rows.Scan(&h.ID, &h.OwnerUserID, &h.HostelID, &h.Name, &h.Address,
			&h.MonthlyFee, &h.NextStudentSeq, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		hostels = append(hostels, h)
	}
	return hostels, rows.Err()
}

func (r *HostelRepository) Update(ctx context.Context, ownerUserID, id string, req *models.UpdateHostelRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE hostels SET name=$1, address=$2, monthly_fee=$3 WHERE id=$4 AND owner_user_id=$5`,
		req.Name, req.Address, req.MonthlyFee, id, ownerUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrHostelNotFound
	}
	return nil
}

// Delete removes a hostel. Students and their payments cascade at the schema
// level; the counter on the owner is intentionally not rewound, sequence
// numbers are never reused.
func (r *HostelRepository) Delete(ctx context.Context, ownerUserID, id string) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM hostels WHERE id=$1 AND owner_user_id=$2`, id, ownerUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrHostelNotFound
	}
	return nil
}

func scanHostel(row pgx.Row) (*models.Hostel, error) {
	var h models.Hostel
	err := row.Scan(&h.ID, &h.OwnerUserID, &h.HostelID, &h.Name, &h.Address,
		&h.MonthlyFee, &h.NextStudentSeq, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHostelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

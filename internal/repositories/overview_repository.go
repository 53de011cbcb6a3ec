package repositories

import (
	"context"

	"hostel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OverviewRepository struct {
	DB *pgxpool.Pool
}

func NewOverviewRepository(db *pgxpool.Pool) *OverviewRepository {
	return &OverviewRepository{DB: db}
}

// Totals aggregates the whole tree in one query each. Superadmin-only view.
func (r *OverviewRepository) Totals(ctx context.Context) (*models.Overview, error) {
	var o models.Overview

	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM hostels),
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM students WHERE status = 'pending'),
			(SELECT COUNT(*) FROM students WHERE status = 'approved'),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(current_balance), 0) FROM students WHERE current_balance > 0)
	`).Scan(&o.Users, &o.Hostels, &o.Students, &o.PendingStudents,
		&o.ApprovedStudents, &o.Payments, &o.TotalDue)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

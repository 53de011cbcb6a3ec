package repositories

import (
	"context"

	"hostel-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = models.RoleAdmin // Default role
	}
	if u.NextHostelSeq == 0 {
		u.NextHostelSeq = 1
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(id, username, password_hash, role, next_hostel_seq)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.NextHostelSeq,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, next_hostel_seq, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Role, &user.NextHostelSeq, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, next_hostel_seq, created_at, updated_at
         FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Role, &user.NextHostelSeq, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUserIDs returns every tenant id, in store enumeration order. Used by the
// monthly billing scan.
func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package repository

import (
	"context"
	"errors"

	"github.com/crewline/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PgAdminRepository implements AdminRepository using pgx.
type PgAdminRepository struct{}

// NewPgAdminRepository creates a new PgAdminRepository.
func NewPgAdminRepository() *PgAdminRepository {
	return &PgAdminRepository{}
}

// FindByUsername returns an admin by username, or nil if not found.
func (r *PgAdminRepository) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Admin, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`,
		username)

	a := &domain.Admin{}
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new admin.
func (r *PgAdminRepository) Create(ctx context.Context, db DBTX, admin *domain.Admin) error {
	row := db.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		 RETURNING id, created_at`,
		admin.Username, admin.PasswordHash)

	err := row.Scan(&admin.ID, &admin.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict("username already taken")
	}
	return err
}

// Count returns the number of admin accounts.
func (r *PgAdminRepository) Count(ctx context.Context, db DBTX) (int, error) {
	var n int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

package repository

import (
	"context"

	"github.com/crewline/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// CrewRepository provides access to crew_members.
type CrewRepository interface {
	// Create inserts a new crew member and fills in the generated columns.
	// A passport collision surfaces as a CONFLICT domain error.
	Create(ctx context.Context, db DBTX, crew *domain.CrewMember) error

	// FindByID returns a crew member by ID, or nil if not found.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.CrewMember, error)

	// FindByPassport returns a crew member by normalized passport, or nil.
	FindByPassport(ctx context.Context, db DBTX, passport string) (*domain.CrewMember, error)

	// ListAll returns every crew member, most recent registration first.
	ListAll(ctx context.Context, db DBTX) ([]domain.CrewMember, error)

	// UpdateStatus applies a status change as a single conditional write
	// guarded by the record version. Returns nil if no row matched, which
	// means the record is gone or another admin got there first.
	UpdateStatus(ctx context.Context, db DBTX, id, version int64, status domain.CrewStatus) (*domain.CrewMember, error)
}

// StaffRepository provides access to staff_members.
type StaffRepository interface {
	Create(ctx context.Context, db DBTX, staff *domain.StaffMember) error
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.StaffMember, error)
	ListAll(ctx context.Context, db DBTX) ([]domain.StaffMember, error)
	UpdateStatus(ctx context.Context, db DBTX, id, version int64, status domain.StaffStatus) (*domain.StaffMember, error)
}

// AdminRepository provides access to admins.
type AdminRepository interface {
	// FindByUsername returns an admin by username, or nil if not found.
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Admin, error)

	// Create inserts a new admin.
	Create(ctx context.Context, db DBTX, admin *domain.Admin) error

	// Count returns the number of admin accounts.
	Count(ctx context.Context, db DBTX) (int, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/crewline/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

const staffColumns = `id, full_name, email_or_whatsapp, position_applying, department,
	 years_experience, current_employer, location, availability_date, resume_file,
	 photo_file, status, version, created_at, updated_at`

// PgStaffRepository implements StaffRepository using pgx.
type PgStaffRepository struct{}

// NewPgStaffRepository creates a new PgStaffRepository.
func NewPgStaffRepository() *PgStaffRepository {
	return &PgStaffRepository{}
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	s := &domain.StaffMember{}
	err := row.Scan(&s.ID, &s.FullName, &s.EmailOrWhatsapp, &s.PositionApplying,
		&s.Department, &s.YearsExperience, &s.CurrentEmployer, &s.Location,
		&s.AvailabilityDate, &s.ResumeFile, &s.PhotoFile, &s.Status, &s.Version,
		&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new staff member.
func (r *PgStaffRepository) Create(ctx context.Context, db DBTX, staff *domain.StaffMember) error {
	row := db.QueryRow(ctx, `
		INSERT INTO staff_members
			(full_name, email_or_whatsapp, position_applying, department,
			 years_experience, current_employer, location, availability_date,
			 resume_file, photo_file, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, version, created_at, updated_at`,
		staff.FullName, staff.EmailOrWhatsapp, staff.PositionApplying, staff.Department,
		staff.YearsExperience, staff.CurrentEmployer, staff.Location,
		staff.AvailabilityDate, staff.ResumeFile, staff.PhotoFile, staff.Status)

	return row.Scan(&staff.ID, &staff.Version, &staff.CreatedAt, &staff.UpdatedAt)
}

// FindByID returns a staff member by ID, or nil if not found.
func (r *PgStaffRepository) FindByID(ctx context.Context, db DBTX, id int64) (*domain.StaffMember, error) {
	return scanStaff(db.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff_members WHERE id = $1`, id))
}

// ListAll returns every staff member, most recent registration first.
func (r *PgStaffRepository) ListAll(ctx context.Context, db DBTX) ([]domain.StaffMember, error) {
	rows, err := db.Query(ctx,
		`SELECT `+staffColumns+` FROM staff_members ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *s)
	}
	return members, rows.Err()
}

// UpdateStatus applies a status change guarded by the record version.
func (r *PgStaffRepository) UpdateStatus(ctx context.Context, db DBTX, id, version int64, status domain.StaffStatus) (*domain.StaffMember, error) {
	return scanStaff(db.QueryRow(ctx, `
		UPDATE staff_members
		SET status = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+staffColumns,
		id, version, status))
}

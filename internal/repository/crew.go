package repository

import (
	"context"
	"errors"

	"github.com/crewline/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const crewColumns = `id, name, rank, passport, nationality, date_of_birth, years_experience,
	 last_vessel_type, availability_date, passport_file, cdc_file, resume_file, photo_file,
	 status, version, created_at, updated_at`

// PgCrewRepository implements CrewRepository using pgx.
type PgCrewRepository struct{}

// NewPgCrewRepository creates a new PgCrewRepository.
func NewPgCrewRepository() *PgCrewRepository {
	return &PgCrewRepository{}
}

func scanCrew(row pgx.Row) (*domain.CrewMember, error) {
	c := &domain.CrewMember{}
	err := row.Scan(&c.ID, &c.Name, &c.Rank, &c.Passport, &c.Nationality, &c.DateOfBirth,
		&c.YearsExperience, &c.LastVesselType, &c.AvailabilityDate, &c.PassportFile,
		&c.CDCFile, &c.ResumeFile, &c.PhotoFile, &c.Status, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new crew member.
func (r *PgCrewRepository) Create(ctx context.Context, db DBTX, crew *domain.CrewMember) error {
	row := db.QueryRow(ctx, `
		INSERT INTO crew_members
			(name, rank, passport, nationality, date_of_birth, years_experience,
			 last_vessel_type, availability_date, passport_file, cdc_file, resume_file,
			 photo_file, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, version, created_at, updated_at`,
		crew.Name, crew.Rank, crew.Passport, crew.Nationality, crew.DateOfBirth,
		crew.YearsExperience, crew.LastVesselType, crew.AvailabilityDate,
		crew.PassportFile, crew.CDCFile, crew.ResumeFile, crew.PhotoFile, crew.Status)

	err := row.Scan(&crew.ID, &crew.Version, &crew.CreatedAt, &crew.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict("a crew member with this passport number already exists")
	}
	return err
}

// FindByID returns a crew member by ID, or nil if not found.
func (r *PgCrewRepository) FindByID(ctx context.Context, db DBTX, id int64) (*domain.CrewMember, error) {
	return scanCrew(db.QueryRow(ctx,
		`SELECT `+crewColumns+` FROM crew_members WHERE id = $1`, id))
}

// FindByPassport returns a crew member by normalized passport, or nil.
func (r *PgCrewRepository) FindByPassport(ctx context.Context, db DBTX, passport string) (*domain.CrewMember, error) {
	return scanCrew(db.QueryRow(ctx,
		`SELECT `+crewColumns+` FROM crew_members WHERE passport = $1`, passport))
}

// ListAll returns every crew member, most recent registration first.
func (r *PgCrewRepository) ListAll(ctx context.Context, db DBTX) ([]domain.CrewMember, error) {
	rows, err := db.Query(ctx,
		`SELECT `+crewColumns+` FROM crew_members ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.CrewMember
	for rows.Next() {
		c, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *c)
	}
	return members, rows.Err()
}

// UpdateStatus applies a status change guarded by the record version.
func (r *PgCrewRepository) UpdateStatus(ctx context.Context, db DBTX, id, version int64, status domain.CrewStatus) (*domain.CrewMember, error) {
	return scanCrew(db.QueryRow(ctx, `
		UPDATE crew_members
		SET status = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+crewColumns,
		id, version, status))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

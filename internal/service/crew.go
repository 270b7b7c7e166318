package service

import (
	"context"
	"strings"

	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/filestore"
	"github.com/crewline/platform/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FileUpload is a raw uploaded file as received from the form layer.
type FileUpload struct {
	Data     []byte
	Filename string
}

// CrewService handles crew registration, tracking, and pipeline transitions.
type CrewService struct {
	pool  *pgxpool.Pool
	crews repository.CrewRepository
	files *filestore.Store
}

// NewCrewService creates a new CrewService.
func NewCrewService(pool *pgxpool.Pool, crews repository.CrewRepository, files *filestore.Store) *CrewService {
	return &CrewService{pool: pool, crews: crews, files: files}
}

// RegisterCrewInput holds the raw crew registration form fields. Optional
// dates and numbers arrive as strings and are parsed here.
type RegisterCrewInput struct {
	Name             string
	Rank             string
	Passport         string
	Nationality      string
	DateOfBirth      string
	YearsExperience  string
	LastVesselType   string
	AvailabilityDate string

	PassportFile *FileUpload
	CDCFile      *FileUpload
	ResumeFile   *FileUpload
	PhotoFile    *FileUpload
}

// Register validates the form, stores any accepted attachments, and persists
// a new crew member in the Registered stage.
func (s *CrewService) Register(ctx context.Context, input RegisterCrewInput) (*domain.CrewMember, error) {
	name, err := domain.RequireField("name", input.Name)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	rank, err := domain.RequireField("rank", input.Rank)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if _, err := domain.RequireField("passport", input.Passport); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	passport := domain.NormalizePassport(input.Passport)

	dob, err := domain.ParseOptionalDate("date_of_birth", input.DateOfBirth)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	availability, err := domain.ParseOptionalDate("availability_date", input.AvailabilityDate)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	experience, err := domain.ParseOptionalExperience("years_experience", input.YearsExperience)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.crews.FindByPassport(ctx, s.pool, passport)
	if err != nil {
		return nil, domain.ErrInternal("find crew by passport", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("a crew member with this passport number already exists")
	}

	hint := strings.ReplaceAll(name, " ", "_")
	passportFile, err := s.saveUpload(input.PassportFile, hint+"_passport")
	if err != nil {
		return nil, err
	}
	cdcFile, err := s.saveUpload(input.CDCFile, hint+"_cdc")
	if err != nil {
		return nil, err
	}
	resumeFile, err := s.saveUpload(input.ResumeFile, hint+"_resume")
	if err != nil {
		return nil, err
	}
	photoFile, err := s.saveUpload(input.PhotoFile, hint+"_photo")
	if err != nil {
		return nil, err
	}

	crew := &domain.CrewMember{
		Name:             name,
		Rank:             rank,
		Passport:         passport,
		Nationality:      strings.TrimSpace(input.Nationality),
		DateOfBirth:      dob,
		YearsExperience:  experience,
		LastVesselType:   strings.TrimSpace(input.LastVesselType),
		AvailabilityDate: availability,
		PassportFile:     passportFile,
		CDCFile:          cdcFile,
		ResumeFile:       resumeFile,
		PhotoFile:        photoFile,
		Status:           domain.CrewRegistered,
	}
	if err := s.crews.Create(ctx, s.pool, crew); err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("create crew member", err)
	}
	return crew, nil
}

func (s *CrewService) saveUpload(upload *FileUpload, hint string) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", nil
	}
	name, err := s.files.Save(upload.Data, upload.Filename, filestore.CategoryCrew, hint)
	if err != nil {
		return "", domain.ErrInternal("store upload", err)
	}
	return name, nil
}

// FindByPassport looks up a crew member for the public tracker. The lookup
// key is case-normalized first.
func (s *CrewService) FindByPassport(ctx context.Context, passport string) (*domain.CrewMember, error) {
	normalized := domain.NormalizePassport(passport)
	if normalized == "" {
		return nil, domain.ErrValidation("passport is required")
	}
	crew, err := s.crews.FindByPassport(ctx, s.pool, normalized)
	if err != nil {
		return nil, domain.ErrInternal("find crew by passport", err)
	}
	if crew == nil {
		return nil, domain.ErrNotFound("crew member", normalized)
	}
	return crew, nil
}

// Get returns a crew member by ID.
func (s *CrewService) Get(ctx context.Context, id int64) (*domain.CrewMember, error) {
	crew, err := s.crews.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find crew member", err)
	}
	if crew == nil {
		return nil, domain.ErrNotFound("crew member", formatID(id))
	}
	return crew, nil
}

// ListAll returns every crew member, most recent registration first.
func (s *CrewService) ListAll(ctx context.Context) ([]domain.CrewMember, error) {
	members, err := s.crews.ListAll(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list crew members", err)
	}
	return members, nil
}

// Advance moves a crew member one stage forward. At Approved it is a no-op
// that reports alreadyFinal; for a rejected record it is an error.
func (s *CrewService) Advance(ctx context.Context, id int64) (crew *domain.CrewMember, alreadyFinal bool, err error) {
	crew, err = s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	next, final, err := domain.NextCrewStatus(crew.Status)
	if err != nil {
		return nil, false, err
	}
	if final {
		return crew, true, nil
	}

	updated, err := s.setStatus(ctx, crew, next)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// Approve force-sets the status to Approved, including from Rejected. The
// un-reject path is deliberate: approval is the only way back out of
// rejection.
func (s *CrewService) Approve(ctx context.Context, id int64) (*domain.CrewMember, error) {
	crew, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, crew, domain.CrewApproved)
}

// Reject force-sets the status to Rejected from any state.
func (s *CrewService) Reject(ctx context.Context, id int64) (*domain.CrewMember, error) {
	crew, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, crew, domain.CrewRejected)
}

// setStatus applies the transition as a single version-guarded write so two
// admins acting at once cannot silently overwrite each other.
func (s *CrewService) setStatus(ctx context.Context, crew *domain.CrewMember, status domain.CrewStatus) (*domain.CrewMember, error) {
	updated, err := s.crews.UpdateStatus(ctx, s.pool, crew.ID, crew.Version, status)
	if err != nil {
		return nil, domain.ErrInternal("update crew status", err)
	}
	if updated == nil {
		return nil, domain.ErrConflict("the record was changed by someone else, reload and retry")
	}
	return updated, nil
}

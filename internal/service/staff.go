package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/filestore"
	"github.com/crewline/platform/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

// StaffService handles shore staff registration and the approve/reject
// outcomes. Staff have no passport tracking and no intermediate stages.
type StaffService struct {
	pool  *pgxpool.Pool
	staff repository.StaffRepository
	files *filestore.Store
}

// NewStaffService creates a new StaffService.
func NewStaffService(pool *pgxpool.Pool, staff repository.StaffRepository, files *filestore.Store) *StaffService {
	return &StaffService{pool: pool, staff: staff, files: files}
}

// RegisterStaffInput holds the raw staff registration form fields.
type RegisterStaffInput struct {
	FullName         string
	EmailOrWhatsapp  string
	PositionApplying string
	Department       string
	YearsExperience  string
	CurrentEmployer  string
	Location         string
	AvailabilityDate string

	ResumeFile *FileUpload
	PhotoFile  *FileUpload
}

// Register validates the form, stores any accepted attachments, and persists
// a new staff member directly in the Screening stage.
func (s *StaffService) Register(ctx context.Context, input RegisterStaffInput) (*domain.StaffMember, error) {
	fullName, err := domain.RequireField("full_name", input.FullName)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	contact, err := domain.RequireField("email_or_whatsapp", input.EmailOrWhatsapp)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	position, err := domain.RequireField("position_applying", input.PositionApplying)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	department, err := domain.RequireField("department", input.Department)
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

	hint := strings.ReplaceAll(fullName, " ", "_")
	resumeFile, err := s.saveUpload(input.ResumeFile, hint+"_resume")
	if err != nil {
		return nil, err
	}
	photoFile, err := s.saveUpload(input.PhotoFile, hint+"_photo")
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		FullName:         fullName,
		EmailOrWhatsapp:  contact,
		PositionApplying: position,
		Department:       department,
		YearsExperience:  experience,
		CurrentEmployer:  strings.TrimSpace(input.CurrentEmployer),
		Location:         strings.TrimSpace(input.Location),
		AvailabilityDate: availability,
		ResumeFile:       resumeFile,
		PhotoFile:        photoFile,
		Status:           domain.StaffScreening,
	}
	if err := s.staff.Create(ctx, s.pool, staff); err != nil {
		return nil, domain.ErrInternal("create staff member", err)
	}
	return staff, nil
}

func (s *StaffService) saveUpload(upload *FileUpload, hint string) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", nil
	}
	name, err := s.files.Save(upload.Data, upload.Filename, filestore.CategoryStaff, hint)
	if err != nil {
		return "", domain.ErrInternal("store upload", err)
	}
	return name, nil
}

// Get returns a staff member by ID.
func (s *StaffService) Get(ctx context.Context, id int64) (*domain.StaffMember, error) {
	staff, err := s.staff.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find staff member", err)
	}
	if staff == nil {
		return nil, domain.ErrNotFound("staff member", formatID(id))
	}
	return staff, nil
}

// ListAll returns every staff member, most recent registration first.
func (s *StaffService) ListAll(ctx context.Context) ([]domain.StaffMember, error) {
	members, err := s.staff.ListAll(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list staff members", err)
	}
	return members, nil
}

// Approve force-sets the status to Approved, including from Rejected.
func (s *StaffService) Approve(ctx context.Context, id int64) (*domain.StaffMember, error) {
	return s.setStatus(ctx, id, domain.StaffApproved)
}

// Reject force-sets the status to Rejected from any state.
func (s *StaffService) Reject(ctx context.Context, id int64) (*domain.StaffMember, error) {
	return s.setStatus(ctx, id, domain.StaffRejected)
}

func (s *StaffService) setStatus(ctx context.Context, id int64, status domain.StaffStatus) (*domain.StaffMember, error) {
	staff, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.staff.UpdateStatus(ctx, s.pool, staff.ID, staff.Version, status)
	if err != nil {
		return nil, domain.ErrInternal("update staff status", err)
	}
	if updated == nil {
		return nil, domain.ErrConflict("the record was changed by someone else, reload and retry")
	}
	return updated, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/filestore"
	"github.com/crewline/platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCrewRepo is an in-memory CrewRepository. The db argument is ignored,
// which lets service tests run without a database. beforeUpdate, when set,
// runs before each UpdateStatus to interleave a concurrent write.
type stubCrewRepo struct {
	records      map[int64]*domain.CrewMember
	nextID       int64
	beforeUpdate func()
}

func newStubCrewRepo() *stubCrewRepo {
	return &stubCrewRepo{records: make(map[int64]*domain.CrewMember)}
}

func (r *stubCrewRepo) Create(_ context.Context, _ repository.DBTX, crew *domain.CrewMember) error {
	for _, existing := range r.records {
		if existing.Passport == crew.Passport {
			return domain.ErrConflict("a crew member with this passport number already exists")
		}
	}
	r.nextID++
	crew.ID = r.nextID
	crew.Version = 1
	crew.CreatedAt = time.Now()
	crew.UpdatedAt = crew.CreatedAt
	clone := *crew
	r.records[crew.ID] = &clone
	return nil
}

func (r *stubCrewRepo) FindByID(_ context.Context, _ repository.DBTX, id int64) (*domain.CrewMember, error) {
	c, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *stubCrewRepo) FindByPassport(_ context.Context, _ repository.DBTX, passport string) (*domain.CrewMember, error) {
	for _, c := range r.records {
		if c.Passport == passport {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubCrewRepo) ListAll(_ context.Context, _ repository.DBTX) ([]domain.CrewMember, error) {
	var out []domain.CrewMember
	for _, c := range r.records {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCrewRepo) UpdateStatus(_ context.Context, _ repository.DBTX, id, version int64, status domain.CrewStatus) (*domain.CrewMember, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	c, ok := r.records[id]
	if !ok || c.Version != version {
		return nil, nil
	}
	c.Status = status
	c.Version++
	c.UpdatedAt = time.Now()
	clone := *c
	return &clone, nil
}

func newTestCrewService(t *testing.T) (*CrewService, *stubCrewRepo) {
	t.Helper()
	repo := newStubCrewRepo()
	return NewCrewService(nil, repo, filestore.New(t.TempDir())), repo
}

func validCrewInput() RegisterCrewInput {
	return RegisterCrewInput{
		Name:     "Jane Doe",
		Rank:     "Captain",
		Passport: "ab123",
	}
}

func TestCrewRegister_NormalizesPassport(t *testing.T) {
	svc, _ := newTestCrewService(t)

	crew, err := svc.Register(context.Background(), validCrewInput())
	require.NoError(t, err)

	assert.Equal(t, "AB123", crew.Passport)
	assert.Equal(t, domain.CrewRegistered, crew.Status)
	assert.Equal(t, "Jane Doe", crew.Name)
	assert.NotZero(t, crew.ID)
}

func TestCrewRegister_RequiredFields(t *testing.T) {
	svc, _ := newTestCrewService(t)

	tests := []struct {
		name  string
		input RegisterCrewInput
	}{
		{"missing name", RegisterCrewInput{Rank: "Captain", Passport: "AB123"}},
		{"missing rank", RegisterCrewInput{Name: "Jane", Passport: "AB123"}},
		{"missing passport", RegisterCrewInput{Name: "Jane", Rank: "Captain"}},
		{"whitespace only name", RegisterCrewInput{Name: "   ", Rank: "Captain", Passport: "AB123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			require.Error(t, err)
			appErr, ok := err.(*domain.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestCrewRegister_DuplicatePassportAnyCase(t *testing.T) {
	svc, _ := newTestCrewService(t)

	_, err := svc.Register(context.Background(), validCrewInput())
	require.NoError(t, err)

	dup := validCrewInput()
	dup.Name = "John Smith"
	dup.Passport = "AB123"
	_, err = svc.Register(context.Background(), dup)
	require.Error(t, err)

	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestCrewRegister_MalformedOptionalFields(t *testing.T) {
	svc, _ := newTestCrewService(t)

	t.Run("bad date", func(t *testing.T) {
		input := validCrewInput()
		input.DateOfBirth = "01-02-1990"
		_, err := svc.Register(context.Background(), input)
		assert.Error(t, err)
	})

	t.Run("negative experience", func(t *testing.T) {
		input := validCrewInput()
		input.YearsExperience = "-1"
		_, err := svc.Register(context.Background(), input)
		assert.Error(t, err)
	})

	t.Run("valid optionals parse", func(t *testing.T) {
		input := validCrewInput()
		input.Passport = "CD456"
		input.DateOfBirth = "1990-02-01"
		input.YearsExperience = "8"
		input.AvailabilityDate = "2026-10-01"
		crew, err := svc.Register(context.Background(), input)
		require.NoError(t, err)
		require.NotNil(t, crew.DateOfBirth)
		require.NotNil(t, crew.YearsExperience)
		assert.Equal(t, 8, *crew.YearsExperience)
	})
}

func TestCrewRegister_Attachments(t *testing.T) {
	svc, _ := newTestCrewService(t)

	input := validCrewInput()
	input.PassportFile = &FileUpload{Data: []byte("%PDF-1.4"), Filename: "scan.PDF"}
	input.ResumeFile = &FileUpload{Data: []byte("MZ"), Filename: "malware.exe"}

	crew, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	assert.NotEmpty(t, crew.PassportFile, "allowed upload should be stored")
	assert.Empty(t, crew.ResumeFile, "disallowed upload is silently dropped")
	assert.Empty(t, crew.CDCFile)
}

func TestCrewAdvance_FullPipeline(t *testing.T) {
	svc, _ := newTestCrewService(t)
	ctx := context.Background()

	crew, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)
	assert.Equal(t, domain.CrewRegistered, crew.Status)

	want := []domain.CrewStatus{domain.CrewScreening, domain.CrewDocumentsVerified, domain.CrewApproved}
	for _, expected := range want {
		updated, final, err := svc.Advance(ctx, crew.ID)
		require.NoError(t, err)
		assert.False(t, final)
		assert.Equal(t, expected, updated.Status)
	}

	// Another advance is a no-op at the final stage.
	updated, final, err := svc.Advance(ctx, crew.ID)
	require.NoError(t, err)
	assert.True(t, final)
	assert.Equal(t, domain.CrewApproved, updated.Status)
	assert.Equal(t, "Approved", updated.StatusLabel())
}

func TestCrewAdvance_RejectedIsImmutable(t *testing.T) {
	svc, _ := newTestCrewService(t)
	ctx := context.Background()

	crew, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)

	_, err = svc.Reject(ctx, crew.ID)
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, crew.ID)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCrewRejectThenApprove(t *testing.T) {
	svc, _ := newTestCrewService(t)
	ctx := context.Background()

	crew, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, crew.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CrewRejected, rejected.Status)

	approved, err := svc.Approve(ctx, crew.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CrewApproved, approved.Status)
}

func TestCrewRejectFromApproved(t *testing.T) {
	svc, _ := newTestCrewService(t)
	ctx := context.Background()

	crew, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, crew.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, crew.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CrewRejected, rejected.Status)
}

func TestCrewSetStatus_VersionConflict(t *testing.T) {
	svc, repo := newTestCrewService(t)
	ctx := context.Background()

	crew, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)

	// A concurrent admin commits between this request's read and its
	// conditional write, so the version guard must refuse the update.
	repo.beforeUpdate = func() {
		repo.beforeUpdate = nil
		repo.records[crew.ID].Version++
	}

	_, _, err = svc.Advance(ctx, crew.ID)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The stored record kept the concurrent writer's state.
	assert.Equal(t, domain.CrewRegistered, repo.records[crew.ID].Status)
}

func TestCrewFindByPassport(t *testing.T) {
	svc, _ := newTestCrewService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validCrewInput())
	require.NoError(t, err)

	t.Run("case-insensitive lookup", func(t *testing.T) {
		crew, err := svc.FindByPassport(ctx, "ab123")
		require.NoError(t, err)
		assert.Equal(t, "AB123", crew.Passport)
	})

	t.Run("unknown passport", func(t *testing.T) {
		_, err := svc.FindByPassport(ctx, "ZZ999")
		require.Error(t, err)
		appErr, ok := err.(*domain.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("blank passport", func(t *testing.T) {
		_, err := svc.FindByPassport(ctx, "  ")
		assert.Error(t, err)
	})
}

func TestCrewGet_NotFound(t *testing.T) {
	svc, _ := newTestCrewService(t)

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

package service

import (
	"context"
	"strings"

	"github.com/crewline/platform/internal/auth"
	"github.com/crewline/platform/internal/domain"
	"github.com/crewline/platform/internal/guard"
	"github.com/crewline/platform/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService handles first-run admin setup and dashboard login.
type AdminAuthService struct {
	pool   *pgxpool.Pool
	admins repository.AdminRepository
	jwtMgr *auth.JWTManager
}

// NewAdminAuthService creates a new AdminAuthService.
func NewAdminAuthService(pool *pgxpool.Pool, admins repository.AdminRepository, jwtMgr *auth.JWTManager) *AdminAuthService {
	return &AdminAuthService{pool: pool, admins: admins, jwtMgr: jwtMgr}
}

// SetupInput holds the first-run credential creation fields.
type SetupInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned on successful setup or login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// NeedsSetup reports whether no admin account exists yet.
func (s *AdminAuthService) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.admins.Count(ctx, s.pool)
	if err != nil {
		return false, domain.ErrInternal("count admins", err)
	}
	return count == 0, nil
}

// Setup creates the first admin account. It only works while the admins
// table is empty; there is no well-known default credential to replace.
func (s *AdminAuthService) Setup(ctx context.Context, input SetupInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		return nil, domain.ErrValidation("username must be at least 3 characters")
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	needed, err := s.NeedsSetup(ctx)
	if err != nil {
		return nil, err
	}
	if !needed {
		return nil, domain.ErrConflict("setup has already been completed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	admin := &domain.Admin{Username: username, PasswordHash: string(hash)}
	if err := s.admins.Create(ctx, s.pool, admin); err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("create admin", err)
	}

	token, err := s.jwtMgr.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}
	return &AuthResult{Token: token, Username: admin.Username}, nil
}

// Login authenticates an admin and returns a session token. Unknown users
// and bad passwords get the same generic message.
func (s *AdminAuthService) Login(ctx context.Context, input LoginInput, clientIP string) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrValidation("username and password are required")
	}

	if err := guard.CheckLocked(ctx, s.pool, username); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByUsername(ctx, s.pool, username)
	if err != nil {
		return nil, domain.ErrInternal("find admin", err)
	}
	if admin == nil {
		guard.RecordAttempt(ctx, s.pool, username, clientIP, false)
		return nil, domain.ErrUnauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, username, clientIP, false)
		return nil, domain.ErrUnauthorized("invalid username or password")
	}

	guard.RecordAttempt(ctx, s.pool, username, clientIP, true)

	token, err := s.jwtMgr.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}
	return &AuthResult{Token: token, Username: admin.Username}, nil
}

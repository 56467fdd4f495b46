package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/docket-service/internal/auth"
	"github.com/spec-kit/docket-service/internal/config"
	"github.com/spec-kit/docket-service/internal/domain"
	"github.com/spec-kit/docket-service/internal/repository"
	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

// AuthService coordinates student and admin login plus admin credential
// maintenance.
type AuthService struct {
	students   repository.StudentRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StudentRepo repository.StudentRepository
	AdminRepo   repository.AdminRepository
}

// LoginResult carries the authenticated identity and its session credential.
type LoginResult struct {
	UserID    int64
	FirstName string
	LastName  string
	Username  string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		students:   deps.StudentRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates a student (by student number) or an admin (by
// username). Unknown identities and wrong passwords both yield the same
// 401; only store connectivity failures surface as 500.
func (s *AuthService) Login(ctx context.Context, identifier, password string, role domain.Role) (*LoginResult, error) {
	result := &LoginResult{Role: role}

	var passwordHash string
	switch role {
	case domain.RoleAdmin:
		admin, err := s.admins.GetByUsername(ctx, identifier)
		if err != nil {
			return nil, loginLookupError(err)
		}
		result.UserID = admin.ID
		result.Username = admin.Username
		passwordHash = admin.PasswordHash
	case domain.RoleStudent:
		student, err := s.students.GetByNumber(ctx, identifier)
		if err != nil {
			return nil, loginLookupError(err)
		}
		result.UserID = student.ID
		result.FirstName = student.FirstName
		result.LastName = student.LastName
		passwordHash = student.PasswordHash
	default:
		return nil, apperrors.NewValidationError("Unknown role.")
	}

	if passwordHash == "" {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}
	if err := auth.ComparePassword(passwordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(strconv.FormatInt(result.UserID, 10), role)
	if err != nil {
		return nil, err
	}
	result.Token = token
	result.ExpiresAt = expiresAt
	return result, nil
}

// SetAdminCredential creates an admin account or resets its password,
// hashing with the configured bcrypt cost. Reached only from the adminctl
// command; there is no self-service path.
func (s *AuthService) SetAdminCredential(ctx context.Context, username, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("Missing admin credentials.")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.Upsert(ctx, username, hash)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure("Could not save admin account.", err)
	}
	return admin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func loginLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewUnauthorized("Invalid credentials")
	}
	return apperrors.NewPersistenceFailure("Connection error. Please try again later.", err)
}

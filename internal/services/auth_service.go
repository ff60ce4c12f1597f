package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/internal/session"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to every password set through the API.
const MinPasswordLength = 6

// --- Data Transfer Objects (DTOs) ---

// ChangePasswordRequest DTO
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(creds models.Credentials) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	ResolvePrincipal(role access.Role, username string) (*access.Principal, error)
	ChangePassword(principal access.Principal, req ChangePasswordRequest) error
	EnsureDefaultAdmin(username, password string) error
}

// --- authService Implementation ---
type authService struct {
	authRepo  repositories.AuthRepository
	staffRepo repositories.StaffRepository
	tokens    *utils.TokenManager
	revoked   session.Store
	db        *sqlx.DB
	clock     Clock
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	authRepo repositories.AuthRepository,
	staffRepo repositories.StaffRepository,
	tokens *utils.TokenManager,
	revoked session.Store,
	db *sqlx.DB,
	clock Clock,
) AuthService {
	return &authService{
		authRepo:  authRepo,
		staffRepo: staffRepo,
		tokens:    tokens,
		revoked:   revoked,
		db:        db,
		clock:     clock,
	}
}

// Login checks admin accounts first, then staff accounts.
func (s *authService) Login(creds models.Credentials) (*models.LoginResponse, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	principal, err := s.authenticate(username, creds.Password)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.GenerateAccessToken(principal.Username, string(principal.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	utils.LogInfo("User logged in", map[string]interface{}{"username": principal.Username, "role": principal.Role})
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Unix(),
		Principal:   *principal,
	}, nil
}

func (s *authService) authenticate(username, password string) (*access.Principal, error) {
	admin, err := s.authRepo.FindAdminByUsername(s.db, username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil {
			return &access.Principal{Role: access.RoleAdmin, Username: admin.Username, Name: admin.Name}, nil
		}
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	staff, err := s.staffRepo.GetStaffByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &access.Principal{
		Role:       access.RoleStaff,
		Username:   staff.Username,
		Name:       staff.Name,
		Privileges: staff.Privileges,
	}, nil
}

// Logout revokes the token until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: token has no expiry", ErrValidation)
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ResolvePrincipal reads the account behind a token so that privilege edits
// and deletions take effect on the next request.
func (s *authService) ResolvePrincipal(role access.Role, username string) (*access.Principal, error) {
	switch role {
	case access.RoleAdmin:
		admin, err := s.authRepo.FindAdminByUsername(s.db, username)
		if err != nil {
			return nil, mapNotFound(err, "admin "+username)
		}
		return &access.Principal{Role: access.RoleAdmin, Username: admin.Username, Name: admin.Name}, nil
	case access.RoleStaff:
		staff, err := s.staffRepo.GetStaffByUsername(s.db, username)
		if err != nil {
			return nil, mapNotFound(err, "staff "+username)
		}
		return &access.Principal{
			Role:       access.RoleStaff,
			Username:   staff.Username,
			Name:       staff.Name,
			Privileges: staff.Privileges,
		}, nil
	default:
		return nil, ErrInvalidCredentials
	}
}

func (s *authService) ChangePassword(principal access.Principal, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: new password and confirmation do not match", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.NewPassword, MinPasswordLength) {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	var currentHash string
	switch principal.Role {
	case access.RoleAdmin:
		admin, err := s.authRepo.FindAdminByUsername(tx, principal.Username)
		if err != nil {
			return mapNotFound(err, "admin account")
		}
		currentHash = admin.PasswordHash
	case access.RoleStaff:
		staff, err := s.staffRepo.GetStaffByUsername(tx, principal.Username)
		if err != nil {
			return mapNotFound(err, "staff account")
		}
		currentHash = staff.PasswordHash
	default:
		return ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	newHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if principal.Role == access.RoleAdmin {
		err = s.authRepo.UpdateAdminPassword(tx, principal.Username, newHash)
	} else {
		err = s.staffRepo.UpdateStaffPassword(tx, principal.Username, newHash, s.clock.now().Format(models.DateTimeLayout))
	}
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit password change: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds one admin account when none exists.
func (s *authService) EnsureDefaultAdmin(username, password string) error {
	if utils.IsEmpty(username) || password == "" {
		return fmt.Errorf("%w: default admin username and password are required", ErrValidation)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.authRepo.CountAdmins(tx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.AdminAccount{
		Username:     username,
		PasswordHash: hash,
		Name:         "Administrator",
		CreatedAt:    s.clock.now().Format(models.DateTimeLayout),
	}
	if err := s.authRepo.CreateAdmin(tx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit admin seed: %w", err)
	}

	utils.LogInfo("Default admin account created", map[string]interface{}{"username": admin.Username})
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// mapNotFound converts a repository miss into ErrNotFound naming what was missing.
func mapNotFound(err error, what string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

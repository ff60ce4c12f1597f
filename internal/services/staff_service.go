package services

import (
	"errors"
	"fmt"
	"strings"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// --- Data Transfer Objects (DTOs) ---

// StaffProfile holds the editable fields of a staff account.
type StaffProfile struct {
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	DOB            string          `json:"dob"`
	Gender         string          `json:"gender"`
	Salary         decimal.Decimal `json:"salary"`
	NextOfKinName  string          `json:"next_of_kin_name"`
	NextOfKinPhone string          `json:"next_of_kin_phone"`
	StaffType      string          `json:"staff_type"`
	// Privileges maps capability names (optionally prefixed "perm_") to on/off.
	Privileges map[string]bool `json:"privileges"`
}

// CreateStaffRequest DTO
type CreateStaffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	StaffProfile
}

// UpdateStaffRequest DTO. The username comes from the path and cannot change.
type UpdateStaffRequest struct {
	StaffProfile
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaffAccount(req CreateStaffRequest) (*models.StaffAccount, error)
	GetStaff(search string) ([]models.StaffAccount, error)
	GetStaffByUsername(username string) (*models.StaffAccount, error)
	UpdateStaffAccount(username string, req UpdateStaffRequest) (*models.StaffAccount, error)
	DeleteStaffAccount(username string) error
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo repositories.StaffRepository
	authRepo  repositories.AuthRepository
	db        *sqlx.DB
	clock     Clock
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(staffRepo repositories.StaffRepository, authRepo repositories.AuthRepository, db *sqlx.DB, clock Clock) StaffService {
	return &staffService{staffRepo: staffRepo, authRepo: authRepo, db: db, clock: clock}
}

func validateStaffProfile(p StaffProfile) error {
	if utils.IsEmpty(p.Name) {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Salary.IsNegative() {
		return fmt.Errorf("%w: salary cannot be negative", ErrValidation)
	}
	return nil
}

func applyStaffProfile(staff *models.StaffAccount, p StaffProfile) {
	staff.Name = strings.TrimSpace(p.Name)
	staff.Phone = strings.TrimSpace(p.Phone)
	staff.Address = strings.TrimSpace(p.Address)
	staff.DOB = strings.TrimSpace(p.DOB)
	staff.Gender = strings.TrimSpace(p.Gender)
	staff.Salary = p.Salary
	staff.NextOfKinName = strings.TrimSpace(p.NextOfKinName)
	staff.NextOfKinPhone = strings.TrimSpace(p.NextOfKinPhone)
	staff.StaffType = strings.TrimSpace(p.StaffType)
	staff.Privileges = access.CapabilitiesFromFlags(p.Privileges)
}

func (s *staffService) CreateStaffAccount(req CreateStaffRequest) (*models.StaffAccount, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if utils.IsEmpty(req.Password) {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, MinPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if err := validateStaffProfile(req.StaffProfile); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Admin and staff share one login namespace.
	if _, err := s.authRepo.FindAdminByUsername(tx, username); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check admin usernames: %w", err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.now().Format(models.DateTimeLayout)
	staff := &models.StaffAccount{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyStaffProfile(staff, req.StaffProfile)

	if err := s.staffRepo.CreateStaff(tx, staff); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit staff account: %w", err)
	}

	utils.LogInfo("Staff account created", map[string]interface{}{"username": username, "privileges": staff.Privileges.String()})
	return staff, nil
}

func (s *staffService) GetStaff(search string) ([]models.StaffAccount, error) {
	staff, err := s.staffRepo.GetStaff(s.db, search)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaffByUsername(username string) (*models.StaffAccount, error) {
	staff, err := s.staffRepo.GetStaffByUsername(s.db, username)
	if err != nil {
		return nil, mapNotFound(err, "staff "+username)
	}
	return staff, nil
}

// UpdateStaffAccount replaces the profile and the privilege set wholesale.
func (s *staffService) UpdateStaffAccount(username string, req UpdateStaffRequest) (*models.StaffAccount, error) {
	if err := validateStaffProfile(req.StaffProfile); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	staff, err := s.staffRepo.GetStaffByUsername(tx, username)
	if err != nil {
		return nil, mapNotFound(err, "staff "+username)
	}
	applyStaffProfile(staff, req.StaffProfile)
	staff.UpdatedAt = s.clock.now().Format(models.DateTimeLayout)

	if err := s.staffRepo.UpdateStaff(tx, staff); err != nil {
		return nil, mapNotFound(err, "staff "+username)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit staff update: %w", err)
	}
	return staff, nil
}

func (s *staffService) DeleteStaffAccount(username string) error {
	if err := s.staffRepo.DeleteStaff(s.db, username); err != nil {
		return mapNotFound(err, "staff "+username)
	}
	utils.LogInfo("Staff account deleted", map[string]interface{}{"username": username})
	return nil
}

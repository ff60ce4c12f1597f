package services

import (
	"errors"
	"fmt"
	"strings"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// PackageRequest DTO, used for create and update.
type PackageRequest struct {
	Name           string          `json:"name" binding:"required,notblank"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"duration_months" binding:"required"`
	Trainers       bool            `json:"trainers"`
	CardioAccess   bool            `json:"cardio_access"`
	SaunaAccess    bool            `json:"sauna_access"`
	SteamRoom      bool            `json:"steam_room"`
	Timings        string          `json:"timings"`
}

// --- PackageService Interface ---
type PackageService interface {
	CreatePackage(req PackageRequest) (*models.Package, error)
	GetPackages() ([]models.Package, error)
	GetPackageByID(id int64) (*models.Package, error)
	UpdatePackage(id int64, req PackageRequest) (*models.Package, error)
	DeletePackage(id int64) error
}

type packageService struct {
	packageRepo repositories.PackageRepository
	memberRepo  repositories.MemberRepository
	db          *sqlx.DB
}

// NewPackageService creates a new instance of PackageService.
func NewPackageService(packageRepo repositories.PackageRepository, memberRepo repositories.MemberRepository, db *sqlx.DB) PackageService {
	return &packageService{packageRepo: packageRepo, memberRepo: memberRepo, db: db}
}

func (req PackageRequest) validate() error {
	if utils.IsEmpty(req.Name) {
		return fmt.Errorf("%w: package name cannot be empty", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.DurationMonths < 1 {
		return fmt.Errorf("%w: duration must be at least one month", ErrValidation)
	}
	return nil
}

func (req PackageRequest) apply(pkg *models.Package) {
	pkg.Name = strings.TrimSpace(req.Name)
	pkg.Price = req.Price
	pkg.DurationMonths = req.DurationMonths
	pkg.Trainers = req.Trainers
	pkg.CardioAccess = req.CardioAccess
	pkg.SaunaAccess = req.SaunaAccess
	pkg.SteamRoom = req.SteamRoom
	pkg.Timings = strings.TrimSpace(req.Timings)
}

func (s *packageService) CreatePackage(req PackageRequest) (*models.Package, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.packageRepo.NextPackageID(tx)
	if err != nil {
		return nil, err
	}
	pkg := &models.Package{ID: id}
	req.apply(pkg)

	if err := s.packageRepo.CreatePackage(tx, pkg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: package %q", ErrDuplicateName, pkg.Name)
		}
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) GetPackages() ([]models.Package, error) {
	pkgs, err := s.packageRepo.GetPackages(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}
	return pkgs, nil
}

func (s *packageService) GetPackageByID(id int64) (*models.Package, error) {
	pkg, err := s.packageRepo.GetPackageByID(s.db, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("package %d", id))
	}
	return pkg, nil
}

// UpdatePackage allows renames: members and payments reference the id.
func (s *packageService) UpdatePackage(id int64, req PackageRequest) (*models.Package, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	pkg, err := s.packageRepo.GetPackageByID(tx, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("package %d", id))
	}
	req.apply(pkg)

	if err := s.packageRepo.UpdatePackage(tx, pkg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: package %q", ErrDuplicateName, pkg.Name)
		}
		return nil, mapNotFound(err, fmt.Sprintf("package %d", id))
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit package update: %w", err)
	}
	return pkg, nil
}

// DeletePackage refuses while any member is enrolled on the package.
func (s *packageService) DeletePackage(id int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.packageRepo.GetPackageByID(tx, id); err != nil {
		return mapNotFound(err, fmt.Sprintf("package %d", id))
	}
	n, err := s.memberRepo.CountMembersOnPackage(tx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: package %d has %d member(s)", ErrInUse, id, n)
	}
	if err := s.packageRepo.DeletePackage(tx, id); err != nil {
		return mapNotFound(err, fmt.Sprintf("package %d", id))
	}
	return tx.Commit()
}

package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// PackageRepository defines database operations on membership packages.
type PackageRepository interface {
	NextPackageID(executor SQLExecutor) (int64, error)
	CreatePackage(executor SQLExecutor, pkg *models.Package) error
	GetPackageByID(executor SQLExecutor, id int64) (*models.Package, error)
	GetPackages(executor SQLExecutor) ([]models.Package, error)
	UpdatePackage(executor SQLExecutor, pkg *models.Package) error
	DeletePackage(executor SQLExecutor, id int64) error
	CountPackages(executor SQLExecutor) (int, error)
	ListAll(executor SQLExecutor) ([]models.Package, error)
}

type packageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository creates a new instance of PackageRepository.
func NewPackageRepository(db *sqlx.DB) PackageRepository {
	return &packageRepository{db: db}
}

const packageColumns = `id, name, price, duration_months, trainers, cardio_access, sauna_access, steam_room, timings`

func (r *packageRepository) NextPackageID(executor SQLExecutor) (int64, error) {
	return nextSequenceID(executor, "packages", "id", 1)
}

func (r *packageRepository) CreatePackage(executor SQLExecutor, pkg *models.Package) error {
	query := `INSERT INTO packages (` + packageColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := executor.Exec(query,
		pkg.ID, pkg.Name, pkg.Price, pkg.DurationMonths,
		pkg.Trainers, pkg.CardioAccess, pkg.SaunaAccess, pkg.SteamRoom, pkg.Timings,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating package %q", pkg.Name))
	}
	return nil
}

func (r *packageRepository) GetPackageByID(executor SQLExecutor, id int64) (*models.Package, error) {
	pkg := &models.Package{}
	if err := executor.Get(pkg, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id); err != nil {
		return nil, wrapGetErr(err, fmt.Sprintf("getting package %d", id))
	}
	return pkg, nil
}

func (r *packageRepository) GetPackages(executor SQLExecutor) ([]models.Package, error) {
	pkgs := []models.Package{}
	if err := executor.Select(&pkgs, `SELECT `+packageColumns+` FROM packages ORDER BY name`); err != nil {
		return nil, fmt.Errorf("%w: listing packages: %v", ErrDatabaseError, err)
	}
	return pkgs, nil
}

func (r *packageRepository) UpdatePackage(executor SQLExecutor, pkg *models.Package) error {
	query := `UPDATE packages
	          SET name = $1, price = $2, duration_months = $3, trainers = $4, cardio_access = $5,
	              sauna_access = $6, steam_room = $7, timings = $8
	          WHERE id = $9`
	res, err := executor.Exec(query,
		pkg.Name, pkg.Price, pkg.DurationMonths, pkg.Trainers, pkg.CardioAccess,
		pkg.SaunaAccess, pkg.SteamRoom, pkg.Timings, pkg.ID,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("updating package %d", pkg.ID))
	}
	return requireAffected(res, "updating package")
}

func (r *packageRepository) DeletePackage(executor SQLExecutor, id int64) error {
	res, err := executor.Exec(`DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting package %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(res, "deleting package")
}

func (r *packageRepository) CountPackages(executor SQLExecutor) (int, error) {
	var n int
	if err := executor.Get(&n, `SELECT COUNT(*) FROM packages`); err != nil {
		return 0, fmt.Errorf("%w: counting packages: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *packageRepository) ListAll(executor SQLExecutor) ([]models.Package, error) {
	return r.GetPackages(executor)
}

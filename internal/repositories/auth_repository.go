package repositories

import (
	"fmt"
	"strings"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// AuthRepository defines database operations on admin accounts.
type AuthRepository interface {
	CreateAdmin(executor SQLExecutor, admin *models.AdminAccount) error
	FindAdminByUsername(executor SQLExecutor, username string) (*models.AdminAccount, error)
	UpdateAdminPassword(executor SQLExecutor, username, passwordHash string) error
	CountAdmins(executor SQLExecutor) (int, error)
	ListAll(executor SQLExecutor) ([]models.AdminAccount, error)
}

type authRepository struct {
	db *sqlx.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sqlx.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateAdmin stores the username lower-cased; admin lookups are case-insensitive.
func (r *authRepository) CreateAdmin(executor SQLExecutor, admin *models.AdminAccount) error {
	admin.Username = strings.ToLower(strings.TrimSpace(admin.Username))
	query := `INSERT INTO admin_accounts (username, password_hash, name, created_at)
	          VALUES ($1, $2, $3, $4)`
	if _, err := executor.Exec(query, admin.Username, admin.PasswordHash, admin.Name, admin.CreatedAt); err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating admin %q", admin.Username))
	}
	return nil
}

func (r *authRepository) FindAdminByUsername(executor SQLExecutor, username string) (*models.AdminAccount, error) {
	admin := &models.AdminAccount{}
	query := `SELECT username, password_hash, name, created_at
	          FROM admin_accounts
	          WHERE username = $1`
	if err := executor.Get(admin, query, strings.ToLower(strings.TrimSpace(username))); err != nil {
		return nil, wrapGetErr(err, "finding admin by username")
	}
	return admin, nil
}

func (r *authRepository) UpdateAdminPassword(executor SQLExecutor, username, passwordHash string) error {
	res, err := executor.Exec(`UPDATE admin_accounts SET password_hash = $1 WHERE username = $2`,
		passwordHash, strings.ToLower(username))
	if err != nil {
		return fmt.Errorf("%w: updating admin password: %v", ErrDatabaseError, err)
	}
	return requireAffected(res, "updating admin password")
}

func (r *authRepository) CountAdmins(executor SQLExecutor) (int, error) {
	var n int
	if err := executor.Get(&n, `SELECT COUNT(*) FROM admin_accounts`); err != nil {
		return 0, fmt.Errorf("%w: counting admins: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *authRepository) ListAll(executor SQLExecutor) ([]models.AdminAccount, error) {
	admins := []models.AdminAccount{}
	query := `SELECT username, password_hash, name, created_at FROM admin_accounts ORDER BY username`
	if err := executor.Select(&admins, query); err != nil {
		return nil, fmt.Errorf("%w: listing admins: %v", ErrDatabaseError, err)
	}
	return admins, nil
}

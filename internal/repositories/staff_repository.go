package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// StaffRepository defines database operations on staff accounts.
type StaffRepository interface {
	CreateStaff(executor SQLExecutor, staff *models.StaffAccount) error
	GetStaffByUsername(executor SQLExecutor, username string) (*models.StaffAccount, error)
	GetStaff(executor SQLExecutor, search string) ([]models.StaffAccount, error)
	UpdateStaff(executor SQLExecutor, staff *models.StaffAccount) error
	UpdateStaffPassword(executor SQLExecutor, username, passwordHash, updatedAt string) error
	DeleteStaff(executor SQLExecutor, username string) error
	CountStaff(executor SQLExecutor) (int, error)
	ListAll(executor SQLExecutor) ([]models.StaffAccount, error)
}

type staffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sqlx.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `username, password_hash, name, phone, address, dob, gender, salary,
	next_of_kin_name, next_of_kin_phone, privileges, staff_type, created_at, updated_at`

func (r *staffRepository) CreateStaff(executor SQLExecutor, staff *models.StaffAccount) error {
	query := `INSERT INTO staff_accounts (` + staffColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := executor.Exec(query,
		staff.Username, staff.PasswordHash, staff.Name, staff.Phone, staff.Address, staff.DOB, staff.Gender,
		staff.Salary, staff.NextOfKinName, staff.NextOfKinPhone, staff.Privileges, staff.StaffType,
		staff.CreatedAt, staff.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating staff account %q", staff.Username))
	}
	return nil
}

func (r *staffRepository) GetStaffByUsername(executor SQLExecutor, username string) (*models.StaffAccount, error) {
	staff := &models.StaffAccount{}
	query := `SELECT ` + staffColumns + ` FROM staff_accounts WHERE username = $1`
	if err := executor.Get(staff, query, username); err != nil {
		return nil, wrapGetErr(err, "getting staff by username")
	}
	return staff, nil
}

func (r *staffRepository) GetStaff(executor SQLExecutor, search string) ([]models.StaffAccount, error) {
	staff := []models.StaffAccount{}
	query := `SELECT ` + staffColumns + ` FROM staff_accounts`
	var args []interface{}
	if search != "" {
		query += ` WHERE LOWER(name) LIKE $1 OR LOWER(username) LIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY username`
	if err := executor.Select(&staff, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing staff: %v", ErrDatabaseError, err)
	}
	return staff, nil
}

// UpdateStaff replaces every mutable field. The username and password are untouched.
func (r *staffRepository) UpdateStaff(executor SQLExecutor, staff *models.StaffAccount) error {
	query := `UPDATE staff_accounts
	          SET name = $1, phone = $2, address = $3, dob = $4, gender = $5, salary = $6,
	              next_of_kin_name = $7, next_of_kin_phone = $8, privileges = $9, staff_type = $10,
	              updated_at = $11
	          WHERE username = $12`
	res, err := executor.Exec(query,
		staff.Name, staff.Phone, staff.Address, staff.DOB, staff.Gender, staff.Salary,
		staff.NextOfKinName, staff.NextOfKinPhone, staff.Privileges, staff.StaffType,
		staff.UpdatedAt, staff.Username,
	)
	if err != nil {
		return fmt.Errorf("%w: updating staff %q: %v", ErrDatabaseError, staff.Username, err)
	}
	return requireAffected(res, "updating staff")
}

func (r *staffRepository) UpdateStaffPassword(executor SQLExecutor, username, passwordHash, updatedAt string) error {
	res, err := executor.Exec(`UPDATE staff_accounts SET password_hash = $1, updated_at = $2 WHERE username = $3`,
		passwordHash, updatedAt, username)
	if err != nil {
		return fmt.Errorf("%w: updating staff password: %v", ErrDatabaseError, err)
	}
	return requireAffected(res, "updating staff password")
}

func (r *staffRepository) DeleteStaff(executor SQLExecutor, username string) error {
	res, err := executor.Exec(`DELETE FROM staff_accounts WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("%w: deleting staff %q: %v", ErrDatabaseError, username, err)
	}
	return requireAffected(res, "deleting staff")
}

func (r *staffRepository) CountStaff(executor SQLExecutor) (int, error) {
	var n int
	if err := executor.Get(&n, `SELECT COUNT(*) FROM staff_accounts`); err != nil {
		return 0, fmt.Errorf("%w: counting staff: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *staffRepository) ListAll(executor SQLExecutor) ([]models.StaffAccount, error) {
	return r.GetStaff(executor, "")
}

package repositories

import (
	"fmt"
	"strings"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// MemberRepository defines database operations on members.
type MemberRepository interface {
	NextMemberID(executor SQLExecutor) (int64, error)
	CreateMember(executor SQLExecutor, member *models.Member) error
	GetMemberByID(executor SQLExecutor, memberID int64) (*models.Member, error)
	GetMembers(executor SQLExecutor, filters models.MemberFilters) ([]models.Member, error)
	UpdateMember(executor SQLExecutor, member *models.Member) error
	MarkPaid(executor SQLExecutor, memberID int64, expiryDate *string, updatedAt string) error
	DeleteMember(executor SQLExecutor, memberID int64) error
	CountMembers(executor SQLExecutor) (int, error)
	CountMembersOnPackage(executor SQLExecutor, packageID int64) (int, error)
	CountByPackage(executor SQLExecutor) ([]models.PackageMemberCount, error)
	ListAll(executor SQLExecutor) ([]models.Member, error)
}

type memberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberSelect = `SELECT m.member_id, m.name, m.phone, m.address, m.dob, m.gender,
	m.next_of_kin_name, m.next_of_kin_phone, m.medical_conditions, m.weight, m.height,
	m.package_id, COALESCE(p.name, '') AS package_name, m.join_date, m.expiry_date,
	m.status, m.payment_status, m.created_at, m.updated_at
	FROM members m
	LEFT JOIN packages p ON p.id = m.package_id`

func (r *memberRepository) NextMemberID(executor SQLExecutor) (int64, error) {
	return nextSequenceID(executor, "members", "member_id", models.FirstMemberID)
}

func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) error {
	query := `INSERT INTO members
	            (member_id, name, phone, address, dob, gender, next_of_kin_name, next_of_kin_phone,
	             medical_conditions, weight, height, package_id, join_date, expiry_date,
	             status, payment_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := executor.Exec(query,
		member.MemberID, member.Name, member.Phone, member.Address, member.DOB, member.Gender,
		member.NextOfKinName, member.NextOfKinPhone, member.MedicalConditions, member.Weight, member.Height,
		member.PackageID, member.JoinDate, member.ExpiryDate, member.Status, member.PaymentStatus,
		member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating member %d", member.MemberID))
	}
	return nil
}

func (r *memberRepository) GetMemberByID(executor SQLExecutor, memberID int64) (*models.Member, error) {
	member := &models.Member{}
	if err := executor.Get(member, memberSelect+` WHERE m.member_id = $1`, memberID); err != nil {
		return nil, wrapGetErr(err, fmt.Sprintf("getting member %d", memberID))
	}
	return member, nil
}

func (r *memberRepository) GetMembers(executor SQLExecutor, filters models.MemberFilters) ([]models.Member, error) {
	members := []models.Member{}

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(m.name) LIKE $%d OR m.phone LIKE $%d)", argCounter, argCounter))
		args = append(args, likePattern(filters.Search))
		argCounter++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", argCounter))
		args = append(args, filters.Status)
	}

	query := memberSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.member_id"

	if err := executor.Select(&members, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing members: %v", ErrDatabaseError, err)
	}
	return members, nil
}

// UpdateMember replaces the editable fields. Payment state is changed only by MarkPaid.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members
	          SET name = $1, phone = $2, address = $3, dob = $4, gender = $5,
	              next_of_kin_name = $6, next_of_kin_phone = $7, medical_conditions = $8,
	              weight = $9, height = $10, package_id = $11, status = $12, updated_at = $13
	          WHERE member_id = $14`
	res, err := executor.Exec(query,
		member.Name, member.Phone, member.Address, member.DOB, member.Gender,
		member.NextOfKinName, member.NextOfKinPhone, member.MedicalConditions,
		member.Weight, member.Height, member.PackageID, member.Status, member.UpdatedAt,
		member.MemberID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating member %d: %v", ErrDatabaseError, member.MemberID, err)
	}
	return requireAffected(res, "updating member")
}

func (r *memberRepository) MarkPaid(executor SQLExecutor, memberID int64, expiryDate *string, updatedAt string) error {
	res, err := executor.Exec(`UPDATE members SET payment_status = $1, expiry_date = $2, updated_at = $3 WHERE member_id = $4`,
		models.PaymentStatusPaid, expiryDate, updatedAt, memberID)
	if err != nil {
		return fmt.Errorf("%w: marking member %d paid: %v", ErrDatabaseError, memberID, err)
	}
	return requireAffected(res, "marking member paid")
}

func (r *memberRepository) DeleteMember(executor SQLExecutor, memberID int64) error {
	res, err := executor.Exec(`DELETE FROM members WHERE member_id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("%w: deleting member %d: %v", ErrDatabaseError, memberID, err)
	}
	return requireAffected(res, "deleting member")
}

func (r *memberRepository) CountMembers(executor SQLExecutor) (int, error) {
	var n int
	if err := executor.Get(&n, `SELECT COUNT(*) FROM members`); err != nil {
		return 0, fmt.Errorf("%w: counting members: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *memberRepository) CountMembersOnPackage(executor SQLExecutor, packageID int64) (int, error) {
	var n int
	if err := executor.Get(&n, `SELECT COUNT(*) FROM members WHERE package_id = $1`, packageID); err != nil {
		return 0, fmt.Errorf("%w: counting members on package %d: %v", ErrDatabaseError, packageID, err)
	}
	return n, nil
}

// CountByPackage includes packages nobody is enrolled on.
func (r *memberRepository) CountByPackage(executor SQLExecutor) ([]models.PackageMemberCount, error) {
	counts := []models.PackageMemberCount{}
	query := `SELECT p.id AS package_id, p.name AS package_name, COUNT(m.member_id) AS members
	          FROM packages p
	          LEFT JOIN members m ON m.package_id = p.id
	          GROUP BY p.id, p.name
	          ORDER BY p.name`
	if err := executor.Select(&counts, query); err != nil {
		return nil, fmt.Errorf("%w: counting members by package: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

func (r *memberRepository) ListAll(executor SQLExecutor) ([]models.Member, error) {
	return r.GetMembers(executor, models.MemberFilters{})
}

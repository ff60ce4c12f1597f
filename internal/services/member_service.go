package services

import (
	"fmt"
	"strings"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// MemberRequest DTO, used for enrollment and edits.
type MemberRequest struct {
	Name              string `json:"name" binding:"required,notblank"`
	PackageID         int64  `json:"package_id" binding:"required"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	DOB               string `json:"dob"`
	Gender            string `json:"gender"`
	NextOfKinName     string `json:"next_of_kin_name"`
	NextOfKinPhone    string `json:"next_of_kin_phone"`
	MedicalConditions string `json:"medical_conditions"`
	Weight            string `json:"weight"`
	Height            string `json:"height"`
	// Status is only honoured on edit; enrollment always starts Active.
	Status string `json:"status"`
}

// --- MemberService Interface ---
type MemberService interface {
	EnrollMember(req MemberRequest) (*models.Member, error)
	GetMembers(filters models.MemberFilters) ([]models.Member, error)
	GetMemberByID(memberID int64) (*models.Member, error)
	UpdateMember(memberID int64, req MemberRequest) (*models.Member, error)
	DeleteMember(memberID int64) error
}

type memberService struct {
	memberRepo  repositories.MemberRepository
	packageRepo repositories.PackageRepository
	db          *sqlx.DB
	clock       Clock
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(memberRepo repositories.MemberRepository, packageRepo repositories.PackageRepository, db *sqlx.DB, clock Clock) MemberService {
	return &memberService{memberRepo: memberRepo, packageRepo: packageRepo, db: db, clock: clock}
}

func (req MemberRequest) apply(m *models.Member) {
	m.Name = strings.TrimSpace(req.Name)
	m.PackageID = req.PackageID
	m.Phone = strings.TrimSpace(req.Phone)
	m.Address = strings.TrimSpace(req.Address)
	m.DOB = strings.TrimSpace(req.DOB)
	m.Gender = strings.TrimSpace(req.Gender)
	m.NextOfKinName = strings.TrimSpace(req.NextOfKinName)
	m.NextOfKinPhone = strings.TrimSpace(req.NextOfKinPhone)
	m.MedicalConditions = strings.TrimSpace(req.MedicalConditions)
	m.Weight = strings.TrimSpace(req.Weight)
	m.Height = strings.TrimSpace(req.Height)
}

// EnrollMember assigns the next member id (from 1001) and starts the member
// Active with payment Pending.
func (s *memberService) EnrollMember(req MemberRequest) (*models.Member, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	pkg, err := s.packageRepo.GetPackageByID(tx, req.PackageID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("package %d", req.PackageID))
	}

	id, err := s.memberRepo.NextMemberID(tx)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	member := &models.Member{
		MemberID:      id,
		JoinDate:      now.Format(models.DateLayout),
		Status:        models.MemberStatusActive,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now.Format(models.DateTimeLayout),
		UpdatedAt:     now.Format(models.DateTimeLayout),
	}
	req.apply(member)
	member.PackageName = pkg.Name

	if err := s.memberRepo.CreateMember(tx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member: %w", err)
	}

	utils.LogInfo("Member enrolled", map[string]interface{}{"member_id": member.MemberID, "package": pkg.Name})
	return member, nil
}

func (s *memberService) GetMembers(filters models.MemberFilters) ([]models.Member, error) {
	members, err := s.memberRepo.GetMembers(s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return members, nil
}

func (s *memberService) GetMemberByID(memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(s.db, memberID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", memberID))
	}
	return member, nil
}

func (s *memberService) UpdateMember(memberID int64, req MemberRequest) (*models.Member, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}
	status := strings.TrimSpace(req.Status)
	if status != "" && status != models.MemberStatusActive && status != models.MemberStatusInactive {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrValidation, models.MemberStatusActive, models.MemberStatusInactive)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	member, err := s.memberRepo.GetMemberByID(tx, memberID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", memberID))
	}
	pkg, err := s.packageRepo.GetPackageByID(tx, req.PackageID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("package %d", req.PackageID))
	}

	req.apply(member)
	member.PackageName = pkg.Name
	if status != "" {
		member.Status = status
	}
	member.UpdatedAt = s.clock.now().Format(models.DateTimeLayout)

	if err := s.memberRepo.UpdateMember(tx, member); err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", memberID))
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member update: %w", err)
	}
	return member, nil
}

func (s *memberService) DeleteMember(memberID int64) error {
	if err := s.memberRepo.DeleteMember(s.db, memberID); err != nil {
		return mapNotFound(err, fmt.Sprintf("member %d", memberID))
	}
	return nil
}

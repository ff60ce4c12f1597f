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

var hundred = decimal.NewFromInt(100)

// RecordPaymentRequest DTO. AdditionalCost and DiscountPercent default to zero.
type RecordPaymentRequest struct {
	MemberID        int64           `json:"member_id" binding:"required"`
	AdditionalCost  decimal.Decimal `json:"additional_cost"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Comments        string          `json:"comments"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	RecordPayment(principal access.Principal, req RecordPaymentRequest) (*models.Payment, error)
	GetPayments(filters models.PaymentFilters) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	packageRepo repositories.PackageRepository
	db          *sqlx.DB
	clock       Clock
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	packageRepo repositories.PackageRepository,
	db *sqlx.DB,
	clock Clock,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		packageRepo: packageRepo,
		db:          db,
		clock:       clock,
	}
}

// PaymentTotal applies the discount to package price plus additional cost.
func PaymentTotal(price, additionalCost, discountPercent decimal.Decimal) decimal.Decimal {
	subtotal := price.Add(additionalCost)
	discount := subtotal.Mul(discountPercent).Div(hundred)
	return subtotal.Sub(discount).Round(2)
}

// RecordPayment appends a Paid ledger entry and marks the member paid in the
// same transaction. The membership then runs for the package duration from
// the payment date.
func (s *paymentService) RecordPayment(principal access.Principal, req RecordPaymentRequest) (*models.Payment, error) {
	if req.AdditionalCost.IsNegative() {
		return nil, fmt.Errorf("%w: additional cost cannot be negative", ErrValidation)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: discount must be between 0 and 100 percent", ErrValidation)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	member, err := s.memberRepo.GetMemberByID(tx, req.MemberID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", req.MemberID))
	}
	pkg, err := s.packageRepo.GetPackageByID(tx, member.PackageID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: package %d of member %d: %w", ErrInvalidState, member.PackageID, member.MemberID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	id, err := s.paymentRepo.NextPaymentID(tx)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	payment := &models.Payment{
		ID:              id,
		MemberID:        member.MemberID,
		MemberName:      member.Name,
		PackageID:       pkg.ID,
		PackageName:     pkg.Name,
		BaseAmount:      pkg.Price,
		AdditionalCost:  req.AdditionalCost,
		DiscountPercent: req.DiscountPercent,
		Amount:          PaymentTotal(pkg.Price, req.AdditionalCost, req.DiscountPercent),
		PaymentDate:     now.Format(models.DateLayout),
		Status:          models.PaymentStatusPaid,
		Comments:        strings.TrimSpace(req.Comments),
		RecordedBy:      principal.Username,
	}
	if err := s.paymentRepo.CreatePayment(tx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	expiry := utils.NewNullString(now.AddDate(0, pkg.DurationMonths, 0).Format(models.DateLayout))
	if err := s.memberRepo.MarkPaid(tx, member.MemberID, expiry, now.Format(models.DateTimeLayout)); err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", member.MemberID))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	utils.LogInfo("Payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
		"member_id":  payment.MemberID,
		"amount":     payment.Amount.StringFixed(2),
		"by":         principal.Username,
	})
	return payment, nil
}

func (s *paymentService) GetPayments(filters models.PaymentFilters) ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPayments(s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

package repositories

import (
	"fmt"
	"strings"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines database operations on the payment ledger.
// The ledger is append-only.
type PaymentRepository interface {
	NextPaymentID(executor SQLExecutor) (int64, error)
	CreatePayment(executor SQLExecutor, payment *models.Payment) error
	GetPayments(executor SQLExecutor, filters models.PaymentFilters) ([]models.Payment, error)
	SumForPeriod(executor SQLExecutor, datePrefix string) (decimal.Decimal, error)
	RevenueByPackage(executor SQLExecutor) ([]models.PackageRevenue, error)
	ListAll(executor SQLExecutor) ([]models.Payment, error)
}

type paymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, member_id, member_name, package_id, package_name, base_amount, additional_cost,
	discount_percent, amount, payment_date, status, comments, recorded_by`

func (r *paymentRepository) NextPaymentID(executor SQLExecutor) (int64, error) {
	return nextID(executor, "payments", "id", 1)
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := executor.Exec(query,
		payment.ID, payment.MemberID, payment.MemberName, payment.PackageID, payment.PackageName,
		payment.BaseAmount, payment.AdditionalCost, payment.DiscountPercent, payment.Amount,
		payment.PaymentDate, payment.Status, payment.Comments, payment.RecordedBy,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating payment for member %d", payment.MemberID))
	}
	return nil
}

func (r *paymentRepository) GetPayments(executor SQLExecutor, filters models.PaymentFilters) ([]models.Payment, error) {
	payments := []models.Payment{}

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.MemberID != nil {
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", argCounter))
		args = append(args, *filters.MemberID)
		argCounter++
	}
	if filters.Month != "" {
		conditions = append(conditions, fmt.Sprintf("payment_date LIKE $%d", argCounter))
		args = append(args, filters.Month+"%")
	}

	query := `SELECT ` + paymentColumns + ` FROM payments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY payment_date DESC, id DESC"

	if err := executor.Select(&payments, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing payments: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

// SumForPeriod totals payments whose date starts with datePrefix (YYYY-MM or YYYY-MM-DD).
func (r *paymentRepository) SumForPeriod(executor SQLExecutor, datePrefix string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date LIKE $1`
	if err := executor.Get(&total, query, datePrefix+"%"); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing payments for %s: %v", ErrDatabaseError, datePrefix, err)
	}
	return total, nil
}

func (r *paymentRepository) RevenueByPackage(executor SQLExecutor) ([]models.PackageRevenue, error) {
	revenue := []models.PackageRevenue{}
	query := `SELECT package_name, COALESCE(SUM(amount), 0) AS revenue
	          FROM payments
	          GROUP BY package_name
	          ORDER BY package_name`
	if err := executor.Select(&revenue, query); err != nil {
		return nil, fmt.Errorf("%w: revenue by package: %v", ErrDatabaseError, err)
	}
	return revenue, nil
}

func (r *paymentRepository) ListAll(executor SQLExecutor) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := executor.Select(&payments, `SELECT `+paymentColumns+` FROM payments ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing payments: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

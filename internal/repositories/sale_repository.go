package repositories

import (
	"fmt"
	"strings"
	"time"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// SaleRepository defines database operations on sales and their line items.
type SaleRepository interface {
	NextSaleID(executor SQLExecutor) (int64, error)
	CreateSale(executor SQLExecutor, sale *models.Sale) error
	GetSaleByID(executor SQLExecutor, saleID int64) (*models.Sale, error)
	GetSales(executor SQLExecutor, filters models.SaleFilters) ([]models.Sale, error)
	GetSaleItemsBySaleID(executor SQLExecutor, saleID int64) ([]models.SaleItem, error)
	GetReportLines(executor SQLExecutor, from, until string) ([]models.SaleReportLine, error)
	ListAll(executor SQLExecutor) ([]models.Sale, error)
	ListAllItems(executor SQLExecutor) ([]models.SaleItem, error)
}

type saleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, sale_date, staff_username, staff_name, total_amount, payment_method`
const saleItemColumns = `sale_id, line_no, product_type, product_id, product_name, quantity, unit_price, line_total`

func (r *saleRepository) NextSaleID(executor SQLExecutor) (int64, error) {
	return nextID(executor, "sales", "id", 1)
}

// CreateSale inserts the sale header and its lines. Run it inside a transaction.
func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := executor.Exec(query,
		sale.ID, sale.SaleDate, sale.StaffUsername, sale.StaffName, sale.TotalAmount, sale.PaymentMethod)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating sale %d", sale.ID))
	}

	itemQuery := `INSERT INTO sale_items (` + saleItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		item.LineNo = i + 1
		_, err := executor.Exec(itemQuery,
			item.SaleID, item.LineNo, item.ProductType, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return wrapWriteErr(err, fmt.Sprintf("creating line %d of sale %d", item.LineNo, sale.ID))
		}
	}
	return nil
}

func (r *saleRepository) GetSaleByID(executor SQLExecutor, saleID int64) (*models.Sale, error) {
	sale := &models.Sale{}
	if err := executor.Get(sale, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, saleID); err != nil {
		return nil, wrapGetErr(err, fmt.Sprintf("getting sale %d", saleID))
	}
	items, err := r.GetSaleItemsBySaleID(executor, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// GetSales returns sale headers, newest first.
func (r *saleRepository) GetSales(executor SQLExecutor, filters models.SaleFilters) ([]models.Sale, error) {
	sales := []models.Sale{}

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("sale_date >= $%d", argCounter))
		args = append(args, filters.StartDate)
		argCounter++
	}
	if filters.EndDate != "" {
		end, err := time.Parse(models.DateLayout, filters.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", ErrDatabaseError, filters.EndDate)
		}
		// sale_date carries a time part, so compare against the following day.
		conditions = append(conditions, fmt.Sprintf("sale_date < $%d", argCounter))
		args = append(args, end.AddDate(0, 0, 1).Format(models.DateLayout))
		argCounter++
	}
	if filters.StaffUsername != "" {
		conditions = append(conditions, fmt.Sprintf("staff_username = $%d", argCounter))
		args = append(args, filters.StaffUsername)
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY sale_date DESC, id DESC"

	if err := executor.Select(&sales, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) GetSaleItemsBySaleID(executor SQLExecutor, saleID int64) ([]models.SaleItem, error) {
	items := []models.SaleItem{}
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY line_no`
	if err := executor.Select(&items, query, saleID); err != nil {
		return nil, fmt.Errorf("%w: getting items of sale %d: %v", ErrDatabaseError, saleID, err)
	}
	return items, nil
}

// GetReportLines flattens sale lines with sale_date in [from, until).
func (r *saleRepository) GetReportLines(executor SQLExecutor, from, until string) ([]models.SaleReportLine, error) {
	lines := []models.SaleReportLine{}
	query := `SELECT s.id AS sale_id, s.sale_date, s.staff_username, s.staff_name, s.payment_method,
	                 i.product_type, i.product_id, i.product_name, i.quantity, i.unit_price, i.line_total
	          FROM sales s
	          JOIN sale_items i ON i.sale_id = s.id
	          WHERE s.sale_date >= $1 AND s.sale_date < $2
	          ORDER BY s.sale_date, s.id, i.line_no`
	if err := executor.Select(&lines, query, from, until); err != nil {
		return nil, fmt.Errorf("%w: sales report lines: %v", ErrDatabaseError, err)
	}
	return lines, nil
}

func (r *saleRepository) ListAll(executor SQLExecutor) ([]models.Sale, error) {
	sales := []models.Sale{}
	if err := executor.Select(&sales, `SELECT `+saleColumns+` FROM sales ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) ListAllItems(executor SQLExecutor) ([]models.SaleItem, error) {
	items := []models.SaleItem{}
	if err := executor.Select(&items, `SELECT `+saleItemColumns+` FROM sale_items ORDER BY sale_id, line_no`); err != nil {
		return nil, fmt.Errorf("%w: listing sale items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

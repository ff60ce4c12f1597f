package services

import (
	"fmt"
	"math"
	"strings"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// --- Data Transfer Objects (DTOs) ---

// SaleLineRequest references either an inventory item or a custom product.
type SaleLineRequest struct {
	ProductType string `json:"product_type" binding:"required,oneof=inventory custom"`
	ProductID   int64  `json:"product_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0,max=1000000"`
}

// RecordSaleRequest DTO
type RecordSaleRequest struct {
	Items         []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
}

// --- SaleService Interface ---
type SaleService interface {
	RecordSale(principal access.Principal, req RecordSaleRequest) (*models.Sale, error)
	GetSales(filters models.SaleFilters) ([]models.Sale, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
}

type saleService struct {
	saleRepo      repositories.SaleRepository
	inventoryRepo repositories.InventoryRepository
	productRepo   repositories.CustomProductRepository
	movementRepo  repositories.StockMovementRepository
	db            *sqlx.DB
	clock         Clock
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	saleRepo repositories.SaleRepository,
	inventoryRepo repositories.InventoryRepository,
	productRepo repositories.CustomProductRepository,
	movementRepo repositories.StockMovementRepository,
	db *sqlx.DB,
	clock Clock,
) SaleService {
	return &saleService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		movementRepo:  movementRepo,
		db:            db,
		clock:         clock,
	}
}

func (req RecordSaleRequest) validate() error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: a sale needs at least one item", ErrValidation)
	}
	if utils.IsEmpty(req.PaymentMethod) {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	for i, line := range req.Items {
		if line.Quantity <= 0 || line.Quantity > models.MaxServings {
			return fmt.Errorf("%w: quantity on line %d must be between 1 and %d", ErrValidation, i+1, models.MaxServings)
		}
		if line.ProductType != models.ProductTypeInventory && line.ProductType != models.ProductTypeCustom {
			return fmt.Errorf("%w: unknown product type %q on line %d", ErrValidation, line.ProductType, i+1)
		}
	}
	return nil
}

// consumption accumulates servings needed per inventory item, keeping the
// order in which items were first referenced.
type consumption struct {
	order    []int64
	required map[int64]int
	items    map[int64]*models.InventoryItem
}

func newConsumption() *consumption {
	return &consumption{required: make(map[int64]int), items: make(map[int64]*models.InventoryItem)}
}

func (c *consumption) add(item *models.InventoryItem, servings int) error {
	total, ok := addServings(c.required[item.ID], servings)
	if !ok {
		return fmt.Errorf("%w: quantity of %s is too large", ErrValidation, item.StockType)
	}
	if _, seen := c.required[item.ID]; !seen {
		c.order = append(c.order, item.ID)
		c.items[item.ID] = item
	}
	c.required[item.ID] = total
	return nil
}

// addServings and mulServings report false instead of wrapping around.
// Both expect non-negative operands.
func addServings(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

func mulServings(a, b int) (int, bool) {
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// RecordSale fulfils every line or none. Custom products are expanded into
// their ingredients, consumption is summed per inventory item, all items are
// checked before any stock moves, and the decrements plus the sale are
// committed in one transaction.
func (s *saleService) RecordSale(principal access.Principal, req RecordSaleRequest) (*models.Sale, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	need := newConsumption()
	lookup := func(id int64) (*models.InventoryItem, error) {
		if item, ok := need.items[id]; ok {
			return item, nil
		}
		item, err := s.inventoryRepo.GetItemByID(tx, id)
		if err != nil {
			return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
		}
		return item, nil
	}

	total := decimal.Zero
	lines := make([]models.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		qty := decimal.NewFromInt(int64(line.Quantity))
		saleItem := models.SaleItem{
			ProductType: line.ProductType,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
		}

		switch line.ProductType {
		case models.ProductTypeInventory:
			item, err := lookup(line.ProductID)
			if err != nil {
				return nil, err
			}
			if err := need.add(item, line.Quantity); err != nil {
				return nil, err
			}
			saleItem.ProductName = item.StockType
			saleItem.UnitPrice = item.SalePrice()

		case models.ProductTypeCustom:
			product, err := s.productRepo.GetProductByID(tx, line.ProductID)
			if err != nil {
				return nil, mapNotFound(err, fmt.Sprintf("custom product %d", line.ProductID))
			}
			for _, ing := range product.Ingredients {
				item, err := lookup(ing.InventoryItemID)
				if err != nil {
					return nil, fmt.Errorf("ingredient of %s: %w", product.ProductName, err)
				}
				servings, ok := mulServings(ing.Quantity, line.Quantity)
				if !ok {
					return nil, fmt.Errorf("%w: quantity of %s is too large", ErrValidation, product.ProductName)
				}
				if err := need.add(item, servings); err != nil {
					return nil, err
				}
			}
			saleItem.ProductName = product.ProductName
			saleItem.UnitPrice = product.FinalPrice
		}

		saleItem.LineTotal = saleItem.UnitPrice.Mul(qty)
		total = total.Add(saleItem.LineTotal)
		lines = append(lines, saleItem)
	}

	for _, id := range need.order {
		item := need.items[id]
		if item.Servings < need.required[id] {
			stockErr := &InsufficientStockError{
				ItemID:    id,
				ItemName:  item.StockType,
				Requested: need.required[id],
				Available: item.Servings,
			}
			utils.LogWarn(stockErr, "Sale rejected")
			return nil, stockErr
		}
	}

	now := s.clock.now()
	for _, id := range need.order {
		ok, err := s.inventoryRepo.DecrementServings(tx, id, need.required[id])
		if err != nil {
			return nil, fmt.Errorf("failed to update stock for item %d: %w", id, err)
		}
		if !ok {
			// Someone else took the stock between the check and the update.
			current, readErr := s.inventoryRepo.GetItemByID(tx, id)
			available := 0
			if readErr == nil {
				available = current.Servings
			}
			return nil, &InsufficientStockError{
				ItemID:    id,
				ItemName:  need.items[id].StockType,
				Requested: need.required[id],
				Available: available,
			}
		}
	}

	saleID, err := s.saleRepo.NextSaleID(tx)
	if err != nil {
		return nil, err
	}
	sale := &models.Sale{
		ID:            saleID,
		SaleDate:      now.Format(models.DateTimeLayout),
		StaffUsername: principal.Username,
		StaffName:     principal.Name,
		TotalAmount:   total,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Items:         lines,
	}
	if err := s.saleRepo.CreateSale(tx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	for _, id := range need.order {
		movement := &models.StockMovement{
			InventoryItemID: id,
			MovementType:    models.MovementTypeSale,
			QuantityChanged: -need.required[id],
			Reason:          fmt.Sprintf("Sale %d", saleID),
			RecordedBy:      principal.Username,
			MovementDate:    sale.SaleDate,
		}
		if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
			return nil, fmt.Errorf("failed to record stock movement for item %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	utils.LogInfo("Sale recorded", map[string]interface{}{
		"sale_id": sale.ID,
		"total":   sale.TotalAmount.StringFixed(2),
		"lines":   len(sale.Items),
		"staff":   sale.StaffUsername,
	})
	return sale, nil
}

func (s *saleService) GetSales(filters models.SaleFilters) ([]models.Sale, error) {
	for _, d := range []string{filters.StartDate, filters.EndDate} {
		if d != "" {
			if _, err := parseDate(d); err != nil {
				return nil, err
			}
		}
	}
	sales, err := s.saleRepo.GetSales(s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, nil
}

func (s *saleService) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(s.db, saleID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("sale %d", saleID))
	}
	return sale, nil
}

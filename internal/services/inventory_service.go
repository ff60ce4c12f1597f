package services

import (
	"fmt"
	"strings"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// InventoryItemRequest DTO, used for create and update.
type InventoryItemRequest struct {
	StockType        string          `json:"stock_type" binding:"required,notblank"`
	Servings         int             `json:"servings"`
	CostPerServing   decimal.Decimal `json:"cost_per_serving"`
	ProfitPerServing decimal.Decimal `json:"profit_per_serving"`
	OtherCharges     decimal.Decimal `json:"other_charges"`
}

// RestockRequest DTO
type RestockRequest struct {
	Servings int    `json:"servings" binding:"required,gt=0,max=1000000"`
	Reason   string `json:"reason"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	CreateItem(principal access.Principal, req InventoryItemRequest) (*models.InventoryItem, error)
	GetItems() ([]models.InventoryItem, error)
	GetItemByID(id int64) (*models.InventoryItem, error)
	UpdateItem(principal access.Principal, id int64, req InventoryItemRequest) (*models.InventoryItem, error)
	Restock(principal access.Principal, id int64, req RestockRequest) (*models.InventoryItem, error)
	DeleteItem(id int64) error
	GetMovements(itemID *int64) ([]models.StockMovement, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.StockMovementRepository
	db            *sqlx.DB
	clock         Clock
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	inventoryRepo repositories.InventoryRepository,
	movementRepo repositories.StockMovementRepository,
	db *sqlx.DB,
	clock Clock,
) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, movementRepo: movementRepo, db: db, clock: clock}
}

func (req InventoryItemRequest) validate() error {
	if utils.IsEmpty(req.StockType) {
		return fmt.Errorf("%w: stock type cannot be empty", ErrValidation)
	}
	if req.Servings < 0 || req.Servings > models.MaxServings {
		return fmt.Errorf("%w: servings must be between 0 and %d", ErrValidation, models.MaxServings)
	}
	if req.CostPerServing.IsNegative() || req.ProfitPerServing.IsNegative() || req.OtherCharges.IsNegative() {
		return fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}
	return nil
}

func (s *inventoryService) CreateItem(principal access.Principal, req InventoryItemRequest) (*models.InventoryItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.inventoryRepo.NextItemID(tx)
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	item := &models.InventoryItem{
		ID:               id,
		StockType:        strings.TrimSpace(req.StockType),
		Servings:         req.Servings,
		CostPerServing:   req.CostPerServing,
		ProfitPerServing: req.ProfitPerServing,
		OtherCharges:     req.OtherCharges,
		DateAdded:        now.Format(models.DateLayout),
	}
	if err := s.inventoryRepo.CreateItem(tx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	if item.Servings > 0 {
		movement := &models.StockMovement{
			InventoryItemID: item.ID,
			MovementType:    models.MovementTypeInitial,
			QuantityChanged: item.Servings,
			Reason:          "Initial stock",
			RecordedBy:      principal.Username,
			MovementDate:    now.Format(models.DateTimeLayout),
		}
		if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
			return nil, fmt.Errorf("failed to record initial stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItems() ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.GetItems(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryService) GetItemByID(id int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItemByID(s.db, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	return item, nil
}

// UpdateItem edits prices and may correct the servings count directly; a
// correction is logged as an adjustment movement. Custom product costs are
// snapshots and are not recalculated.
func (s *inventoryService) UpdateItem(principal access.Principal, id int64, req InventoryItemRequest) (*models.InventoryItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.inventoryRepo.GetItemByID(tx, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	delta := req.Servings - item.Servings
	item.StockType = strings.TrimSpace(req.StockType)
	item.Servings = req.Servings
	item.CostPerServing = req.CostPerServing
	item.ProfitPerServing = req.ProfitPerServing
	item.OtherCharges = req.OtherCharges

	if err := s.inventoryRepo.UpdateItem(tx, item); err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	if delta != 0 {
		movement := &models.StockMovement{
			InventoryItemID: id,
			MovementType:    models.MovementTypeAdjustment,
			QuantityChanged: delta,
			Reason:          "Manual adjustment",
			RecordedBy:      principal.Username,
			MovementDate:    s.clock.now().Format(models.DateTimeLayout),
		}
		if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
			return nil, fmt.Errorf("failed to record stock adjustment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inventory update: %w", err)
	}
	return item, nil
}

func (s *inventoryService) Restock(principal access.Principal, id int64, req RestockRequest) (*models.InventoryItem, error) {
	if req.Servings <= 0 || req.Servings > models.MaxServings {
		return nil, fmt.Errorf("%w: restock quantity must be between 1 and %d", ErrValidation, models.MaxServings)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := s.inventoryRepo.GetItemByID(tx, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	if current.Servings > models.MaxServings-req.Servings {
		return nil, fmt.Errorf("%w: restocking %d would take %s past %d servings",
			ErrValidation, req.Servings, current.StockType, models.MaxServings)
	}
	if err := s.inventoryRepo.IncrementServings(tx, id, req.Servings); err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Restock"
	}
	movement := &models.StockMovement{
		InventoryItemID: id,
		MovementType:    models.MovementTypeRestock,
		QuantityChanged: req.Servings,
		Reason:          reason,
		RecordedBy:      principal.Username,
		MovementDate:    s.clock.now().Format(models.DateTimeLayout),
	}
	if err := s.movementRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record restock: %w", err)
	}

	item, err := s.inventoryRepo.GetItemByID(tx, id)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit restock: %w", err)
	}
	return item, nil
}

// DeleteItem refuses while a custom product lists the item as an ingredient.
func (s *inventoryService) DeleteItem(id int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	uses, err := s.inventoryRepo.CountIngredientUses(tx, id)
	if err != nil {
		return err
	}
	if uses > 0 {
		return fmt.Errorf("%w: inventory item %d is an ingredient of %d custom product line(s)", ErrInUse, id, uses)
	}
	if err := s.inventoryRepo.DeleteItem(tx, id); err != nil {
		return mapNotFound(err, fmt.Sprintf("inventory item %d", id))
	}
	return tx.Commit()
}

func (s *inventoryService) GetMovements(itemID *int64) ([]models.StockMovement, error) {
	movements, err := s.movementRepo.GetMovements(s.db, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock movements: %w", err)
	}
	return movements, nil
}

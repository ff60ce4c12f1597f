package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// StockMovementRepository records every change to inventory servings.
type StockMovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.StockMovement) error
	GetMovements(executor SQLExecutor, itemID *int64) ([]models.StockMovement, error)
	ListAll(executor SQLExecutor) ([]models.StockMovement, error)
}

type stockMovementRepository struct {
	db *sqlx.DB
}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository(db *sqlx.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

const movementColumns = `id, inventory_item_id, movement_type, quantity_changed, reason, recorded_by, movement_date`

// CreateMovement assigns the next id and inserts the movement.
func (r *stockMovementRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) error {
	id, err := nextID(executor, "stock_movements", "id", 1)
	if err != nil {
		return err
	}
	movement.ID = id

	query := `INSERT INTO stock_movements (` + movementColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = executor.Exec(query,
		movement.ID, movement.InventoryItemID, movement.MovementType, movement.QuantityChanged,
		movement.Reason, movement.RecordedBy, movement.MovementDate,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating stock movement for item %d", movement.InventoryItemID))
	}
	return nil
}

func (r *stockMovementRepository) GetMovements(executor SQLExecutor, itemID *int64) ([]models.StockMovement, error) {
	movements := []models.StockMovement{}
	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	var args []interface{}
	if itemID != nil {
		query += ` WHERE inventory_item_id = $1`
		args = append(args, *itemID)
	}
	query += ` ORDER BY id DESC`
	if err := executor.Select(&movements, query, args...); err != nil {
		return nil, fmt.Errorf("%w: listing stock movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}

func (r *stockMovementRepository) ListAll(executor SQLExecutor) ([]models.StockMovement, error) {
	movements := []models.StockMovement{}
	if err := executor.Select(&movements, `SELECT `+movementColumns+` FROM stock_movements ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing stock movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}

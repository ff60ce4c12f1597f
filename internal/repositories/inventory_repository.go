package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// InventoryRepository defines database operations on stocked items.
type InventoryRepository interface {
	NextItemID(executor SQLExecutor) (int64, error)
	CreateItem(executor SQLExecutor, item *models.InventoryItem) error
	GetItemByID(executor SQLExecutor, id int64) (*models.InventoryItem, error)
	GetItems(executor SQLExecutor) ([]models.InventoryItem, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	DeleteItem(executor SQLExecutor, id int64) error
	// DecrementServings removes a positive quantity only if that much is on hand and
	// reports whether the row was changed.
	DecrementServings(executor SQLExecutor, id int64, quantity int) (bool, error)
	IncrementServings(executor SQLExecutor, id int64, quantity int) error
	CountIngredientUses(executor SQLExecutor, id int64) (int, error)
	ListAll(executor SQLExecutor) ([]models.InventoryItem, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, stock_type, servings, cost_per_serving, profit_per_serving, other_charges, date_added`

func (r *inventoryRepository) NextItemID(executor SQLExecutor) (int64, error) {
	return nextSequenceID(executor, "inventory_items", "id", 1)
}

func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + inventoryColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := executor.Exec(query,
		item.ID, item.StockType, item.Servings, item.CostPerServing, item.ProfitPerServing,
		item.OtherCharges, item.DateAdded,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating inventory item %d", item.ID))
	}
	return nil
}

func (r *inventoryRepository) GetItemByID(executor SQLExecutor, id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	if err := executor.Get(item, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id); err != nil {
		return nil, wrapGetErr(err, fmt.Sprintf("getting inventory item %d", id))
	}
	return item, nil
}

func (r *inventoryRepository) GetItems(executor SQLExecutor) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	if err := executor.Select(&items, `SELECT `+inventoryColumns+` FROM inventory_items ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing inventory: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory_items
	          SET stock_type = $1, servings = $2, cost_per_serving = $3, profit_per_serving = $4, other_charges = $5
	          WHERE id = $6`
	res, err := executor.Exec(query,
		item.StockType, item.Servings, item.CostPerServing, item.ProfitPerServing, item.OtherCharges, item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating inventory item %d: %v", ErrDatabaseError, item.ID, err)
	}
	return requireAffected(res, "updating inventory item")
}

func (r *inventoryRepository) DeleteItem(executor SQLExecutor, id int64) error {
	res, err := executor.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(res, "deleting inventory item")
}

func (r *inventoryRepository) DecrementServings(executor SQLExecutor, id int64, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("%w: decrementing item %d by %d", ErrInvalidQuantity, id, quantity)
	}
	query := `UPDATE inventory_items SET servings = servings - $1 WHERE id = $2 AND servings >= $1`
	res, err := executor.Exec(query, quantity, id)
	if err != nil {
		return false, fmt.Errorf("%w: decrementing stock of item %d: %v", ErrDatabaseError, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: decrementing stock of item %d: %v", ErrDatabaseError, id, err)
	}
	return n == 1, nil
}

func (r *inventoryRepository) IncrementServings(executor SQLExecutor, id int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: restocking item %d by %d", ErrInvalidQuantity, id, quantity)
	}
	res, err := executor.Exec(`UPDATE inventory_items SET servings = servings + $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("%w: restocking item %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(res, "restocking item")
}

func (r *inventoryRepository) CountIngredientUses(executor SQLExecutor, id int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM custom_product_ingredients WHERE inventory_item_id = $1`
	if err := executor.Get(&n, query, id); err != nil {
		return 0, fmt.Errorf("%w: counting ingredient uses of item %d: %v", ErrDatabaseError, id, err)
	}
	return n, nil
}

func (r *inventoryRepository) ListAll(executor SQLExecutor) ([]models.InventoryItem, error) {
	return r.GetItems(executor)
}

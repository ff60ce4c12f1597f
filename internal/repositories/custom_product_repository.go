package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// CustomProductRepository defines database operations on custom products and
// their ingredient lines.
type CustomProductRepository interface {
	NextProductID(executor SQLExecutor) (int64, error)
	CreateProduct(executor SQLExecutor, product *models.CustomProduct) error
	GetProductByID(executor SQLExecutor, productID int64) (*models.CustomProduct, error)
	GetProducts(executor SQLExecutor) ([]models.CustomProduct, error)
	DeleteProduct(executor SQLExecutor, productID int64) error
	ListAll(executor SQLExecutor) ([]models.CustomProduct, error)
	ListAllIngredients(executor SQLExecutor) ([]models.CustomProductIngredient, error)
}

type customProductRepository struct {
	db *sqlx.DB
}

// NewCustomProductRepository creates a new instance of CustomProductRepository.
func NewCustomProductRepository(db *sqlx.DB) CustomProductRepository {
	return &customProductRepository{db: db}
}

const customProductColumns = `product_id, product_name, final_price, total_cost, profit, created_by, created_at`

const ingredientSelect = `SELECT i.product_id, i.line_no, i.inventory_item_id, COALESCE(inv.stock_type, '') AS item_name,
	i.quantity, i.unit_cost
	FROM custom_product_ingredients i
	LEFT JOIN inventory_items inv ON inv.id = i.inventory_item_id`

func (r *customProductRepository) NextProductID(executor SQLExecutor) (int64, error) {
	return nextSequenceID(executor, "custom_products", "product_id", models.FirstCustomProductID)
}

// CreateProduct inserts the product and its ingredient lines in order.
// Run it inside a transaction.
func (r *customProductRepository) CreateProduct(executor SQLExecutor, product *models.CustomProduct) error {
	query := `INSERT INTO custom_products (` + customProductColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := executor.Exec(query,
		product.ProductID, product.ProductName, product.FinalPrice, product.TotalCost, product.Profit,
		product.CreatedBy, product.CreatedAt,
	)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("creating custom product %d", product.ProductID))
	}

	lineQuery := `INSERT INTO custom_product_ingredients (product_id, line_no, inventory_item_id, quantity, unit_cost)
	              VALUES ($1, $2, $3, $4, $5)`
	for i := range product.Ingredients {
		ing := &product.Ingredients[i]
		ing.ProductID = product.ProductID
		ing.LineNo = i + 1
		if _, err := executor.Exec(lineQuery, ing.ProductID, ing.LineNo, ing.InventoryItemID, ing.Quantity, ing.UnitCost); err != nil {
			return wrapWriteErr(err, fmt.Sprintf("creating ingredient %d of product %d", ing.LineNo, product.ProductID))
		}
	}
	return nil
}

func (r *customProductRepository) GetProductByID(executor SQLExecutor, productID int64) (*models.CustomProduct, error) {
	product := &models.CustomProduct{}
	query := `SELECT ` + customProductColumns + ` FROM custom_products WHERE product_id = $1`
	if err := executor.Get(product, query, productID); err != nil {
		return nil, wrapGetErr(err, fmt.Sprintf("getting custom product %d", productID))
	}

	product.Ingredients = []models.CustomProductIngredient{}
	if err := executor.Select(&product.Ingredients, ingredientSelect+` WHERE i.product_id = $1 ORDER BY i.line_no`, productID); err != nil {
		return nil, fmt.Errorf("%w: getting ingredients of product %d: %v", ErrDatabaseError, productID, err)
	}
	return product, nil
}

func (r *customProductRepository) GetProducts(executor SQLExecutor) ([]models.CustomProduct, error) {
	products := []models.CustomProduct{}
	if err := executor.Select(&products, `SELECT `+customProductColumns+` FROM custom_products ORDER BY product_id`); err != nil {
		return nil, fmt.Errorf("%w: listing custom products: %v", ErrDatabaseError, err)
	}

	ingredients, err := r.ListAllIngredients(executor)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[int64][]models.CustomProductIngredient, len(products))
	for _, ing := range ingredients {
		byProduct[ing.ProductID] = append(byProduct[ing.ProductID], ing)
	}
	for i := range products {
		products[i].Ingredients = byProduct[products[i].ProductID]
		if products[i].Ingredients == nil {
			products[i].Ingredients = []models.CustomProductIngredient{}
		}
	}
	return products, nil
}

func (r *customProductRepository) DeleteProduct(executor SQLExecutor, productID int64) error {
	if _, err := executor.Exec(`DELETE FROM custom_product_ingredients WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("%w: deleting ingredients of product %d: %v", ErrDatabaseError, productID, err)
	}
	res, err := executor.Exec(`DELETE FROM custom_products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("%w: deleting custom product %d: %v", ErrDatabaseError, productID, err)
	}
	return requireAffected(res, "deleting custom product")
}

func (r *customProductRepository) ListAll(executor SQLExecutor) ([]models.CustomProduct, error) {
	return r.GetProducts(executor)
}

func (r *customProductRepository) ListAllIngredients(executor SQLExecutor) ([]models.CustomProductIngredient, error) {
	ingredients := []models.CustomProductIngredient{}
	if err := executor.Select(&ingredients, ingredientSelect+` ORDER BY i.product_id, i.line_no`); err != nil {
		return nil, fmt.Errorf("%w: listing ingredients: %v", ErrDatabaseError, err)
	}
	return ingredients, nil
}

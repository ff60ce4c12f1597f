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

// IngredientRequest is one bill-of-materials line.
type IngredientRequest struct {
	InventoryItemID int64 `json:"inventory_item_id" binding:"required"`
	Quantity        int   `json:"quantity" binding:"required,gt=0,max=1000000"`
}

// DefineCustomProductRequest DTO
type DefineCustomProductRequest struct {
	ProductName string              `json:"product_name"`
	Ingredients []IngredientRequest `json:"ingredients" binding:"dive"`
	FinalPrice  decimal.Decimal     `json:"final_price"`
}

// --- CustomProductService Interface ---
type CustomProductService interface {
	DefineCustomProduct(principal access.Principal, req DefineCustomProductRequest) (*models.CustomProduct, error)
	GetCustomProducts() ([]models.CustomProduct, error)
	GetCustomProductByID(productID int64) (*models.CustomProduct, error)
	DeleteCustomProduct(productID int64) error
}

type customProductService struct {
	productRepo   repositories.CustomProductRepository
	inventoryRepo repositories.InventoryRepository
	db            *sqlx.DB
	clock         Clock
}

// NewCustomProductService creates a new instance of CustomProductService.
func NewCustomProductService(
	productRepo repositories.CustomProductRepository,
	inventoryRepo repositories.InventoryRepository,
	db *sqlx.DB,
	clock Clock,
) CustomProductService {
	return &customProductService{productRepo: productRepo, inventoryRepo: inventoryRepo, db: db, clock: clock}
}

// DefineCustomProduct costs the product from current inventory prices.
// A negative profit is allowed.
func (s *customProductService) DefineCustomProduct(principal access.Principal, req DefineCustomProductRequest) (*models.CustomProduct, error) {
	if utils.IsEmpty(req.ProductName) {
		return nil, fmt.Errorf("%w: product name cannot be empty", ErrValidation)
	}
	if len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	}
	if req.FinalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: final price cannot be negative", ErrValidation)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	totalCost := decimal.Zero
	ingredients := make([]models.CustomProductIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Quantity <= 0 || ing.Quantity > models.MaxServings {
			return nil, fmt.Errorf("%w: quantity for item %d must be between 1 and %d", ErrValidation, ing.InventoryItemID, models.MaxServings)
		}
		item, err := s.inventoryRepo.GetItemByID(tx, ing.InventoryItemID)
		if err != nil {
			return nil, mapNotFound(err, fmt.Sprintf("inventory item %d", ing.InventoryItemID))
		}
		totalCost = totalCost.Add(item.CostPerServing.Mul(decimal.NewFromInt(int64(ing.Quantity))))
		ingredients = append(ingredients, models.CustomProductIngredient{
			InventoryItemID: item.ID,
			ItemName:        item.StockType,
			Quantity:        ing.Quantity,
			UnitCost:        item.CostPerServing,
		})
	}

	id, err := s.productRepo.NextProductID(tx)
	if err != nil {
		return nil, err
	}
	product := &models.CustomProduct{
		ProductID:   id,
		ProductName: strings.TrimSpace(req.ProductName),
		FinalPrice:  req.FinalPrice,
		TotalCost:   totalCost,
		Profit:      req.FinalPrice.Sub(totalCost),
		CreatedBy:   principal.Username,
		CreatedAt:   s.clock.now().Format(models.DateTimeLayout),
		Ingredients: ingredients,
	}
	if err := s.productRepo.CreateProduct(tx, product); err != nil {
		return nil, fmt.Errorf("failed to create custom product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit custom product: %w", err)
	}

	utils.LogInfo("Custom product defined", map[string]interface{}{
		"product_id": product.ProductID,
		"total_cost": product.TotalCost.StringFixed(2),
		"profit":     product.Profit.StringFixed(2),
	})
	return product, nil
}

func (s *customProductService) GetCustomProducts() ([]models.CustomProduct, error) {
	products, err := s.productRepo.GetProducts(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom products: %w", err)
	}
	return products, nil
}

func (s *customProductService) GetCustomProductByID(productID int64) (*models.CustomProduct, error) {
	product, err := s.productRepo.GetProductByID(s.db, productID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("custom product %d", productID))
	}
	return product, nil
}

func (s *customProductService) DeleteCustomProduct(productID int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.productRepo.DeleteProduct(tx, productID); err != nil {
		return mapNotFound(err, fmt.Sprintf("custom product %d", productID))
	}
	return tx.Commit()
}

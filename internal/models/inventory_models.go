package models

import "github.com/shopspring/decimal"

// Stock movement types.
const (
	MovementTypeSale       = "sale"
	MovementTypeRestock    = "restock"
	MovementTypeInitial    = "initial"
	MovementTypeAdjustment = "adjustment"
)

// MaxServings bounds a stock level and any single quantity that moves it.
// Request bindings repeat the value as max=1000000.
const MaxServings = 1_000_000

// InventoryItem is a stocked consumable, counted in servings.
type InventoryItem struct {
	ID               int64           `json:"id" db:"id"`
	StockType        string          `json:"stock_type" db:"stock_type"`
	Servings         int             `json:"servings" db:"servings"`
	CostPerServing   decimal.Decimal `json:"cost_per_serving" db:"cost_per_serving"`
	ProfitPerServing decimal.Decimal `json:"profit_per_serving" db:"profit_per_serving"`
	OtherCharges     decimal.Decimal `json:"other_charges" db:"other_charges"`
	DateAdded        string          `json:"date_added" db:"date_added"`
}

// SalePrice is the unit price charged for one serving.
func (i InventoryItem) SalePrice() decimal.Decimal {
	return i.CostPerServing.Add(i.ProfitPerServing)
}

// StockMovement represents a change in stock for an inventory item
type StockMovement struct {
	ID              int64  `json:"id" db:"id"`
	InventoryItemID int64  `json:"inventory_item_id" db:"inventory_item_id"`
	MovementType    string `json:"movement_type" db:"movement_type"`
	QuantityChanged int    `json:"quantity_changed" db:"quantity_changed"`
	Reason          string `json:"reason" db:"reason"`
	RecordedBy      string `json:"recorded_by" db:"recorded_by"`
	MovementDate    string `json:"movement_date" db:"movement_date"`
}

// FirstCustomProductID is assigned when no custom product exists yet.
const FirstCustomProductID int64 = 1001

// CustomProduct is a sellable item made from inventory ingredients.
type CustomProduct struct {
	ProductID   int64                     `json:"product_id" db:"product_id"`
	ProductName string                    `json:"product_name" db:"product_name"`
	FinalPrice  decimal.Decimal           `json:"final_price" db:"final_price"`
	TotalCost   decimal.Decimal           `json:"total_cost" db:"total_cost"`
	Profit      decimal.Decimal           `json:"profit" db:"profit"`
	CreatedBy   string                    `json:"created_by" db:"created_by"`
	CreatedAt   string                    `json:"created_at" db:"created_at"`
	Ingredients []CustomProductIngredient `json:"ingredients"`
}

// CustomProductIngredient is one bill-of-materials line.
type CustomProductIngredient struct {
	ProductID       int64           `json:"-" db:"product_id"`
	LineNo          int             `json:"line_no" db:"line_no"`
	InventoryItemID int64           `json:"inventory_item_id" db:"inventory_item_id"`
	ItemName        string          `json:"item_name,omitempty" db:"item_name"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost" db:"unit_cost"`
}

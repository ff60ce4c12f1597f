package services

import (
	"errors"
	"math"
	"testing"

	"gym_backoffice/internal/models"

	"github.com/shopspring/decimal"
)

func TestRecordSaleRejectsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Protein Shake", 5, "2", "1")

	_, err := env.sales.RecordSale(adminPrincipal, RecordSaleRequest{
		Items:         []SaleLineRequest{{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: 6}},
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected *InsufficientStockError, got %T", err)
	}
	if stockErr.Requested != 6 || stockErr.Available != 5 {
		t.Errorf("requested/available = %d/%d, want 6/5", stockErr.Requested, stockErr.Available)
	}

	if got := env.servings(t, item.ID); got != 5 {
		t.Errorf("servings = %d after rejected sale, want 5", got)
	}
	sales, err := env.sales.GetSales(models.SaleFilters{})
	if err != nil {
		t.Fatalf("GetSales: %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("expected no sales recorded, got %d", len(sales))
	}
	movements, err := env.inventory.GetMovements(&item.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	if len(movements) != 1 || movements[0].MovementType != models.MovementTypeInitial {
		t.Errorf("expected only the initial movement, got %+v", movements)
	}
}

func TestRecordSaleAggregatesCustomProductConsumption(t *testing.T) {
	tests := []struct {
		name        string
		directA     int
		wantErr     error
		wantA       int
		wantB       int
		wantLineCnt int
	}{
		{name: "custom product only", directA: 0, wantA: 4, wantB: 2, wantLineCnt: 1},
		{name: "custom product plus direct line within stock", directA: 4, wantA: 0, wantB: 2, wantLineCnt: 2},
		{name: "combined demand exceeds stock", directA: 5, wantErr: ErrInsufficientStock, wantA: 10, wantB: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			itemA := env.createItem(t, "Oats", 10, "1", "0.5")
			itemB := env.createItem(t, "Banana", 5, "0.5", "0.25")

			product, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
				ProductName: "Power Bowl",
				Ingredients: []IngredientRequest{
					{InventoryItemID: itemA.ID, Quantity: 2},
					{InventoryItemID: itemB.ID, Quantity: 1},
				},
				FinalPrice: decimal.NewFromInt(6),
			})
			if err != nil {
				t.Fatalf("DefineCustomProduct: %v", err)
			}

			lines := []SaleLineRequest{{ProductType: models.ProductTypeCustom, ProductID: product.ProductID, Quantity: 3}}
			if tt.directA > 0 {
				lines = append(lines, SaleLineRequest{ProductType: models.ProductTypeInventory, ProductID: itemA.ID, Quantity: tt.directA})
			}

			sale, err := env.sales.RecordSale(adminPrincipal, RecordSaleRequest{Items: lines, PaymentMethod: "card"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("RecordSale: %v", err)
				}
				if len(sale.Items) != tt.wantLineCnt {
					t.Errorf("sale has %d lines, want %d", len(sale.Items), tt.wantLineCnt)
				}
			}

			if got := env.servings(t, itemA.ID); got != tt.wantA {
				t.Errorf("item A servings = %d, want %d", got, tt.wantA)
			}
			if got := env.servings(t, itemB.ID); got != tt.wantB {
				t.Errorf("item B servings = %d, want %d", got, tt.wantB)
			}
		})
	}
}

func TestRecordSaleUnknownProductLeavesStockUnchanged(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Water", 10, "0.5", "0.5")

	tests := []struct {
		name string
		line SaleLineRequest
	}{
		{name: "unknown inventory item", line: SaleLineRequest{ProductType: models.ProductTypeInventory, ProductID: 999, Quantity: 1}},
		{name: "unknown custom product", line: SaleLineRequest{ProductType: models.ProductTypeCustom, ProductID: 4242, Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sales.RecordSale(adminPrincipal, RecordSaleRequest{
				Items: []SaleLineRequest{
					{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: 2},
					tt.line,
				},
				PaymentMethod: "cash",
			})
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if got := env.servings(t, item.ID); got != 10 {
				t.Errorf("servings = %d, want 10", got)
			}
		})
	}
}

func TestRecordSaleSnapshotsPricesAndLogsMovements(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Energy Bar", 20, "2", "1.5")
	staff := adminPrincipal
	staff.Username = "desk"
	staff.Name = "Front Desk"

	sale, err := env.sales.RecordSale(staff, RecordSaleRequest{
		Items:         []SaleLineRequest{{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: 4}},
		PaymentMethod: " cash ",
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if sale.ID != 1 {
		t.Errorf("first sale id = %d, want 1", sale.ID)
	}
	if sale.PaymentMethod != "cash" {
		t.Errorf("payment method = %q, want trimmed", sale.PaymentMethod)
	}
	if !sale.TotalAmount.Equal(decimal.NewFromInt(14)) {
		t.Errorf("total = %s, want 14", sale.TotalAmount)
	}

	if _, err := env.inventory.UpdateItem(adminPrincipal, item.ID, InventoryItemRequest{
		StockType:        "Energy Bar",
		Servings:         16,
		CostPerServing:   decimal.NewFromInt(5),
		ProfitPerServing: decimal.NewFromInt(5),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	stored, err := env.sales.GetSaleByID(sale.ID)
	if err != nil {
		t.Fatalf("GetSaleByID: %v", err)
	}
	if stored.StaffUsername != "desk" || stored.StaffName != "Front Desk" {
		t.Errorf("staff = %s/%s, want desk/Front Desk", stored.StaffUsername, stored.StaffName)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("stored sale has %d items, want 1", len(stored.Items))
	}
	line := stored.Items[0]
	if !line.UnitPrice.Equal(decimal.RequireFromString("3.5")) || !line.LineTotal.Equal(decimal.NewFromInt(14)) {
		t.Errorf("line price/total = %s/%s, want 3.5/14", line.UnitPrice, line.LineTotal)
	}
	if line.ProductName != "Energy Bar" {
		t.Errorf("product name = %q", line.ProductName)
	}

	movements, err := env.inventory.GetMovements(&item.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	var sold int
	for _, m := range movements {
		if m.MovementType == models.MovementTypeSale {
			sold += m.QuantityChanged
		}
	}
	if sold != -4 {
		t.Errorf("sale movements total %d, want -4", sold)
	}
}

func TestRecordSaleValidation(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Gel", 3, "1", "1")

	tests := []struct {
		name string
		req  RecordSaleRequest
	}{
		{name: "no items", req: RecordSaleRequest{PaymentMethod: "cash"}},
		{name: "blank payment method", req: RecordSaleRequest{
			Items:         []SaleLineRequest{{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: 1}},
			PaymentMethod: "  ",
		}},
		{name: "zero quantity", req: RecordSaleRequest{
			Items:         []SaleLineRequest{{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: 0}},
			PaymentMethod: "cash",
		}},
		{name: "unknown product type", req: RecordSaleRequest{
			Items:         []SaleLineRequest{{ProductType: "service", ProductID: item.ID, Quantity: 1}},
			PaymentMethod: "cash",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.sales.RecordSale(adminPrincipal, tt.req); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
	if got := env.servings(t, item.ID); got != 3 {
		t.Errorf("servings = %d, want 3", got)
	}
}

func TestRecordSaleRejectsOversizedQuantities(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Bar", 5, "1", "1")
	product, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
		ProductName: "Bulk Pack",
		Ingredients: []IngredientRequest{{InventoryItemID: item.ID, Quantity: models.MaxServings}},
		FinalPrice:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("DefineCustomProduct: %v", err)
	}

	inventoryLine := func(qty int) SaleLineRequest {
		return SaleLineRequest{ProductType: models.ProductTypeInventory, ProductID: item.ID, Quantity: qty}
	}
	customLine := func(qty int) SaleLineRequest {
		return SaleLineRequest{ProductType: models.ProductTypeCustom, ProductID: product.ProductID, Quantity: qty}
	}

	tests := []struct {
		name    string
		lines   []SaleLineRequest
		wantErr error
	}{
		{name: "two lines of max int", lines: []SaleLineRequest{inventoryLine(math.MaxInt), inventoryLine(math.MaxInt)}, wantErr: ErrValidation},
		{name: "one line above the cap", lines: []SaleLineRequest{inventoryLine(models.MaxServings + 1)}, wantErr: ErrValidation},
		{name: "capped lines still need stock", lines: []SaleLineRequest{inventoryLine(models.MaxServings), inventoryLine(models.MaxServings)}, wantErr: ErrInsufficientStock},
		{name: "capped custom product line", lines: []SaleLineRequest{customLine(models.MaxServings)}, wantErr: ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sales.RecordSale(adminPrincipal, RecordSaleRequest{Items: tt.lines, PaymentMethod: "cash"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := env.servings(t, item.ID); got != 5 {
				t.Errorf("servings = %d, want 5", got)
			}
		})
	}

	sales, err := env.sales.GetSales(models.SaleFilters{})
	if err != nil {
		t.Fatalf("GetSales: %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("sales = %d, want 0", len(sales))
	}
}

func TestServingsArithmeticDoesNotWrap(t *testing.T) {
	tests := []struct {
		name   string
		op     func(a, b int) (int, bool)
		a, b   int
		want   int
		wantOK bool
	}{
		{name: "add", op: addServings, a: 2, b: 3, want: 5, wantOK: true},
		{name: "add at limit", op: addServings, a: math.MaxInt - 1, b: 1, want: math.MaxInt, wantOK: true},
		{name: "add past limit", op: addServings, a: math.MaxInt, b: 1, wantOK: false},
		{name: "mul", op: mulServings, a: 4, b: 6, want: 24, wantOK: true},
		{name: "mul by zero", op: mulServings, a: math.MaxInt, b: 0, want: 0, wantOK: true},
		{name: "mul past limit", op: mulServings, a: math.MaxInt/2 + 1, b: 2, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.op(tt.a, tt.b)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("got (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

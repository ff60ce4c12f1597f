package services

import (
	"errors"
	"testing"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"

	"github.com/shopspring/decimal"
)

func TestDefineCustomProductCostsFromInventory(t *testing.T) {
	env := newTestEnv(t)
	oats := env.createItem(t, "Oats", 50, "1.20", "0.30")
	milk := env.createItem(t, "Milk", 40, "0.80", "0.20")

	tests := []struct {
		name       string
		finalPrice string
		wantID     int64
		wantCost   string
		wantProfit string
	}{
		{name: "priced above cost", finalPrice: "5", wantID: 1001, wantCost: "3.2", wantProfit: "1.8"},
		{name: "priced below cost", finalPrice: "3", wantID: 1002, wantCost: "3.2", wantProfit: "-0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
				ProductName: " Porridge ",
				Ingredients: []IngredientRequest{
					{InventoryItemID: oats.ID, Quantity: 2},
					{InventoryItemID: milk.ID, Quantity: 1},
				},
				FinalPrice: decimal.RequireFromString(tt.finalPrice),
			})
			if err != nil {
				t.Fatalf("DefineCustomProduct: %v", err)
			}
			if product.ProductID != tt.wantID {
				t.Errorf("product id = %d, want %d", product.ProductID, tt.wantID)
			}
			if product.ProductName != "Porridge" {
				t.Errorf("product name = %q", product.ProductName)
			}
			if !product.TotalCost.Equal(decimal.RequireFromString(tt.wantCost)) {
				t.Errorf("total cost = %s, want %s", product.TotalCost, tt.wantCost)
			}
			if !product.Profit.Equal(decimal.RequireFromString(tt.wantProfit)) {
				t.Errorf("profit = %s, want %s", product.Profit, tt.wantProfit)
			}
		})
	}

	stored, err := env.products.GetCustomProductByID(1001)
	if err != nil {
		t.Fatalf("GetCustomProductByID: %v", err)
	}
	if len(stored.Ingredients) != 2 {
		t.Errorf("stored product has %d ingredients, want 2", len(stored.Ingredients))
	}

	// Ingredient stock is untouched until the product is sold.
	if got := env.servings(t, oats.ID); got != 50 {
		t.Errorf("oats servings = %d, want 50", got)
	}
}

func TestDefineCustomProductRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Whey", 10, "2", "1")

	tests := []struct {
		name    string
		req     DefineCustomProductRequest
		wantErr error
	}{
		{
			name:    "blank name",
			req:     DefineCustomProductRequest{ProductName: "  ", Ingredients: []IngredientRequest{{InventoryItemID: item.ID, Quantity: 1}}},
			wantErr: ErrValidation,
		},
		{
			name:    "no ingredients",
			req:     DefineCustomProductRequest{ProductName: "Empty"},
			wantErr: ErrValidation,
		},
		{
			name:    "zero quantity",
			req:     DefineCustomProductRequest{ProductName: "Shake", Ingredients: []IngredientRequest{{InventoryItemID: item.ID, Quantity: 0}}},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown ingredient",
			req:     DefineCustomProductRequest{ProductName: "Shake", Ingredients: []IngredientRequest{{InventoryItemID: 77, Quantity: 1}}},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.products.DefineCustomProduct(adminPrincipal, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	products, err := env.products.GetCustomProducts()
	if err != nil {
		t.Fatalf("GetCustomProducts: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected no products, got %d", len(products))
	}
}

func TestInventoryItemInUseCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Creatine", 10, "1", "1")

	product, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
		ProductName: "Pre-workout",
		Ingredients: []IngredientRequest{{InventoryItemID: item.ID, Quantity: 1}},
		FinalPrice:  decimal.NewFromInt(3),
	})
	if err != nil {
		t.Fatalf("DefineCustomProduct: %v", err)
	}

	if err := env.inventory.DeleteItem(item.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	if err := env.products.DeleteCustomProduct(product.ProductID); err != nil {
		t.Fatalf("DeleteCustomProduct: %v", err)
	}
	if err := env.inventory.DeleteItem(item.ID); err != nil {
		t.Fatalf("DeleteItem after product removal: %v", err)
	}
	if _, err := env.inventory.GetItemByID(item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRestockRecordsMovement(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Isotonic", 2, "1", "1")

	updated, err := env.inventory.Restock(adminPrincipal, item.ID, RestockRequest{Servings: 8})
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if updated.Servings != 10 {
		t.Errorf("servings = %d, want 10", updated.Servings)
	}
	if _, err := env.inventory.Restock(adminPrincipal, item.ID, RestockRequest{Servings: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("zero restock: expected ErrValidation, got %v", err)
	}
	if _, err := env.inventory.Restock(adminPrincipal, 999, RestockRequest{Servings: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown item: expected ErrNotFound, got %v", err)
	}

	movements, err := env.inventory.GetMovements(&item.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	var restocks int
	for _, m := range movements {
		if m.MovementType == models.MovementTypeRestock {
			restocks++
			if m.QuantityChanged != 8 || m.Reason != "Restock" {
				t.Errorf("restock movement = %+v", m)
			}
		}
	}
	if restocks != 1 {
		t.Errorf("restock movements = %d, want 1", restocks)
	}

	if _, err := env.inventory.UpdateItem(adminPrincipal, item.ID, InventoryItemRequest{
		StockType:        "Isotonic",
		Servings:         7,
		CostPerServing:   decimal.NewFromInt(1),
		ProfitPerServing: decimal.NewFromInt(1),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	movements, err = env.inventory.GetMovements(&item.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	// Newest first.
	if latest := movements[0]; latest.MovementType != models.MovementTypeAdjustment || latest.QuantityChanged != -3 {
		t.Errorf("latest movement = %+v, want adjustment of -3", latest)
	}
}

func TestPackageLifecycle(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Monthly", 1000, 1)

	if _, err := env.packages.CreatePackage(PackageRequest{Name: "Monthly", Price: decimal.NewFromInt(5), DurationMonths: 1}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate name: expected ErrDuplicateName, got %v", err)
	}
	if _, err := env.packages.CreatePackage(PackageRequest{Name: "Free", Price: decimal.NewFromInt(-1), DurationMonths: 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative price: expected ErrValidation, got %v", err)
	}
	if _, err := env.packages.CreatePackage(PackageRequest{Name: "Zero", DurationMonths: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("zero duration: expected ErrValidation, got %v", err)
	}

	member := env.enroll(t, "Nurlan", pkg.ID)
	if err := env.packages.DeletePackage(pkg.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("package with members: expected ErrInUse, got %v", err)
	}

	if err := env.members.DeleteMember(member.MemberID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if err := env.packages.DeletePackage(pkg.ID); err != nil {
		t.Fatalf("DeletePackage: %v", err)
	}
	if err := env.packages.DeletePackage(pkg.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestEnrollMemberAssignsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Annual", 9000, 12)

	first := env.enroll(t, "Aliya", pkg.ID)
	second := env.enroll(t, "Yerlan", pkg.ID)
	if first.MemberID != 1001 || second.MemberID != 1002 {
		t.Errorf("member ids = %d, %d, want 1001, 1002", first.MemberID, second.MemberID)
	}
	if first.Status != models.MemberStatusActive || first.JoinDate != "2024-03-15" || first.PackageName != "Annual" {
		t.Errorf("enrolled member = %+v", first)
	}

	if _, err := env.members.EnrollMember(MemberRequest{Name: " ", PackageID: pkg.ID}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}
	if _, err := env.members.EnrollMember(MemberRequest{Name: "Ghost", PackageID: 404}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown package: expected ErrNotFound, got %v", err)
	}

	updated, err := env.members.UpdateMember(first.MemberID, MemberRequest{Name: "Aliya K.", PackageID: pkg.ID, Status: models.MemberStatusInactive})
	if err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if updated.Name != "Aliya K." || updated.Status != models.MemberStatusInactive {
		t.Errorf("updated member = %+v", updated)
	}
	if _, err := env.members.UpdateMember(first.MemberID, MemberRequest{Name: "Aliya", PackageID: pkg.ID, Status: "Frozen"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: expected ErrValidation, got %v", err)
	}

	members, err := env.members.GetMembers(models.MemberFilters{})
	if err != nil {
		t.Fatalf("GetMembers: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("members = %d, want 2", len(members))
	}
}

func TestRestockStaysWithinServingsCap(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Electrolytes", 10, "1", "1")

	tests := []struct {
		name     string
		servings int
		wantErr  error
		want     int
	}{
		{name: "above single restock cap", servings: models.MaxServings + 1, wantErr: ErrValidation, want: 10},
		{name: "would pass stock cap", servings: models.MaxServings - 5, wantErr: ErrValidation, want: 10},
		{name: "up to stock cap", servings: models.MaxServings - 10, want: models.MaxServings},
		{name: "already at cap", servings: 1, wantErr: ErrValidation, want: models.MaxServings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.inventory.Restock(adminPrincipal, item.ID, RestockRequest{Servings: tt.servings})
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Restock: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := env.servings(t, item.ID); got != tt.want {
				t.Errorf("servings = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := env.inventory.CreateItem(adminPrincipal, InventoryItemRequest{StockType: "Huge", Servings: models.MaxServings + 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("oversized item: expected ErrValidation, got %v", err)
	}
}

func TestStockRepositoryRejectsNonPositiveChanges(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "Gum", 4, "1", "1")

	for _, qty := range []int{0, -3} {
		if _, err := env.inventoryRepo.DecrementServings(env.db, item.ID, qty); !errors.Is(err, repositories.ErrInvalidQuantity) {
			t.Errorf("DecrementServings(%d): expected ErrInvalidQuantity, got %v", qty, err)
		}
		if err := env.inventoryRepo.IncrementServings(env.db, item.ID, qty); !errors.Is(err, repositories.ErrInvalidQuantity) {
			t.Errorf("IncrementServings(%d): expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if got := env.servings(t, item.ID); got != 4 {
		t.Errorf("servings = %d, want 4", got)
	}
}

func TestDeletedIDsAreNotReissued(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Monthly", 800, 1)

	alice := env.enroll(t, "Alice", pkg.ID)
	if _, err := env.attendance.RecordMemberAttendance(alice.MemberID, ActionCheckIn); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if _, err := env.payments.RecordPayment(adminPrincipal, RecordPaymentRequest{MemberID: alice.MemberID}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if err := env.members.DeleteMember(alice.MemberID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	bob := env.enroll(t, "Bob", pkg.ID)
	if bob.MemberID != 1002 {
		t.Fatalf("new member id = %d, want 1002", bob.MemberID)
	}
	if _, err := env.attendance.RecordMemberAttendance(bob.MemberID, ActionCheckIn); err != nil {
		t.Errorf("first check-in of new member: %v", err)
	}
	payments, err := env.payments.GetPayments(models.PaymentFilters{MemberID: &bob.MemberID})
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("new member inherited %d payment(s)", len(payments))
	}

	item := env.createItem(t, "Shaker", 3, "1", "1")
	product, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
		ProductName: "Combo",
		Ingredients: []IngredientRequest{{InventoryItemID: item.ID, Quantity: 1}},
		FinalPrice:  decimal.NewFromInt(4),
	})
	if err != nil {
		t.Fatalf("DefineCustomProduct: %v", err)
	}
	if err := env.products.DeleteCustomProduct(product.ProductID); err != nil {
		t.Fatalf("DeleteCustomProduct: %v", err)
	}
	if err := env.inventory.DeleteItem(item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	tests := []struct {
		name   string
		create func() int64
		old    int64
	}{
		{name: "custom product", old: product.ProductID, create: func() int64 {
			again := env.createItem(t, "Shaker", 3, "1", "1")
			p, err := env.products.DefineCustomProduct(adminPrincipal, DefineCustomProductRequest{
				ProductName: "Combo",
				Ingredients: []IngredientRequest{{InventoryItemID: again.ID, Quantity: 1}},
				FinalPrice:  decimal.NewFromInt(4),
			})
			if err != nil {
				t.Fatalf("DefineCustomProduct: %v", err)
			}
			return p.ProductID
		}},
		{name: "inventory item", old: item.ID, create: func() int64 {
			return env.createItem(t, "Towel", 1, "1", "1").ID
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.create(); got <= tt.old {
				t.Errorf("new id = %d, want above %d", got, tt.old)
			}
		})
	}
}

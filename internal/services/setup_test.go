package services

import (
	"testing"
	"time"

	"gym_backoffice/internal/access"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/internal/testhelpers"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var adminPrincipal = access.Principal{Role: access.RoleAdmin, Username: "admin", Name: "Administrator"}

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db  *sqlx.DB
	now time.Time

	inventoryRepo repositories.InventoryRepository
	staffRepo     repositories.StaffRepository
	authRepo      repositories.AuthRepository

	members    MemberService
	packages   PackageService
	payments   PaymentService
	staff      StaffService
	attendance AttendanceService
	inventory  InventoryService
	products   CustomProductService
	sales      SaleService
	reports    ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupTestDB(t)

	env := &testEnv{db: db, now: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)}
	clock := Clock(func() time.Time { return env.now })

	authRepo := repositories.NewAuthRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	packageRepo := repositories.NewPackageRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)
	productRepo := repositories.NewCustomProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)

	env.inventoryRepo = inventoryRepo
	env.staffRepo = staffRepo
	env.authRepo = authRepo

	env.members = NewMemberService(memberRepo, packageRepo, db, clock)
	env.packages = NewPackageService(packageRepo, memberRepo, db)
	env.payments = NewPaymentService(paymentRepo, memberRepo, packageRepo, db, clock)
	env.staff = NewStaffService(staffRepo, authRepo, db, clock)
	env.attendance = NewAttendanceService(attendanceRepo, memberRepo, staffRepo, db, clock)
	env.inventory = NewInventoryService(inventoryRepo, movementRepo, db, clock)
	env.products = NewCustomProductService(productRepo, inventoryRepo, db, clock)
	env.sales = NewSaleService(saleRepo, inventoryRepo, productRepo, movementRepo, db, clock)
	env.reports = NewReportService(memberRepo, packageRepo, paymentRepo, staffRepo, attendanceRepo, saleRepo, db, clock)
	return env
}

func (env *testEnv) createPackage(t *testing.T, name string, price int64, months int) *models.Package {
	t.Helper()
	pkg, err := env.packages.CreatePackage(PackageRequest{
		Name:           name,
		Price:          decimal.NewFromInt(price),
		DurationMonths: months,
	})
	if err != nil {
		t.Fatalf("CreatePackage(%s): %v", name, err)
	}
	return pkg
}

func (env *testEnv) enroll(t *testing.T, name string, packageID int64) *models.Member {
	t.Helper()
	member, err := env.members.EnrollMember(MemberRequest{Name: name, PackageID: packageID})
	if err != nil {
		t.Fatalf("EnrollMember(%s): %v", name, err)
	}
	return member
}

func (env *testEnv) createItem(t *testing.T, name string, servings int, cost, profit string) *models.InventoryItem {
	t.Helper()
	item, err := env.inventory.CreateItem(adminPrincipal, InventoryItemRequest{
		StockType:        name,
		Servings:         servings,
		CostPerServing:   decimal.RequireFromString(cost),
		ProfitPerServing: decimal.RequireFromString(profit),
	})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return item
}

func (env *testEnv) servings(t *testing.T, id int64) int {
	t.Helper()
	item, err := env.inventory.GetItemByID(id)
	if err != nil {
		t.Fatalf("GetItemByID(%d): %v", id, err)
	}
	return item.Servings
}

func newTestTokens(t *testing.T) *utils.TokenManager {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tokens
}

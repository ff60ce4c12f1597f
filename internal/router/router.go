package router

import (
	"fmt"
	"sync"

	"gym_backoffice/internal/backup"
	"gym_backoffice/internal/handlers"
	"gym_backoffice/internal/middleware"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/internal/services"
	"gym_backoffice/internal/session"
	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/jmoiron/sqlx"
)

// Dependencies are the collaborators Setup wires into the routes.
type Dependencies struct {
	DB             *sqlx.DB
	Tokens         *utils.TokenManager
	Revoked        session.Store
	LoginRateLimit string
	BackupDir      string
	// Clock is optional; nil means the wall clock.
	Clock services.Clock
}

// Application exposes what main needs beyond the routes.
type Application struct {
	AuthService services.AuthService
	Exporter    *backup.Exporter
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		validatorsErr = v.RegisterValidation("notblank", validators.NotBlank)
	})
	return validatorsErr
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) (*Application, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(deps.DB)
	staffRepo := repositories.NewStaffRepository(deps.DB)
	memberRepo := repositories.NewMemberRepository(deps.DB)
	packageRepo := repositories.NewPackageRepository(deps.DB)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	attendanceRepo := repositories.NewAttendanceRepository(deps.DB)
	inventoryRepo := repositories.NewInventoryRepository(deps.DB)
	movementRepo := repositories.NewStockMovementRepository(deps.DB)
	productRepo := repositories.NewCustomProductRepository(deps.DB)
	saleRepo := repositories.NewSaleRepository(deps.DB)

	// Initialize Services
	authService := services.NewAuthService(authRepo, staffRepo, deps.Tokens, deps.Revoked, deps.DB, deps.Clock)
	staffService := services.NewStaffService(staffRepo, authRepo, deps.DB, deps.Clock)
	memberService := services.NewMemberService(memberRepo, packageRepo, deps.DB, deps.Clock)
	packageService := services.NewPackageService(packageRepo, memberRepo, deps.DB)
	paymentService := services.NewPaymentService(paymentRepo, memberRepo, packageRepo, deps.DB, deps.Clock)
	attendanceService := services.NewAttendanceService(attendanceRepo, memberRepo, staffRepo, deps.DB, deps.Clock)
	inventoryService := services.NewInventoryService(inventoryRepo, movementRepo, deps.DB, deps.Clock)
	productService := services.NewCustomProductService(productRepo, inventoryRepo, deps.DB, deps.Clock)
	saleService := services.NewSaleService(saleRepo, inventoryRepo, productRepo, movementRepo, deps.DB, deps.Clock)
	reportService := services.NewReportService(memberRepo, packageRepo, paymentRepo, staffRepo, attendanceRepo, saleRepo, deps.DB, deps.Clock)

	exporter := backup.NewExporter(deps.DB, deps.BackupDir, backup.AllSources(backup.Repositories{
		Admins:         authRepo,
		Staff:          staffRepo,
		Members:        memberRepo,
		Packages:       packageRepo,
		Payments:       paymentRepo,
		Attendance:     attendanceRepo,
		Inventory:      inventoryRepo,
		Movements:      movementRepo,
		CustomProducts: productRepo,
		Sales:          saleRepo,
	})...)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService)
	memberHandler := handlers.NewMemberHandler(memberService)
	packageHandler := handlers.NewPackageHandler(packageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	productHandler := handlers.NewCustomProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(exporter)

	rateLimit := deps.LoginRateLimit
	if rateLimit == "" {
		rateLimit = "10-M"
	}
	loginLimiter, err := middleware.RateLimit(rateLimit)
	if err != nil {
		return nil, err
	}

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler, loginLimiter)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revoked, authService))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
		SetupMemberRoutes(authenticated, memberHandler)
		SetupMemberAttendanceRoutes(authenticated, attendanceHandler)
		SetupStaffAttendanceRoutes(authenticated, attendanceHandler)
		SetupPackageRoutes(authenticated, packageHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupCustomProductRoutes(authenticated, productHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupBackupRoutes(authenticated, backupHandler)
	}

	return &Application{AuthService: authService, Exporter: exporter}, nil
}

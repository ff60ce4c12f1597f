package router

import (
	"gym_backoffice/internal/access"
	"gym_backoffice/internal/handlers"
	"gym_backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter gin.HandlerFunc) {
	group.POST("/login", limiter, authHandler.Login)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.Logout)
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/change-password", authHandler.ChangePassword)
}

// SetupDashboardRoutes sets up the dashboard routes. Every signed-in account may view it.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	authenticatedGroup.GET("/dashboard", reportHandler.GetDashboardSummary)
}

// SetupMemberRoutes sets up the member routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RequireCapability(access.CapMembers))
	{
		memberRoutes.POST("", memberHandler.EnrollMember)
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/:id", memberHandler.GetMemberByID)
		memberRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}
}

// SetupMemberAttendanceRoutes sets up member check-in and check-out.
func SetupMemberAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance/members")
	attendanceRoutes.Use(middleware.RequireCapability(access.CapMemberAttendance))
	{
		attendanceRoutes.GET("", attendanceHandler.GetMemberAttendance)
		attendanceRoutes.POST("/:id/check-in", attendanceHandler.MemberCheckIn)
		attendanceRoutes.POST("/:id/check-out", attendanceHandler.MemberCheckOut)
		attendanceRoutes.POST("/:id/mark", attendanceHandler.MarkMember)
	}
}

// SetupStaffAttendanceRoutes sets up staff check-in and check-out.
func SetupStaffAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance/staff")
	attendanceRoutes.Use(middleware.RequireCapability(access.CapStaffAttendance))
	{
		attendanceRoutes.GET("", attendanceHandler.GetStaffAttendance)
		attendanceRoutes.POST("/:username/check-in", attendanceHandler.StaffCheckIn)
		attendanceRoutes.POST("/:username/check-out", attendanceHandler.StaffCheckOut)
		attendanceRoutes.POST("/:username/mark", attendanceHandler.MarkStaff)
	}
}

// SetupPackageRoutes sets up the package routes. Listing is open to every
// signed-in account because enrollment picks from it.
func SetupPackageRoutes(authenticatedGroup *gin.RouterGroup, packageHandler *handlers.PackageHandler) {
	packageRoutes := authenticatedGroup.Group("/packages")
	{
		packageRoutes.GET("", packageHandler.GetPackages)
		packageRoutes.GET("/:id", packageHandler.GetPackageByID)

		manage := packageRoutes.Group("")
		manage.Use(middleware.RequireCapability(access.CapPackages))
		manage.POST("", packageHandler.CreatePackage)
		manage.PUT("/:id", packageHandler.UpdatePackage)
		manage.DELETE("/:id", packageHandler.DeletePackage)
	}
}

// SetupPaymentRoutes sets up the payment routes.
func SetupPaymentRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payments")
	paymentRoutes.Use(middleware.RequireCapability(access.CapPayments))
	{
		paymentRoutes.POST("", paymentHandler.RecordPayment)
		paymentRoutes.GET("", paymentHandler.GetPayments)
	}
}

// SetupStaffRoutes sets up the staff routes. Creating and deleting accounts is admin only.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	staffRoutes.Use(middleware.RequireCapability(access.CapStaff))
	{
		staffRoutes.GET("", staffHandler.GetStaff)
		staffRoutes.GET("/:username", staffHandler.GetStaffByUsername)
		staffRoutes.PUT("/:username", staffHandler.UpdateStaffAccount)

		adminRoutes := staffRoutes.Group("")
		adminRoutes.Use(middleware.AdminOnly())
		adminRoutes.POST("", staffHandler.CreateStaffAccount)
		adminRoutes.DELETE("/:username", staffHandler.DeleteStaffAccount)
	}
}

// SetupInventoryRoutes sets up the inventory routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory")
	inventoryRoutes.Use(middleware.RequireCapability(access.CapInventory))
	{
		inventoryRoutes.POST("", inventoryHandler.CreateItem)
		inventoryRoutes.GET("", inventoryHandler.GetItems)
		inventoryRoutes.GET("/movements", inventoryHandler.GetMovements)
		inventoryRoutes.GET("/:id", inventoryHandler.GetItemByID)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
		inventoryRoutes.POST("/:id/restock", inventoryHandler.Restock)
		inventoryRoutes.GET("/:id/movements", inventoryHandler.GetMovements)
	}
}

// SetupCustomProductRoutes sets up the custom product routes.
func SetupCustomProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.CustomProductHandler) {
	productRoutes := authenticatedGroup.Group("/custom-products")
	productRoutes.Use(middleware.RequireCapability(access.CapSales))
	{
		productRoutes.POST("", productHandler.DefineCustomProduct)
		productRoutes.GET("", productHandler.GetCustomProducts)
		productRoutes.GET("/:id", productHandler.GetCustomProductByID)
		productRoutes.DELETE("/:id", productHandler.DeleteCustomProduct)
	}
}

// SetupSaleRoutes sets up the point-of-sale routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	saleRoutes.Use(middleware.RequireCapability(access.CapSales))
	{
		saleRoutes.POST("", saleHandler.RecordSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RequireCapability(access.CapReports))
	{
		reportRoutes.GET("", reportHandler.GetReportsOverview)
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
		reportRoutes.GET("/sales/export", reportHandler.ExportSalesReport)
	}
}

// SetupBackupRoutes sets up the on-demand backup route.
func SetupBackupRoutes(authenticatedGroup *gin.RouterGroup, backupHandler *handlers.BackupHandler) {
	backupRoutes := authenticatedGroup.Group("/backups")
	backupRoutes.Use(middleware.AdminOnly())
	{
		backupRoutes.POST("", backupHandler.CreateBackup)
	}
}

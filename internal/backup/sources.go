package backup

import "gym_backoffice/internal/repositories"

// Repositories groups every repository whose table is backed up.
type Repositories struct {
	Admins         repositories.AuthRepository
	Staff          repositories.StaffRepository
	Members        repositories.MemberRepository
	Packages       repositories.PackageRepository
	Payments       repositories.PaymentRepository
	Attendance     repositories.AttendanceRepository
	Inventory      repositories.InventoryRepository
	Movements      repositories.StockMovementRepository
	CustomProducts repositories.CustomProductRepository
	Sales          repositories.SaleRepository
}

// AllSources lists one Source per table, named after the table.
func AllSources(r Repositories) []Source {
	return []Source{
		TableSource("admin_accounts", r.Admins.ListAll),
		TableSource("staff_accounts", r.Staff.ListAll),
		TableSource("packages", r.Packages.ListAll),
		TableSource("members", r.Members.ListAll),
		TableSource("payments", r.Payments.ListAll),
		TableSource("member_attendance", r.Attendance.ListAllMemberAttendance),
		TableSource("staff_attendance", r.Attendance.ListAllStaffAttendance),
		TableSource("inventory_items", r.Inventory.ListAll),
		TableSource("stock_movements", r.Movements.ListAll),
		TableSource("custom_products", r.CustomProducts.ListAll),
		TableSource("custom_product_ingredients", r.CustomProducts.ListAllIngredients),
		TableSource("sales", r.Sales.ListAll),
		TableSource("sale_items", r.Sales.ListAllItems),
	}
}

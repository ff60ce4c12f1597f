package models

import "github.com/shopspring/decimal"

// PackageRevenue is revenue grouped by package name.
type PackageRevenue struct {
	PackageName string          `json:"package_name" db:"package_name"`
	Revenue     decimal.Decimal `json:"revenue" db:"revenue"`
}

// PackageMemberCount is the number of members on a package.
type PackageMemberCount struct {
	PackageID   int64  `json:"package_id" db:"package_id"`
	PackageName string `json:"package_name" db:"package_name"`
	Members     int    `json:"members" db:"members"`
}

// MonthRevenue is the payment total of one calendar month.
type MonthRevenue struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
}

// DayAttendance is the number of member check-ins on one date.
type DayAttendance struct {
	Date  string `json:"date" db:"attendance_date"`
	Count int    `json:"count" db:"count"`
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	TotalMembers     int                  `json:"total_members"`
	MonthlyRevenue   decimal.Decimal      `json:"monthly_revenue"`
	TotalPackages    int                  `json:"total_packages"`
	TotalStaff       int                  `json:"total_staff"`
	RevenueByPackage []PackageRevenue     `json:"revenue_by_package"`
	MembersByPackage []PackageMemberCount `json:"members_by_package"`
}

// ReportsOverview backs the reports page.
type ReportsOverview struct {
	MonthlyRevenue      decimal.Decimal      `json:"monthly_revenue"`
	LastSixMonths       []MonthRevenue       `json:"last_six_months"`
	PackageDistribution []PackageMemberCount `json:"package_distribution"`
	TodayAttendance     int                  `json:"today_attendance"`
	AttendanceCalendar  []DayAttendance      `json:"attendance_calendar"`
}

// SalesReport is the flattened sales listing for a date range.
type SalesReport struct {
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Lines       []SaleReportLine `json:"lines"`
	SalesCount  int              `json:"sales_count"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// ReportRequestParams holds common parameters for requesting reports.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
}

package models

import "github.com/shopspring/decimal"

// Product types a sale line can reference.
const (
	ProductTypeInventory = "inventory"
	ProductTypeCustom    = "custom"
)

// Sale is a point-of-sale receipt.
type Sale struct {
	ID            int64           `json:"id" db:"id"`
	SaleDate      string          `json:"sale_date" db:"sale_date"`
	StaffUsername string          `json:"staff_username" db:"staff_username"`
	StaffName     string          `json:"staff_name" db:"staff_name"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Items         []SaleItem      `json:"items,omitempty"`
}

// SaleItem is a line of a sale with the name and price captured at sale time.
type SaleItem struct {
	SaleID      int64           `json:"-" db:"sale_id"`
	LineNo      int             `json:"line_no" db:"line_no"`
	ProductType string          `json:"product_type" db:"product_type"`
	ProductID   int64           `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total" db:"line_total"`
}

// SaleFilters narrows a sales listing. Dates are inclusive YYYY-MM-DD bounds.
type SaleFilters struct {
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	StaffUsername string `form:"staff_username"`
}

// SaleReportLine is one flattened sale line for the sales report.
type SaleReportLine struct {
	SaleID        int64           `json:"sale_id" db:"sale_id"`
	SaleDate      string          `json:"sale_date" db:"sale_date"`
	StaffUsername string          `json:"staff_username" db:"staff_username"`
	StaffName     string          `json:"staff_name" db:"staff_name"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	ProductType   string          `json:"product_type" db:"product_type"`
	ProductID     int64           `json:"product_id" db:"product_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	Quantity      int             `json:"quantity" db:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total" db:"line_total"`
}

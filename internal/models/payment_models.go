package models

import "github.com/shopspring/decimal"

// Payment is an append-only ledger entry for a membership payment.
// Member and package names are snapshots taken when the payment was recorded.
type Payment struct {
	ID              int64           `json:"id" db:"id"`
	MemberID        int64           `json:"member_id" db:"member_id"`
	MemberName      string          `json:"member_name" db:"member_name"`
	PackageID       int64           `json:"package_id" db:"package_id"`
	PackageName     string          `json:"package_name" db:"package_name"`
	BaseAmount      decimal.Decimal `json:"base_amount" db:"base_amount"`
	AdditionalCost  decimal.Decimal `json:"additional_cost" db:"additional_cost"`
	DiscountPercent decimal.Decimal `json:"discount_percent" db:"discount_percent"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate     string          `json:"payment_date" db:"payment_date"`
	Status          string          `json:"status" db:"status"`
	Comments        string          `json:"comments" db:"comments"`
	RecordedBy      string          `json:"recorded_by" db:"recorded_by"`
}

// PaymentFilters narrows a payment listing.
type PaymentFilters struct {
	MemberID *int64 `form:"member_id"`
	Month    string `form:"month"` // YYYY-MM
}

package models

// Member statuses.
const (
	MemberStatusActive   = "Active"
	MemberStatusInactive = "Inactive"
)

// Payment statuses shared by members and payments.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// FirstMemberID is assigned when the members table is empty.
const FirstMemberID int64 = 1001

// Member represents an enrolled gym member
type Member struct {
	MemberID          int64   `json:"member_id" db:"member_id"`
	Name              string  `json:"name" db:"name"`
	Phone             string  `json:"phone" db:"phone"`
	Address           string  `json:"address" db:"address"`
	DOB               string  `json:"dob" db:"dob"`
	Gender            string  `json:"gender" db:"gender"`
	NextOfKinName     string  `json:"next_of_kin_name" db:"next_of_kin_name"`
	NextOfKinPhone    string  `json:"next_of_kin_phone" db:"next_of_kin_phone"`
	MedicalConditions string  `json:"medical_conditions" db:"medical_conditions"`
	Weight            string  `json:"weight" db:"weight"`
	Height            string  `json:"height" db:"height"`
	PackageID         int64   `json:"package_id" db:"package_id"`
	PackageName       string  `json:"package_name,omitempty" db:"package_name"`
	JoinDate          string  `json:"join_date" db:"join_date"`
	ExpiryDate        *string `json:"expiry_date,omitempty" db:"expiry_date"`
	Status            string  `json:"status" db:"status"`
	PaymentStatus     string  `json:"payment_status" db:"payment_status"`
	CreatedAt         string  `json:"created_at" db:"created_at"`
	UpdatedAt         string  `json:"updated_at" db:"updated_at"`
}

// MemberFilters narrows a member listing.
type MemberFilters struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// AttendanceRecord is the per (person, date) check-in/check-out pair.
// A nil CheckOut means the person is still checked in.
type AttendanceRecord struct {
	Date     string  `json:"date" db:"attendance_date"`
	CheckIn  string  `json:"check_in" db:"check_in"`
	CheckOut *string `json:"check_out,omitempty" db:"check_out"`
}

// MemberAttendance is one member's attendance for one date.
type MemberAttendance struct {
	MemberID   int64  `json:"member_id" db:"member_id"`
	MemberName string `json:"member_name,omitempty" db:"member_name"`
	AttendanceRecord
}

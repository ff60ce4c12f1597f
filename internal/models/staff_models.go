package models

import (
	"gym_backoffice/internal/access"

	"github.com/shopspring/decimal"
)

// StaffAccount is an employee login with per-feature privileges.
type StaffAccount struct {
	Username       string               `json:"username" db:"username"`
	PasswordHash   string               `json:"-" db:"password_hash"`
	Name           string               `json:"name" db:"name"`
	Phone          string               `json:"phone" db:"phone"`
	Address        string               `json:"address" db:"address"`
	DOB            string               `json:"dob" db:"dob"`
	Gender         string               `json:"gender" db:"gender"`
	Salary         decimal.Decimal      `json:"salary" db:"salary"`
	NextOfKinName  string               `json:"next_of_kin_name" db:"next_of_kin_name"`
	NextOfKinPhone string               `json:"next_of_kin_phone" db:"next_of_kin_phone"`
	Privileges     access.CapabilitySet `json:"privileges" db:"privileges"`
	StaffType      string               `json:"staff_type" db:"staff_type"`
	CreatedAt      string               `json:"created_at" db:"created_at"`
	UpdatedAt      string               `json:"updated_at" db:"updated_at"`
}

// StaffAttendance is one staff member's attendance for one date.
type StaffAttendance struct {
	Username  string `json:"username" db:"username"`
	StaffName string `json:"staff_name,omitempty" db:"staff_name"`
	AttendanceRecord
}

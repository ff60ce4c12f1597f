// Package access decides whether a caller may use a feature of the back office.
//
// Admins may use everything. Staff accounts carry a set of capability tags
// and may use a feature only when its tag is in that set. Anyone else is
// never authorized.
package access

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// Role of an authenticated caller.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Capability is a named feature tag that can be granted to a staff account.
type Capability string

const (
	CapMembers          Capability = "members"
	CapMemberAttendance Capability = "member_attendance"
	CapStaffAttendance  Capability = "staff_attendance"
	CapPayments         Capability = "payments"
	CapReports          Capability = "reports"
	CapStaff            Capability = "staff"
	CapSales            Capability = "sales"
	CapInventory        Capability = "inventory"
	CapPackages         Capability = "packages"
)

// Vocabulary lists every capability in display order.
var Vocabulary = []Capability{
	CapMembers,
	CapMemberAttendance,
	CapStaffAttendance,
	CapPayments,
	CapReports,
	CapStaff,
	CapSales,
	CapInventory,
	CapPackages,
}

// IsKnown reports whether c belongs to the fixed vocabulary.
func IsKnown(c Capability) bool {
	for _, v := range Vocabulary {
		if v == c {
			return true
		}
	}
	return false
}

// Authorize is the single access rule of the system.
func Authorize(role Role, privileges CapabilitySet, required Capability) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleStaff:
		return privileges.Has(required)
	default:
		return false
	}
}

// Principal is the authenticated caller of one request.
type Principal struct {
	Role       Role          `json:"role"`
	Username   string        `json:"username"`
	Name       string        `json:"name"`
	Privileges CapabilitySet `json:"privileges"`
}

// Can is Authorize applied to the principal.
func (p Principal) Can(required Capability) bool {
	return Authorize(p.Role, p.Privileges, required)
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CapabilitySet is a duplicate-free, vocabulary-ordered list of capabilities.
// It is stored as a comma separated string.
type CapabilitySet []Capability

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

// Strings returns the tags as plain strings.
func (s CapabilitySet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

func (s CapabilitySet) String() string {
	return strings.Join(s.Strings(), ",")
}

// NewCapabilitySet keeps only known capabilities, drops duplicates and
// orders the result like Vocabulary.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	seen := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		if IsKnown(c) {
			seen[c] = true
		}
	}
	out := make(CapabilitySet, 0, len(seen))
	for _, v := range Vocabulary {
		if seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// ParseCapabilities reads the comma separated storage format. Blank entries
// and unknown tags are ignored.
func ParseCapabilities(raw string) CapabilitySet {
	var caps []Capability
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			caps = append(caps, Capability(part))
		}
	}
	return NewCapabilitySet(caps...)
}

// CapabilitiesFromFlags returns the vocabulary subset that was flagged true.
func CapabilitiesFromFlags(flags map[string]bool) CapabilitySet {
	keys := make([]string, 0, len(flags))
	for k, on := range flags {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	caps := make([]Capability, len(keys))
	for i, k := range keys {
		caps[i] = Capability(strings.TrimPrefix(k, "perm_"))
	}
	return NewCapabilitySet(caps...)
}

// Scan implements sql.Scanner.
func (s *CapabilitySet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = CapabilitySet{}
	case string:
		*s = ParseCapabilities(v)
	case []byte:
		*s = ParseCapabilities(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CapabilitySet", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (s CapabilitySet) Value() (driver.Value, error) {
	return s.String(), nil
}

package access

import (
	"reflect"
	"testing"
)

func TestAuthorize(t *testing.T) {
	salesOnly := NewCapabilitySet(CapSales)

	tests := []struct {
		name       string
		role       Role
		privileges CapabilitySet
		required   Capability
		want       bool
	}{
		{"staff with sales may sell", RoleStaff, salesOnly, CapSales, true},
		{"staff with sales may not manage staff", RoleStaff, salesOnly, CapStaff, false},
		{"admin may sell", RoleAdmin, nil, CapSales, true},
		{"admin may manage staff", RoleAdmin, nil, CapStaff, true},
		{"staff without privileges", RoleStaff, CapabilitySet{}, CapMembers, false},
		{"unauthenticated caller", Role(""), NewCapabilitySet(Vocabulary...), CapMembers, false},
		{"unknown role", Role("receptionist"), salesOnly, CapSales, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.role, tt.privileges, tt.required); got != tt.want {
				t.Errorf("Authorize(%q, %v, %q) = %v, want %v", tt.role, tt.privileges, tt.required, got, tt.want)
			}
		})
	}
}

func TestPrincipalCan(t *testing.T) {
	p := Principal{Role: RoleStaff, Username: "desk", Privileges: NewCapabilitySet(CapSales)}
	if !p.Can(CapSales) {
		t.Error("expected staff principal to be allowed sales")
	}
	if p.Can(CapStaff) {
		t.Error("expected staff principal to be denied staff management")
	}
	if p.IsAdmin() {
		t.Error("staff principal reported as admin")
	}
}

func TestParseCapabilities(t *testing.T) {
	got := ParseCapabilities(" sales, members,,unknown,sales ")
	want := CapabilitySet{CapMembers, CapSales}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseCapabilities = %v, want %v", got, want)
	}
	if got.String() != "members,sales" {
		t.Fatalf("String() = %q", got.String())
	}
	if len(ParseCapabilities("")) != 0 {
		t.Fatal("empty input should give an empty set")
	}
}

func TestCapabilitiesFromFlags(t *testing.T) {
	flags := map[string]bool{
		"perm_payments": true,
		"inventory":     true,
		"reports":       false,
		"superuser":     true,
	}
	got := CapabilitiesFromFlags(flags)
	want := CapabilitySet{CapPayments, CapInventory}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CapabilitiesFromFlags = %v, want %v", got, want)
	}
}

func TestCapabilitySetScanValue(t *testing.T) {
	var s CapabilitySet
	if err := s.Scan([]byte("packages,staff")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "staff,packages" {
		t.Fatalf("Value = %v, want vocabulary order", v)
	}
	if err := s.Scan(42); err == nil {
		t.Fatal("expected error scanning an int")
	}
}

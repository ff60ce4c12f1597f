package services

import (
	"errors"
	"testing"

	"gym_backoffice/internal/models"

	"github.com/shopspring/decimal"
)

func TestPaymentTotal(t *testing.T) {
	tests := []struct {
		name       string
		price      string
		additional string
		discount   string
		want       string
	}{
		{name: "no extras", price: "1000", additional: "0", discount: "0", want: "1000"},
		{name: "additional and discount", price: "1000", additional: "200", discount: "10", want: "1080"},
		{name: "full discount", price: "750", additional: "50", discount: "100", want: "0"},
		{name: "fractional result rounds to cents", price: "99.99", additional: "0", discount: "33", want: "66.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaymentTotal(
				decimal.RequireFromString(tt.price),
				decimal.RequireFromString(tt.additional),
				decimal.RequireFromString(tt.discount),
			)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("PaymentTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecordPaymentMarksMemberPaid(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Quarterly", 1000, 3)
	member := env.enroll(t, "Aruzhan", pkg.ID)
	if member.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("new member payment status = %q, want Pending", member.PaymentStatus)
	}

	payment, err := env.payments.RecordPayment(adminPrincipal, RecordPaymentRequest{
		MemberID:        member.MemberID,
		AdditionalCost:  decimal.NewFromInt(200),
		DiscountPercent: decimal.NewFromInt(10),
		Comments:        "locker",
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if !payment.Amount.Equal(decimal.NewFromInt(1080)) {
		t.Errorf("amount = %s, want 1080", payment.Amount)
	}
	if payment.Status != models.PaymentStatusPaid || payment.PackageName != "Quarterly" {
		t.Errorf("payment = %+v", payment)
	}

	updated, err := env.members.GetMemberByID(member.MemberID)
	if err != nil {
		t.Fatalf("GetMemberByID: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("member payment status = %q, want Paid", updated.PaymentStatus)
	}
	if updated.ExpiryDate == nil || *updated.ExpiryDate != "2024-06-15" {
		t.Errorf("expiry = %v, want 2024-06-15", updated.ExpiryDate)
	}

	ledger, err := env.payments.GetPayments(models.PaymentFilters{MemberID: &member.MemberID})
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(ledger) != 1 {
		t.Errorf("ledger has %d entries, want 1", len(ledger))
	}
}

func TestRecordPaymentFailures(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Monthly", 500, 1)
	member := env.enroll(t, "Bolat", pkg.ID)

	if _, err := env.payments.RecordPayment(adminPrincipal, RecordPaymentRequest{MemberID: 9999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown member: expected ErrNotFound, got %v", err)
	}
	if _, err := env.payments.RecordPayment(adminPrincipal, RecordPaymentRequest{
		MemberID:        member.MemberID,
		DiscountPercent: decimal.NewFromInt(120),
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("discount over 100: expected ErrValidation, got %v", err)
	}

	// Simulate a package removed behind the member's back.
	if _, err := env.db.Exec(`DELETE FROM packages WHERE id = $1`, pkg.ID); err != nil {
		t.Fatalf("deleting package: %v", err)
	}
	_, err := env.payments.RecordPayment(adminPrincipal, RecordPaymentRequest{MemberID: member.MemberID})
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, ErrNotFound) {
		t.Errorf("missing package: expected ErrInvalidState wrapping ErrNotFound, got %v", err)
	}

	ledger, err := env.payments.GetPayments(models.PaymentFilters{})
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("failed payments left %d ledger rows", len(ledger))
	}
	after, err := env.members.GetMemberByID(member.MemberID)
	if err != nil {
		t.Fatalf("GetMemberByID: %v", err)
	}
	if after.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status = %q, want Pending", after.PaymentStatus)
	}
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMemberAttendanceSingleCheckInAndOutPerDay(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Monthly", 1000, 1)
	member := env.enroll(t, "Asel", pkg.ID)

	steps := []struct {
		action  AttendanceAction
		advance time.Duration
		wantErr error
	}{
		{action: ActionCheckOut, wantErr: ErrInvalidState},
		{action: ActionCheckIn},
		{action: ActionCheckIn, advance: time.Minute, wantErr: ErrInvalidState},
		{action: ActionCheckOut, advance: time.Hour},
		{action: ActionCheckOut, advance: time.Minute, wantErr: ErrInvalidState},
		{action: ActionCheckIn, advance: time.Minute, wantErr: ErrInvalidState},
	}

	for i, step := range steps {
		env.now = env.now.Add(step.advance)
		rec, err := env.attendance.RecordMemberAttendance(member.MemberID, step.action)
		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Fatalf("step %d (%s): expected %v, got %v", i, step.action, step.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("step %d (%s): %v", i, step.action, err)
		}
		if rec.MemberName != "Asel" {
			t.Errorf("step %d: member name = %q", i, rec.MemberName)
		}
	}

	records, err := env.attendance.GetMemberAttendance("")
	if err != nil {
		t.Fatalf("GetMemberAttendance: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record today, got %d", len(records))
	}
	if records[0].CheckIn != "10:30:00" || records[0].CheckOut == nil || *records[0].CheckOut != "11:31:00" {
		t.Errorf("record = %+v, want check-in 10:30:00 and check-out 11:31:00", records[0])
	}

	// A new date starts over.
	env.now = env.now.AddDate(0, 0, 1)
	if _, err := env.attendance.RecordMemberAttendance(member.MemberID, ActionCheckIn); err != nil {
		t.Fatalf("check-in next day: %v", err)
	}
}

func TestMarkTogglesAttendance(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, "Monthly", 1000, 1)
	member := env.enroll(t, "Dana", pkg.ID)

	first, err := env.attendance.RecordMemberAttendance(member.MemberID, ActionMark)
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if first.CheckOut != nil {
		t.Errorf("first mark should check in only, got check-out %v", *first.CheckOut)
	}

	second, err := env.attendance.RecordMemberAttendance(member.MemberID, ActionMark)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if second.CheckOut == nil {
		t.Error("second mark should check out")
	}

	if _, err := env.attendance.RecordMemberAttendance(member.MemberID, ActionMark); !errors.Is(err, ErrInvalidState) {
		t.Errorf("third mark: expected ErrInvalidState, got %v", err)
	}
}

func TestStaffAttendanceIsIndependentOfMembers(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.staff.CreateStaffAccount(CreateStaffRequest{
		Username:     "trainer1",
		Password:     "secret1",
		StaffProfile: StaffProfile{Name: "Timur", Salary: decimal.NewFromInt(500)},
	}); err != nil {
		t.Fatalf("CreateStaffAccount: %v", err)
	}

	if _, err := env.attendance.RecordStaffAttendance("trainer1", ActionCheckIn); err != nil {
		t.Fatalf("staff check-in: %v", err)
	}
	if _, err := env.attendance.RecordStaffAttendance("trainer1", ActionCheckIn); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second staff check-in: expected ErrInvalidState, got %v", err)
	}
	if _, err := env.attendance.RecordStaffAttendance("ghost", ActionCheckIn); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown staff: expected ErrNotFound, got %v", err)
	}

	members, err := env.attendance.GetMemberAttendance("")
	if err != nil {
		t.Fatalf("GetMemberAttendance: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("member attendance should be empty, got %d", len(members))
	}
	staff, err := env.attendance.GetStaffAttendance(env.now.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetStaffAttendance: %v", err)
	}
	if len(staff) != 1 || staff[0].StaffName != "Timur" {
		t.Errorf("staff attendance = %+v", staff)
	}
}

func TestAttendanceRejectsBadDateAndUnknownMember(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.attendance.GetMemberAttendance("15/03/2024"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := env.attendance.RecordMemberAttendance(4040, ActionCheckIn); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

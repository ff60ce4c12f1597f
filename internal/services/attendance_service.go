package services

import (
	"errors"
	"fmt"
	"time"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"

	"github.com/jmoiron/sqlx"
)

// AttendanceAction is a transition request for one person's attendance today.
type AttendanceAction string

const (
	ActionCheckIn  AttendanceAction = "check-in"
	ActionCheckOut AttendanceAction = "check-out"
	// ActionMark checks in when there is no record today, otherwise checks out.
	ActionMark AttendanceAction = "mark"
)

// --- AttendanceService Interface ---
type AttendanceService interface {
	RecordMemberAttendance(memberID int64, action AttendanceAction) (*models.MemberAttendance, error)
	RecordStaffAttendance(username string, action AttendanceAction) (*models.StaffAttendance, error)
	GetMemberAttendance(date string) ([]models.MemberAttendance, error)
	GetStaffAttendance(date string) ([]models.StaffAttendance, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	memberRepo     repositories.MemberRepository
	staffRepo      repositories.StaffRepository
	db             *sqlx.DB
	clock          Clock
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	memberRepo repositories.MemberRepository,
	staffRepo repositories.StaffRepository,
	db *sqlx.DB,
	clock Clock,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		staffRepo:      staffRepo,
		db:             db,
		clock:          clock,
	}
}

// attendanceBook is one person's attendance on one date, bound to a transaction.
type attendanceBook struct {
	find     func() (*models.AttendanceRecord, error)
	checkIn  func(at string) error
	checkOut func(at string) (bool, error)
}

// advance runs the NoRecord -> CheckedIn -> CheckedOut state machine.
func advance(book attendanceBook, action AttendanceAction, now time.Time) (*models.AttendanceRecord, error) {
	current, err := book.find()
	if errors.Is(err, repositories.ErrNotFound) {
		current, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}

	if action == ActionMark {
		action = ActionCheckIn
		if current != nil {
			action = ActionCheckOut
		}
	}

	at := now.Format(models.TimeLayout)
	switch action {
	case ActionCheckIn:
		if current != nil {
			if current.CheckOut != nil {
				return nil, fmt.Errorf("%w: already checked out today", ErrInvalidState)
			}
			return nil, fmt.Errorf("%w: already checked in today", ErrInvalidState)
		}
		if err := book.checkIn(at); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return nil, fmt.Errorf("%w: already checked in today", ErrInvalidState)
			}
			return nil, fmt.Errorf("failed to record check-in: %w", err)
		}
		return &models.AttendanceRecord{Date: now.Format(models.DateLayout), CheckIn: at}, nil

	case ActionCheckOut:
		if current == nil {
			return nil, fmt.Errorf("%w: must check in first", ErrInvalidState)
		}
		if current.CheckOut != nil {
			return nil, fmt.Errorf("%w: already checked out today", ErrInvalidState)
		}
		closed, err := book.checkOut(at)
		if err != nil {
			return nil, fmt.Errorf("failed to record check-out: %w", err)
		}
		if !closed {
			return nil, fmt.Errorf("%w: already checked out today", ErrInvalidState)
		}
		current.CheckOut = &at
		return current, nil

	default:
		return nil, fmt.Errorf("%w: unknown attendance action %q", ErrValidation, action)
	}
}

func (s *attendanceService) RecordMemberAttendance(memberID int64, action AttendanceAction) (*models.MemberAttendance, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	member, err := s.memberRepo.GetMemberByID(tx, memberID)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("member %d", memberID))
	}

	now := s.clock.now()
	date := now.Format(models.DateLayout)
	rec, err := advance(attendanceBook{
		find: func() (*models.AttendanceRecord, error) {
			return s.attendanceRepo.GetMemberAttendance(tx, memberID, date)
		},
		checkIn: func(at string) error {
			return s.attendanceRepo.CreateMemberCheckIn(tx, memberID, date, at)
		},
		checkOut: func(at string) (bool, error) {
			return s.attendanceRepo.SetMemberCheckOut(tx, memberID, date, at)
		},
	}, action, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attendance: %w", err)
	}
	return &models.MemberAttendance{MemberID: memberID, MemberName: member.Name, AttendanceRecord: *rec}, nil
}

func (s *attendanceService) RecordStaffAttendance(username string, action AttendanceAction) (*models.StaffAttendance, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	staff, err := s.staffRepo.GetStaffByUsername(tx, username)
	if err != nil {
		return nil, mapNotFound(err, "staff "+username)
	}

	now := s.clock.now()
	date := now.Format(models.DateLayout)
	rec, err := advance(attendanceBook{
		find: func() (*models.AttendanceRecord, error) {
			return s.attendanceRepo.GetStaffAttendance(tx, username, date)
		},
		checkIn: func(at string) error {
			return s.attendanceRepo.CreateStaffCheckIn(tx, username, date, at)
		},
		checkOut: func(at string) (bool, error) {
			return s.attendanceRepo.SetStaffCheckOut(tx, username, date, at)
		},
	}, action, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attendance: %w", err)
	}
	return &models.StaffAttendance{Username: username, StaffName: staff.Name, AttendanceRecord: *rec}, nil
}

// attendanceDate defaults to today and rejects anything that is not YYYY-MM-DD.
func (s *attendanceService) attendanceDate(date string) (string, error) {
	if date == "" {
		return s.clock.now().Format(models.DateLayout), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return date, nil
}

func (s *attendanceService) GetMemberAttendance(date string) ([]models.MemberAttendance, error) {
	day, err := s.attendanceDate(date)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.GetMemberAttendanceByDate(s.db, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get member attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) GetStaffAttendance(date string) ([]models.StaffAttendance, error) {
	day, err := s.attendanceDate(date)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.GetStaffAttendanceByDate(s.db, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff attendance: %w", err)
	}
	return records, nil
}

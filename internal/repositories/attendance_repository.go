package repositories

import (
	"fmt"

	"gym_backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

// AttendanceRepository stores member and staff attendance as two independent
// record sets, each with at most one row per person per date.
type AttendanceRepository interface {
	GetMemberAttendance(executor SQLExecutor, memberID int64, date string) (*models.AttendanceRecord, error)
	CreateMemberCheckIn(executor SQLExecutor, memberID int64, date, checkIn string) error
	SetMemberCheckOut(executor SQLExecutor, memberID int64, date, checkOut string) (bool, error)
	GetMemberAttendanceByDate(executor SQLExecutor, date string) ([]models.MemberAttendance, error)
	CountMemberAttendanceByDay(executor SQLExecutor, monthPrefix string) ([]models.DayAttendance, error)
	ListAllMemberAttendance(executor SQLExecutor) ([]models.MemberAttendance, error)

	GetStaffAttendance(executor SQLExecutor, username, date string) (*models.AttendanceRecord, error)
	CreateStaffCheckIn(executor SQLExecutor, username, date, checkIn string) error
	SetStaffCheckOut(executor SQLExecutor, username, date, checkOut string) (bool, error)
	GetStaffAttendanceByDate(executor SQLExecutor, date string) ([]models.StaffAttendance, error)
	ListAllStaffAttendance(executor SQLExecutor) ([]models.StaffAttendance, error)
}

type attendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// --- Member attendance ---

func (r *attendanceRepository) GetMemberAttendance(executor SQLExecutor, memberID int64, date string) (*models.AttendanceRecord, error) {
	rec := &models.AttendanceRecord{}
	query := `SELECT attendance_date, check_in, check_out FROM member_attendance
	          WHERE member_id = $1 AND attendance_date = $2`
	if err := executor.Get(rec, query, memberID, date); err != nil {
		return nil, wrapGetErr(err, "getting member attendance")
	}
	return rec, nil
}

// CreateMemberCheckIn returns ErrDuplicateKey when the member already has a record for date.
func (r *attendanceRepository) CreateMemberCheckIn(executor SQLExecutor, memberID int64, date, checkIn string) error {
	_, err := executor.Exec(`INSERT INTO member_attendance (member_id, attendance_date, check_in) VALUES ($1, $2, $3)`,
		memberID, date, checkIn)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("member %d check-in on %s", memberID, date))
	}
	return nil
}

// SetMemberCheckOut reports false when there was no open check-in to close.
func (r *attendanceRepository) SetMemberCheckOut(executor SQLExecutor, memberID int64, date, checkOut string) (bool, error) {
	query := `UPDATE member_attendance SET check_out = $1
	          WHERE member_id = $2 AND attendance_date = $3 AND check_out IS NULL`
	res, err := executor.Exec(query, checkOut, memberID, date)
	if err != nil {
		return false, fmt.Errorf("%w: member %d check-out: %v", ErrDatabaseError, memberID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: member %d check-out: %v", ErrDatabaseError, memberID, err)
	}
	return n == 1, nil
}

func (r *attendanceRepository) GetMemberAttendanceByDate(executor SQLExecutor, date string) ([]models.MemberAttendance, error) {
	records := []models.MemberAttendance{}
	query := `SELECT a.member_id, COALESCE(m.name, '') AS member_name, a.attendance_date, a.check_in, a.check_out
	          FROM member_attendance a
	          LEFT JOIN members m ON m.member_id = a.member_id
	          WHERE a.attendance_date = $1
	          ORDER BY a.check_in`
	if err := executor.Select(&records, query, date); err != nil {
		return nil, fmt.Errorf("%w: listing member attendance for %s: %v", ErrDatabaseError, date, err)
	}
	return records, nil
}

func (r *attendanceRepository) CountMemberAttendanceByDay(executor SQLExecutor, monthPrefix string) ([]models.DayAttendance, error) {
	days := []models.DayAttendance{}
	query := `SELECT attendance_date, COUNT(*) AS count
	          FROM member_attendance
	          WHERE attendance_date LIKE $1
	          GROUP BY attendance_date
	          ORDER BY attendance_date`
	if err := executor.Select(&days, query, monthPrefix+"%"); err != nil {
		return nil, fmt.Errorf("%w: counting attendance for %s: %v", ErrDatabaseError, monthPrefix, err)
	}
	return days, nil
}

func (r *attendanceRepository) ListAllMemberAttendance(executor SQLExecutor) ([]models.MemberAttendance, error) {
	records := []models.MemberAttendance{}
	query := `SELECT member_id, attendance_date, check_in, check_out
	          FROM member_attendance ORDER BY attendance_date, member_id`
	if err := executor.Select(&records, query); err != nil {
		return nil, fmt.Errorf("%w: listing member attendance: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// --- Staff attendance ---

func (r *attendanceRepository) GetStaffAttendance(executor SQLExecutor, username, date string) (*models.AttendanceRecord, error) {
	rec := &models.AttendanceRecord{}
	query := `SELECT attendance_date, check_in, check_out FROM staff_attendance
	          WHERE username = $1 AND attendance_date = $2`
	if err := executor.Get(rec, query, username, date); err != nil {
		return nil, wrapGetErr(err, "getting staff attendance")
	}
	return rec, nil
}

func (r *attendanceRepository) CreateStaffCheckIn(executor SQLExecutor, username, date, checkIn string) error {
	_, err := executor.Exec(`INSERT INTO staff_attendance (username, attendance_date, check_in) VALUES ($1, $2, $3)`,
		username, date, checkIn)
	if err != nil {
		return wrapWriteErr(err, fmt.Sprintf("staff %q check-in on %s", username, date))
	}
	return nil
}

func (r *attendanceRepository) SetStaffCheckOut(executor SQLExecutor, username, date, checkOut string) (bool, error) {
	query := `UPDATE staff_attendance SET check_out = $1
	          WHERE username = $2 AND attendance_date = $3 AND check_out IS NULL`
	res, err := executor.Exec(query, checkOut, username, date)
	if err != nil {
		return false, fmt.Errorf("%w: staff %q check-out: %v", ErrDatabaseError, username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: staff %q check-out: %v", ErrDatabaseError, username, err)
	}
	return n == 1, nil
}

func (r *attendanceRepository) GetStaffAttendanceByDate(executor SQLExecutor, date string) ([]models.StaffAttendance, error) {
	records := []models.StaffAttendance{}
	query := `SELECT a.username, COALESCE(s.name, '') AS staff_name, a.attendance_date, a.check_in, a.check_out
	          FROM staff_attendance a
	          LEFT JOIN staff_accounts s ON s.username = a.username
	          WHERE a.attendance_date = $1
	          ORDER BY a.check_in`
	if err := executor.Select(&records, query, date); err != nil {
		return nil, fmt.Errorf("%w: listing staff attendance for %s: %v", ErrDatabaseError, date, err)
	}
	return records, nil
}

func (r *attendanceRepository) ListAllStaffAttendance(executor SQLExecutor) ([]models.StaffAttendance, error) {
	records := []models.StaffAttendance{}
	query := `SELECT username, attendance_date, check_in, check_out
	          FROM staff_attendance ORDER BY attendance_date, username`
	if err := executor.Select(&records, query); err != nil {
		return nil, fmt.Errorf("%w: listing staff attendance: %v", ErrDatabaseError, err)
	}
	return records, nil
}

package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// --- ReportService Interface ---
type ReportService interface {
	Dashboard() (*models.DashboardSummary, error)
	Overview() (*models.ReportsOverview, error)
	SalesReport(params models.ReportRequestParams) (*models.SalesReport, error)
	WriteSalesCSV(w io.Writer, report *models.SalesReport) error
}

type reportService struct {
	memberRepo     repositories.MemberRepository
	packageRepo    repositories.PackageRepository
	paymentRepo    repositories.PaymentRepository
	staffRepo      repositories.StaffRepository
	attendanceRepo repositories.AttendanceRepository
	saleRepo       repositories.SaleRepository
	db             *sqlx.DB
	clock          Clock
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	memberRepo repositories.MemberRepository,
	packageRepo repositories.PackageRepository,
	paymentRepo repositories.PaymentRepository,
	staffRepo repositories.StaffRepository,
	attendanceRepo repositories.AttendanceRepository,
	saleRepo repositories.SaleRepository,
	db *sqlx.DB,
	clock Clock,
) ReportService {
	return &reportService{
		memberRepo:     memberRepo,
		packageRepo:    packageRepo,
		paymentRepo:    paymentRepo,
		staffRepo:      staffRepo,
		attendanceRepo: attendanceRepo,
		saleRepo:       saleRepo,
		db:             db,
		clock:          clock,
	}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, value)
	}
	return t, nil
}

func (s *reportService) Dashboard() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	var err error

	if summary.TotalMembers, err = s.memberRepo.CountMembers(s.db); err != nil {
		return nil, err
	}
	month := s.clock.now().Format(monthLayout)
	if summary.MonthlyRevenue, err = s.paymentRepo.SumForPeriod(s.db, month); err != nil {
		return nil, err
	}
	if summary.TotalPackages, err = s.packageRepo.CountPackages(s.db); err != nil {
		return nil, err
	}
	if summary.TotalStaff, err = s.staffRepo.CountStaff(s.db); err != nil {
		return nil, err
	}
	if summary.RevenueByPackage, err = s.paymentRepo.RevenueByPackage(s.db); err != nil {
		return nil, err
	}
	if summary.MembersByPackage, err = s.memberRepo.CountByPackage(s.db); err != nil {
		return nil, err
	}
	return summary, nil
}

// Overview covers the current month, the six calendar months ending with
// it (oldest first), and today's member attendance.
func (s *reportService) Overview() (*models.ReportsOverview, error) {
	now := s.clock.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	overview := &models.ReportsOverview{LastSixMonths: make([]models.MonthRevenue, 0, 6)}

	for i := 5; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0).Format(monthLayout)
		revenue, err := s.paymentRepo.SumForPeriod(s.db, month)
		if err != nil {
			return nil, err
		}
		overview.LastSixMonths = append(overview.LastSixMonths, models.MonthRevenue{Month: month, Revenue: revenue})
	}
	overview.MonthlyRevenue = overview.LastSixMonths[len(overview.LastSixMonths)-1].Revenue

	var err error
	if overview.PackageDistribution, err = s.memberRepo.CountByPackage(s.db); err != nil {
		return nil, err
	}
	today, err := s.attendanceRepo.GetMemberAttendanceByDate(s.db, now.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	overview.TodayAttendance = len(today)
	if overview.AttendanceCalendar, err = s.attendanceRepo.CountMemberAttendanceByDay(s.db, firstOfMonth.Format(monthLayout)); err != nil {
		return nil, err
	}
	return overview, nil
}

// SalesReport lists sale lines dated within [StartDate, EndDate], both
// inclusive. Missing bounds default to today.
func (s *reportService) SalesReport(params models.ReportRequestParams) (*models.SalesReport, error) {
	today := s.clock.now().Format(models.DateLayout)
	if params.StartDate == "" {
		params.StartDate = today
	}
	if params.EndDate == "" {
		params.EndDate = today
	}
	start, err := parseDate(params.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(params.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrValidation)
	}

	until := end.AddDate(0, 0, 1).Format(models.DateLayout)
	lines, err := s.saleRepo.GetReportLines(s.db, params.StartDate, until)
	if err != nil {
		return nil, err
	}

	report := &models.SalesReport{
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Lines:       lines,
		TotalAmount: decimal.Zero,
	}
	seen := make(map[int64]struct{})
	for _, line := range lines {
		report.TotalAmount = report.TotalAmount.Add(line.LineTotal)
		seen[line.SaleID] = struct{}{}
	}
	report.SalesCount = len(seen)
	return report, nil
}

var salesCSVHeader = []string{
	"Sale ID", "Date", "Staff", "Payment Method",
	"Product Type", "Product ID", "Product", "Quantity", "Unit Price", "Line Total",
}

func (s *reportService) WriteSalesCSV(w io.Writer, report *models.SalesReport) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(salesCSVHeader); err != nil {
		return err
	}
	for _, line := range report.Lines {
		record := []string{
			utils.Int64ToStr(line.SaleID),
			line.SaleDate,
			line.StaffUsername,
			line.PaymentMethod,
			line.ProductType,
			utils.Int64ToStr(line.ProductID),
			line.ProductName,
			fmt.Sprint(line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.LineTotal.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"", "", "", "", "", "", "Total", "", "", report.TotalAmount.StringFixed(2)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

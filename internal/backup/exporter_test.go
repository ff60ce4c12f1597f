package backup

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gym_backoffice/internal/database"
	"gym_backoffice/internal/models"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/internal/testhelpers"

	"github.com/shopspring/decimal"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestExportWritesOneFilePerTable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repos := Repositories{
		Admins:         repositories.NewAuthRepository(db),
		Staff:          repositories.NewStaffRepository(db),
		Members:        repositories.NewMemberRepository(db),
		Packages:       repositories.NewPackageRepository(db),
		Payments:       repositories.NewPaymentRepository(db),
		Attendance:     repositories.NewAttendanceRepository(db),
		Inventory:      repositories.NewInventoryRepository(db),
		Movements:      repositories.NewStockMovementRepository(db),
		CustomProducts: repositories.NewCustomProductRepository(db),
		Sales:          repositories.NewSaleRepository(db),
	}

	pkg := &models.Package{ID: 1, Name: "Monthly, with sauna", Price: decimal.RequireFromString("1500.50"), DurationMonths: 1, SaunaAccess: true}
	if err := repos.Packages.CreatePackage(db, pkg); err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}

	sources := AllSources(repos)
	exporter := NewExporter(db, t.TempDir(), sources...)
	exporter.now = testhelpers.FixedClock(time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC))

	dir, err := exporter.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(dir) != "backup_20240315_103000" {
		t.Errorf("backup dir = %s", filepath.Base(dir))
	}

	for _, src := range sources {
		if _, err := os.Stat(filepath.Join(dir, src.Name+".csv")); err != nil {
			t.Errorf("missing %s.csv: %v", src.Name, err)
		}
	}

	records := readCSV(t, filepath.Join(dir, "packages.csv"))
	wantHeader := []string{"id", "name", "price", "duration_months", "trainers", "cardio_access", "sauna_access", "steam_room", "timings"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}
	if len(records) != 2 {
		t.Fatalf("packages.csv has %d rows, want 2", len(records))
	}
	if records[1][1] != "Monthly, with sauna" || records[1][2] != "1500.5" || records[1][6] != "true" {
		t.Errorf("row = %v", records[1])
	}

	if got := readCSV(t, filepath.Join(dir, "members.csv")); len(got) != 1 {
		t.Errorf("members.csv should hold only a header, got %d rows", len(got))
	}
}

func TestColumnsAndValues(t *testing.T) {
	type Inner struct {
		Code string `db:"code"`
	}
	type row struct {
		Inner
		ID      int64   `db:"id"`
		Note    *string `db:"note"`
		Skipped string  `db:"-"`
		Plain   string
		hidden  string `db:"hidden"`
	}

	note := "hello"
	tests := []struct {
		name string
		in   row
		want []string
	}{
		{name: "nil pointer is blank", in: row{Inner: Inner{Code: "A"}, ID: 7}, want: []string{"A", "7", ""}},
		{name: "pointer is dereferenced", in: row{Inner: Inner{Code: "B"}, ID: 8, Note: &note, hidden: "x"}, want: []string{"B", "8", "hello"}},
	}

	cols := columns(reflect.TypeOf(row{}))
	if want := []string{"code", "id", "note"}; !reflect.DeepEqual(cols, want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := values(reflect.ValueOf(tt.in)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotOptions(t *testing.T) {
	tests := []struct {
		driver string
		want   *sql.TxOptions
	}{
		{driver: database.DriverPostgres, want: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}},
		{driver: database.DriverSQLite, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := snapshotOptions(tt.driver); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("snapshotOptions(%q) = %+v, want %+v", tt.driver, got, tt.want)
			}
		})
	}
}

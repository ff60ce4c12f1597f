package backup

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"gym_backoffice/internal/database"
	"gym_backoffice/internal/repositories"
	"gym_backoffice/pkg/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// DirLayout names each backup directory.
const DirLayout = "backup_20060102_150405"

// table is a loaded snapshot of one entity table.
type table struct {
	header []string
	rows   [][]string
}

// Source is one table to export.
type Source struct {
	Name string
	load func(executor repositories.SQLExecutor) (*table, error)
}

// TableSource adapts a repository ListAll method into a Source. Columns are
// taken from the `db` tags of T.
func TableSource[T any](name string, list func(executor repositories.SQLExecutor) ([]T, error)) Source {
	return Source{
		Name: name,
		load: func(executor repositories.SQLExecutor) (*table, error) {
			records, err := list(executor)
			if err != nil {
				return nil, err
			}
			return tabulate(records), nil
		},
	}
}

// Exporter writes every source to CSV files under a timestamped directory.
type Exporter struct {
	db      *sqlx.DB
	baseDir string
	sources []Source
	now     func() time.Time
}

// NewExporter creates an Exporter rooted at baseDir.
func NewExporter(db *sqlx.DB, baseDir string, sources ...Source) *Exporter {
	return &Exporter{db: db, baseDir: baseDir, sources: sources, now: time.Now}
}

// Export reads all sources inside one transaction so the files agree with
// each other, then writes them concurrently. It returns the directory written.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	tables, err := e.snapshot(ctx)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(e.baseDir, e.now().Format(DirLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range e.sources {
		path := filepath.Join(dir, src.Name+".csv")
		t := tables[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeCSV(path, t)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	utils.LogInfo("Backup written", map[string]interface{}{"dir": dir, "tables": len(e.sources)})
	return dir, nil
}

// snapshotOptions asks PostgreSQL for one read-only view across all reads.
// A SQLite transaction is already a single snapshot, and the driver rejects
// non-default options.
func snapshotOptions(driver string) *sql.TxOptions {
	if driver == database.DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

func (e *Exporter) snapshot(ctx context.Context) ([]*table, error) {
	tx, err := e.db.BeginTxx(ctx, snapshotOptions(e.db.DriverName()))
	if err != nil {
		return nil, fmt.Errorf("failed to start backup transaction: %w", err)
	}
	defer tx.Rollback()

	tables := make([]*table, len(e.sources))
	for i, src := range e.sources {
		t, err := src.load(tx)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.Name, err)
		}
		tables[i] = t
	}
	return tables, nil
}

func writeCSV(path string, t *table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return err
	}
	if err := w.WriteAll(t.rows); err != nil {
		return err
	}
	return w.Error()
}

func tabulate[T any](records []T) *table {
	t := &table{header: columns(reflect.TypeOf((*T)(nil)).Elem())}
	t.rows = make([][]string, 0, len(records))
	for i := range records {
		t.rows = append(t.rows, values(reflect.ValueOf(records[i])))
	}
	return t
}

// columns lists the db-tagged fields of a struct type, descending into
// untagged embedded structs.
func columns(typ reflect.Type) []string {
	var cols []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("db")
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			cols = append(cols, columns(f.Type)...)
			continue
		}
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		cols = append(cols, tag)
	}
	return cols
}

func values(v reflect.Value) []string {
	typ := v.Type()
	var out []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("db")
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			out = append(out, values(v.Field(i))...)
			continue
		}
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		out = append(out, format(v.Field(i)))
	}
	return out
}

func format(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

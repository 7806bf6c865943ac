//go:build integration
// +build integration

package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/xuri/excelize/v2"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "hspulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=hspulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "hspulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/ingestion → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

// writeWorkbookFile writes a product workbook with one sheet per code.
func writeWorkbookFile(t *testing.T, dir, name string, sheets []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		rows := [][]interface{}{
			{"Importers", 2013, 2014},
			{"World", 100, 110},
			{"India", 40, 44},
			{"Exporters", 2013, 2014},
			{"World", 200, 220},
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	full := filepath.Join(dir, name)
	if err := f.SaveAs(full); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return full
}

func TestProcessWorkbooks_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	dir := t.TempDir()
	path := writeWorkbookFile(t, dir, "diamonds.xlsx", []string{"710210", "710221"})

	src := WorkbookSource{
		Path: path,
		Dataset: Dataset{
			Name: "hs7102",
			Sheets: map[string]models.SheetSpec{
				"710210": {Code: "710210", Description: "Unsorted"},
				"710221": {Code: "710221", Description: "Industrial"},
			},
			Taxonomy: map[string]models.Taxonomy{
				"710210": {Group: "Rough Diamonds", Subgroup: "Unsorted"},
			},
		},
	}
	key := "hs7102:" + path

	cache := NewDatasetCache()
	if err := ProcessWorkbooks(context.Background(), []WorkbookSource{src}, db, cache, false); err != nil {
		t.Fatalf("process: %v", err)
	}

	// Per sheet: imports 2 countries x 2 years + exports 1 country x 2 years = 6.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trade_records WHERE source=$1`, key).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 12 {
		t.Fatalf("rows: want 12 got %d", count)
	}

	var group string
	err := db.QueryRow(`SELECT product_group FROM trade_records WHERE source=$1 AND code='710210' LIMIT 1`, key).Scan(&group)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if group != "Rough Diamonds" {
		t.Fatalf("taxonomy not persisted: %q", group)
	}

	// A second run without force is a no-op.
	if err := ProcessWorkbooks(context.Background(), []WorkbookSource{src}, db, cache, false); err != nil {
		t.Fatalf("second process: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM trade_records WHERE source=$1`, key).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 12 {
		t.Fatalf("rows after skip: want 12 got %d", count)
	}

	// Force reloads without duplicating.
	if err := ProcessWorkbooks(context.Background(), []WorkbookSource{src}, db, cache, true); err != nil {
		t.Fatalf("forced process: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM trade_records WHERE source=$1`, key).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 12 {
		t.Fatalf("rows after force: want 12 got %d", count)
	}
}

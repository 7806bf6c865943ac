package storage

import (
	"database/sql"
	"time"

	pq "github.com/lib/pq"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// RecordsRepository is the archival sink for normalized trade records.
// The API serves from the in-memory dataset cache; the repository exists so
// ingest runs can persist each parsed workbook for downstream consumers.
type RecordsRepository interface {
	InsertRecordsBatch(source string, records []models.TradeRecord) error
	HasIngestionForSource(source string) (bool, error)
	UpsertIngestionLog(source, dataset string, rowCount int) error
	DeleteRecordsBySource(source string) error
	CountRecordsBySource(source string) (int, error)
}

type recordsRepository struct {
	db *sql.DB
}

func NewRecordsRepository(db *sql.DB) RecordsRepository {
	return &recordsRepository{db: db}
}

// InsertRecordsBatch bulk-loads one batch of records in a single
// transaction using COPY. A nil Value becomes SQL NULL; missing is distinct
// from zero all the way into the table.
func (r *recordsRepository) InsertRecordsBatch(source string, records []models.TradeRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Bulk-load friendly setting, scoped to this transaction.
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"trade_records",
		"source",
		"code",
		"description",
		"country",
		"year",
		"flow",
		"value",
		"product_group",
		"product_subgroup",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	toNull := func(v *float64) interface{} {
		if v == nil {
			return nil
		}
		return *v
	}

	for _, rec := range records {
		if _, err := stmt.Exec(
			source,
			rec.Code,
			rec.Description,
			rec.Country,
			rec.Year,
			string(rec.Flow),
			toNull(rec.Value),
			rec.Group,
			rec.Subgroup,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForSource checks whether a source workbook was already loaded.
func (r *recordsRepository) HasIngestionForSource(source string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE source = $1)`, source).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) the ingestion entry for a source.
func (r *recordsRepository) UpsertIngestionLog(source, dataset string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (source, dataset, row_count, ingested_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source)
		DO UPDATE SET dataset = EXCLUDED.dataset, row_count = EXCLUDED.row_count, ingested_at = EXCLUDED.ingested_at`,
		source, dataset, rowCount, time.Now().UTC(),
	)
	return err
}

// DeleteRecordsBySource removes all records of one source, for forced
// re-ingestion.
func (r *recordsRepository) DeleteRecordsBySource(source string) error {
	_, err := r.db.Exec(`DELETE FROM trade_records WHERE source = $1`, source)
	return err
}

// CountRecordsBySource reports how many rows a source has in the table.
func (r *recordsRepository) CountRecordsBySource(source string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trade_records WHERE source = $1`, source).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

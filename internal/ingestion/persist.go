package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mfontes/hspulse/internal/storage"
)

const defaultBatchSize = 5000

// WorkbookSource names one workbook file and the dataset family it carries.
type WorkbookSource struct {
	Path    string
	Dataset Dataset
}

// repoCtor is an indirection for creating the repository; tests override it.
var repoCtor = func(db *sql.DB) storage.RecordsRepository {
	return storage.NewRecordsRepository(db)
}

// ProcessWorkbooks parses each configured workbook and archives the
// normalized records in Postgres.
//
// Behavior:
//   - Every listed file must exist before any parsing starts.
//   - Workbooks are processed concurrently; the first error cancels the rest.
//   - A source already present in the ingestion log is skipped unless force,
//     in which case its records are deleted and reloaded.
//   - Records are inserted in batches via the repository.
func ProcessWorkbooks(ctx context.Context, sources []WorkbookSource, db *sql.DB, cache *DatasetCache, force bool) error {
	repo := repoCtor(db)

	var missing []string
	for _, src := range sources {
		if _, err := os.Stat(src.Path); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, src.Path)
				continue
			}
			return fmt.Errorf("stat failed for %s: %w", src.Path, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing workbook files: %v", missing)
	}

	ilog().Info().Int("workbooks", len(sources)).Msg("ingest start")

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			start := time.Now()
			key := src.Dataset.Name + ":" + src.Path

			exists, err := repo.HasIngestionForSource(key)
			if err != nil {
				return fmt.Errorf("workbook %s: check ingestion log: %w", src.Path, err)
			}
			if exists && !force {
				ilog().Info().Str("source", key).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			if exists && force {
				if err := repo.DeleteRecordsBySource(key); err != nil {
					return fmt.Errorf("workbook %s: delete existing: %w", src.Path, err)
				}
			}

			recs, err := LoadFromPath(cache, src.Path, src.Dataset)
			if err != nil {
				return fmt.Errorf("workbook %s: %w", src.Path, err)
			}

			for lo := 0; lo < len(recs); lo += defaultBatchSize {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				hi := lo + defaultBatchSize
				if hi > len(recs) {
					hi = len(recs)
				}
				if err := repo.InsertRecordsBatch(key, recs[lo:hi]); err != nil {
					return fmt.Errorf("workbook %s: insert batch: %w", src.Path, err)
				}
			}

			if err := repo.UpsertIngestionLog(key, src.Dataset.Name, len(recs)); err != nil {
				return fmt.Errorf("workbook %s: upsert ingestion log: %w", src.Path, err)
			}
			ilog().Info().Str("source", key).Int("rows", len(recs)).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("workbook done")
			return nil
		})
	}

	return g.Wait()
}

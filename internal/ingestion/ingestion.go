package ingestion

import (
	"github.com/rs/zerolog"

	"github.com/mfontes/hspulse/internal/domain/models"
	"github.com/mfontes/hspulse/internal/logger"
)

// ilog returns the component-tagged logger for this package. Resolved per
// call so it follows logger re-initialization.
func ilog() *zerolog.Logger {
	l := logger.With("ingestion")
	return &l
}

// Dataset bundles the configuration of one product family: which sheets to
// parse, which taxonomy to attach, and how to locate the sheets.
type Dataset struct {
	Name     string
	Sheets   map[string]models.SheetSpec
	Taxonomy map[string]models.Taxonomy
	Options  AssembleOptions
}

// DiamondDataset7102 is the HS 7102 family: sheets named by bare code,
// exact matching only.
func DiamondDataset7102() Dataset {
	return Dataset{
		Name:     "hs7102",
		Sheets:   models.DiamondSheets7102,
		Taxonomy: models.DiamondTaxonomy7102,
	}
}

// LabGrownDataset7104 is the HS 7104 family: descriptive sheet names, so
// the substring locator is enabled as a fallback.
func LabGrownDataset7104() Dataset {
	return Dataset{
		Name:     "hs7104",
		Sheets:   models.LabGrownSheets7104,
		Taxonomy: models.LabGrownTaxonomy7104,
		Options:  AssembleOptions{ContainsFallback: true},
	}
}

// openWorkbook is an indirection over OpenWorkbook; tests override it to
// count opens and to feed in-memory grids.
var openWorkbook = OpenWorkbook

// LoadFromPath parses the workbook at path for one dataset family, going
// through cache keyed by the path. The second and later calls for the same
// path return the cached record set without touching the file.
func LoadFromPath(cache *DatasetCache, path string, ds Dataset) ([]models.TradeRecord, error) {
	return cache.Get(ds.Name+":"+path, func() ([]models.TradeRecord, error) {
		wb, closeFn, err := openWorkbook(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeFn() }()

		recs, err := BuildDataset(wb, ds.Sheets, ds.Taxonomy, ds.Options)
		if err != nil {
			return nil, err
		}
		ilog().Info().Str("dataset", ds.Name).Str("path", path).Int("records", len(recs)).Msg("dataset parsed")
		return recs, nil
	})
}

// LoadFromBytes parses an in-memory workbook for one dataset family, keyed
// by content hash so identical uploads share a cache entry.
func LoadFromBytes(cache *DatasetCache, data []byte, ds Dataset) ([]models.TradeRecord, error) {
	return cache.Get(ds.Name+":"+ContentKey(data), func() ([]models.TradeRecord, error) {
		wb, closeFn, err := OpenWorkbookBytes(data)
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeFn() }()

		recs, err := BuildDataset(wb, ds.Sheets, ds.Taxonomy, ds.Options)
		if err != nil {
			return nil, err
		}
		ilog().Info().Str("dataset", ds.Name).Int("bytes", len(data)).Int("records", len(recs)).Msg("dataset parsed")
		return recs, nil
	})
}

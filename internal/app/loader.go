package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfontes/hspulse/config"
	"github.com/mfontes/hspulse/internal/domain/models"
	"github.com/mfontes/hspulse/internal/ingestion"
	"github.com/mfontes/hspulse/internal/service"
)

// datasetLoader backs service.Loader with the ingestion cache and the
// configured workbook files. Trade datasets go through the shared cache;
// the production file is parsed once per process.
type datasetLoader struct {
	cache *ingestion.DatasetCache
	cfg   config.Config

	prodOnce sync.Once
	prod     []models.ProductionRecord
	prodErr  error
}

var _ service.Loader = (*datasetLoader)(nil)

func newDatasetLoader(cache *ingestion.DatasetCache, cfg config.Config) *datasetLoader {
	return &datasetLoader{cache: cache, cfg: cfg}
}

func (l *datasetLoader) Trade(_ context.Context, family string) ([]models.TradeRecord, error) {
	switch family {
	case "", "hs7102":
		return ingestion.LoadFromPath(l.cache, l.cfg.Workbooks.Trade7102File, ingestion.DiamondDataset7102())
	case "hs7104":
		return ingestion.LoadFromPath(l.cache, l.cfg.Workbooks.Lab7104File, ingestion.LabGrownDataset7104())
	default:
		return nil, fmt.Errorf("unknown dataset family %q", family)
	}
}

func (l *datasetLoader) Production(_ context.Context) ([]models.ProductionRecord, error) {
	l.prodOnce.Do(func() {
		l.prod, l.prodErr = ingestion.LoadProductionFromPath(l.cfg.Workbooks.ProductionFile)
	})
	return l.prod, l.prodErr
}

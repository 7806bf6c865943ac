package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// Loader supplies parsed datasets to the service. The production wiring
// backs it with the ingestion cache, so repeated calls do not re-parse.
type Loader interface {
	Trade(ctx context.Context, family string) ([]models.TradeRecord, error)
	Production(ctx context.Context) ([]models.ProductionRecord, error)
}

// Filter narrows the long-form record set. Zero values mean "no constraint".
type Filter struct {
	Family    string // "hs7102" (default) or "hs7104"
	Flow      models.Flow
	Codes     []string
	Groups    []string
	Subgroups []string
	Countries []string
	YearFrom  int
	YearTo    int
}

// PartnersQuery describes a top-N partner ranking snapshot.
type PartnersQuery struct {
	Filter
	Year      int
	TopN      int
	WithShare bool
}

// DatasetService exposes the normalized record set to the presentation
// layer: filtered records, world totals per year, and partner rankings.
type DatasetService interface {
	Records(ctx context.Context, f Filter) ([]models.TradeRecord, error)
	WorldSeries(ctx context.Context, f Filter) ([]models.WorldPoint, error)
	TopPartners(ctx context.Context, q PartnersQuery) ([]models.PartnerRank, error)
	Production(ctx context.Context) ([]models.ProductionRecord, error)
}

type datasetService struct {
	loader Loader
}

func NewDatasetService(loader Loader) DatasetService {
	return &datasetService{loader: loader}
}

// Records returns the filtered long-form record set.
func (s *datasetService) Records(ctx context.Context, f Filter) ([]models.TradeRecord, error) {
	recs, err := s.loader.Trade(ctx, f.Family)
	if err != nil {
		return nil, err
	}
	return applyFilter(recs, f), nil
}

// WorldSeries computes per-year totals for both flows over the filtered
// set. The "World" aggregate row is used when the sheet carries one;
// otherwise the partner rows are summed. Balance is Exports minus Imports.
func (s *datasetService) WorldSeries(ctx context.Context, f Filter) ([]models.WorldPoint, error) {
	recs, err := s.loader.Trade(ctx, f.Family)
	if err != nil {
		return nil, err
	}
	return worldSeries(applyFilter(recs, f)), nil
}

// TopPartners ranks partners for one (flow, year) snapshot, collapsing
// everything past TopN into an "Others" row. The World row never appears as
// a partner. Share is percent of the world total for that year and flow.
func (s *datasetService) TopPartners(ctx context.Context, q PartnersQuery) ([]models.PartnerRank, error) {
	if q.Flow == "" {
		return nil, fmt.Errorf("flow is required for partner ranking")
	}
	if q.TopN <= 0 {
		q.TopN = 10
	}
	recs, err := s.loader.Trade(ctx, q.Family)
	if err != nil {
		return nil, err
	}
	base := applyFilter(recs, q.Filter)

	totals := make(map[string]float64)
	for _, r := range base {
		if r.Year != q.Year || r.Flow != q.Flow || !r.HasValue() || isWorld(r.Country) {
			continue
		}
		totals[r.Country] += *r.Value
	}
	if len(totals) == 0 {
		return nil, nil
	}

	type kv struct {
		country string
		value   float64
	}
	ranked := make([]kv, 0, len(totals))
	for c, v := range totals {
		ranked = append(ranked, kv{c, v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].country < ranked[j].country
	})

	var worldTotal float64
	if q.WithShare {
		for _, p := range worldSeries(base) {
			if p.Year == q.Year {
				if q.Flow == models.FlowImports {
					worldTotal = p.Imports
				} else {
					worldTotal = p.Exports
				}
			}
		}
	}
	share := func(v float64) float64 {
		if !q.WithShare || worldTotal <= 0 {
			return 0
		}
		return v / worldTotal * 100
	}

	n := q.TopN
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]models.PartnerRank, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, models.PartnerRank{
			Rank:    i + 1,
			Country: ranked[i].country,
			Value:   ranked[i].value,
			Share:   share(ranked[i].value),
		})
	}

	var others float64
	for _, r := range ranked[n:] {
		others += r.value
	}
	if others > 0 {
		out = append(out, models.PartnerRank{
			Rank:    n + 1,
			Country: "Others",
			Value:   others,
			Share:   share(others),
		})
	}
	return out, nil
}

// Production returns the yearly production dataset.
func (s *datasetService) Production(ctx context.Context) ([]models.ProductionRecord, error) {
	return s.loader.Production(ctx)
}

func applyFilter(recs []models.TradeRecord, f Filter) []models.TradeRecord {
	codes := toSet(f.Codes)
	groups := toSet(f.Groups)
	subgroups := toSet(f.Subgroups)
	countries := toSet(f.Countries)

	var out []models.TradeRecord
	for _, r := range recs {
		if f.Flow != "" && r.Flow != f.Flow {
			continue
		}
		if f.YearFrom != 0 && r.Year < f.YearFrom {
			continue
		}
		if f.YearTo != 0 && r.Year > f.YearTo {
			continue
		}
		if codes != nil && !codes[strings.ToLower(r.Code)] {
			continue
		}
		if groups != nil && !groups[strings.ToLower(r.Group)] {
			continue
		}
		if subgroups != nil && !subgroups[strings.ToLower(r.Subgroup)] {
			continue
		}
		if countries != nil && !countries[strings.ToLower(r.Country)] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return m
}

func isWorld(country string) bool {
	return strings.EqualFold(strings.TrimSpace(country), "world")
}

// worldSeries aggregates per (year, flow): World rows when any exist in the
// set, else the sum over partners.
func worldSeries(recs []models.TradeRecord) []models.WorldPoint {
	hasWorld := false
	for _, r := range recs {
		if isWorld(r.Country) {
			hasWorld = true
			break
		}
	}

	type key struct {
		year int
		flow models.Flow
	}
	sums := make(map[key]float64)
	for _, r := range recs {
		if !r.HasValue() {
			continue
		}
		if hasWorld != isWorld(r.Country) {
			continue
		}
		sums[key{r.Year, r.Flow}] += *r.Value
	}

	yearSet := make(map[int]bool)
	for k := range sums {
		yearSet[k.year] = true
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]models.WorldPoint, 0, len(years))
	for _, y := range years {
		imp := sums[key{y, models.FlowImports}]
		exp := sums[key{y, models.FlowExports}]
		out = append(out, models.WorldPoint{Year: y, Imports: imp, Exports: exp, Balance: exp - imp})
	}
	return out
}

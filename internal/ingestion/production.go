package ingestion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// productionColumns maps source header names to canonical fields. The
// production workbook has a fixed, named header row, so this loader is a
// straight rename-and-coerce path with no heuristic detection.
var productionColumns = map[string]string{
	"Country Name":    "country",
	"Year":            "year",
	"Quarter":         "quarter",
	"Trade Type":      "trade_type",
	"Production Type": "production_type",
	"Carat":           "carat",
	"US Value":        "us_value",
}

var productionRequired = []string{"country", "year", "trade_type", "production_type", "carat", "us_value"}

// LoadProductionFromPath parses the production workbook at path through the
// cache-independent simple path (the production file is read once at
// startup and is not part of the trade dataset cache).
func LoadProductionFromPath(path string) ([]models.ProductionRecord, error) {
	wb, closeFn, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()
	return parseProduction(wb)
}

// productionKey identifies one yearly observation. The Quarter column is
// deliberately absent: quarterly rows collapse into it.
type productionKey struct {
	country        string
	year           int
	tradeType      string
	productionType string
}

// parseProduction reads the first sheet of the production workbook. Row 0
// is the header; every required column must be present by its exact trimmed
// name. Rows missing country or year are dropped. The source file carries
// quarterly rows, but the dataset is served yearly: rows sharing (country,
// year, trade type, production type) are summed over carat and US value. A
// measure stays nil only when no row of the group had a numeric cell.
func parseProduction(wb Workbook) ([]models.ProductionRecord, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("production workbook has no sheets")
	}
	grid, err := wb.Rows(names[0])
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("production sheet %q is empty", names[0])
	}

	// Resolve column positions from the header row.
	pos := make(map[string]int, len(productionColumns))
	for j, h := range grid[0] {
		if canon, ok := productionColumns[strings.TrimSpace(h)]; ok {
			if _, dup := pos[canon]; !dup {
				pos[canon] = j
			}
		}
	}
	var missing []string
	for _, canon := range productionRequired {
		if _, ok := pos[canon]; !ok {
			missing = append(missing, canon)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("production file is missing required columns: %s", strings.Join(missing, ", "))
	}

	sums := make(map[productionKey]*models.ProductionRecord)
	for r := 1; r < len(grid); r++ {
		country := strings.TrimSpace(cell(grid, r, pos["country"]))
		if country == "" {
			continue
		}
		year, ok := intCell(cell(grid, r, pos["year"]))
		if !ok {
			continue
		}

		key := productionKey{
			country:        country,
			year:           year,
			tradeType:      strings.TrimSpace(cell(grid, r, pos["trade_type"])),
			productionType: strings.TrimSpace(cell(grid, r, pos["production_type"])),
		}
		rec, seen := sums[key]
		if !seen {
			rec = &models.ProductionRecord{
				Country:        key.country,
				Year:           key.year,
				TradeType:      key.tradeType,
				ProductionType: key.productionType,
			}
			sums[key] = rec
		}
		if v, ok := numericValue(cell(grid, r, pos["carat"])); ok {
			if rec.Carat == nil {
				rec.Carat = new(float64)
			}
			*rec.Carat += v
		}
		if v, ok := numericValue(cell(grid, r, pos["us_value"])); ok {
			if rec.USValue == nil {
				rec.USValue = new(float64)
			}
			*rec.USValue += v
		}
	}

	out := make([]models.ProductionRecord, 0, len(sums))
	for _, rec := range sums {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.TradeType != b.TradeType {
			return a.TradeType < b.TradeType
		}
		return a.ProductionType < b.ProductionType
	})

	ilog().Info().Str("sheet", names[0]).Int("records", len(out)).Msg("production parsed")
	return out, nil
}

// intCell coerces a cell to an integer, accepting integral floats the way
// spreadsheets often serialize years ("2013.0").
func intCell(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}

package ingestion

import (
	"strconv"
	"strings"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// parseBlock extracts one flow's sub-table from the grid and reshapes it
// wide-to-long.
//
// headerRow is the row expected to carry the year columns; endRow is the
// exclusive lower bound of the block. When the header row encodes no years
// the row below it is tried once and, if it matches, becomes the effective
// header (the data then starts one row lower). Both attempts failing is a
// NoYearColumnsError for the given flow.
//
// Row handling follows the source conventions:
//   - a blank column-0 cell drops the whole row (no country, no record);
//   - a value that fails numeric coercion keeps the row with a nil value.
func parseBlock(grid [][]string, headerRow, endRow int, flow models.Flow) ([]models.TradeRecord, error) {
	years, cols := detectYearColumns(rowAt(grid, headerRow))

	// Fallback: sometimes the year columns sit one row below the marker.
	if len(years) == 0 && headerRow+1 < len(grid) {
		if y2, c2 := detectYearColumns(rowAt(grid, headerRow+1)); len(y2) > 0 {
			headerRow++
			years, cols = y2, c2
		}
	}
	if len(years) == 0 {
		return nil, &NoYearColumnsError{Flow: flow}
	}

	// Two header cells can resolve to the same year (duplicate text headers);
	// keep the first column so (country, year, flow) stays unique.
	years, cols = dedupeYears(years, cols)

	var out []models.TradeRecord
	for r := headerRow + 1; r < endRow && r < len(grid); r++ {
		country := strings.TrimSpace(cell(grid, r, 0))
		if country == "" {
			continue
		}
		for i, col := range cols {
			rec := models.TradeRecord{
				Country: country,
				Year:    years[i],
				Flow:    flow,
			}
			if v, ok := numericValue(cell(grid, r, col)); ok {
				rec.Value = &v
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// dedupeYears drops later columns whose year was already seen, preserving
// order of first appearance.
func dedupeYears(years, cols []int) ([]int, []int) {
	seen := make(map[int]bool, len(years))
	outY := years[:0]
	outC := cols[:0]
	for i, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		outY = append(outY, y)
		outC = append(outC, cols[i])
	}
	return outY, outC
}

// numericValue coerces a cell to a float, tolerating thousands separators.
// It reports false for blank or non-numeric cells.
func numericValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func rowAt(grid [][]string, r int) []string {
	if r < 0 || r >= len(grid) {
		return nil
	}
	return grid[r]
}

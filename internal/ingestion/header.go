package ingestion

import (
	"regexp"
	"strconv"
	"strings"
)

// Year headers appear in three encodings across TradeMap-style sheets:
// a bare integer (2013), an integral float (2013.0), or a text label that
// embeds the year ("Imported value in 2013").
var yearTokenRe = regexp.MustCompile(`(19\d{2}|20\d{2})`)

const (
	minYear = 1900
	maxYear = 2100
)

// detectYearColumns scans one header row and returns the years it encodes
// together with their column indices, as parallel slices. Column 0 is the
// country column and is never considered, whatever it contains. Cells that
// match none of the three encodings are ignored; both slices are empty when
// the row carries no years at all.
func detectYearColumns(row []string) (years []int, cols []int) {
	for j, raw := range row {
		if j == 0 {
			continue
		}
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}

		if y, ok := numericYear(s); ok {
			years = append(years, y)
			cols = append(cols, j)
			continue
		}

		// Text header: first 4-digit token starting 19/20 wins, one per cell.
		if m := yearTokenRe.FindString(s); m != "" {
			y, _ := strconv.Atoi(m)
			years = append(years, y)
			cols = append(cols, j)
		}
	}
	return years, cols
}

// numericYear reports whether s is an integer, or an integral-valued float,
// inside the accepted year range.
func numericYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		if y >= minYear && y <= maxYear {
			return y, true
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	y := int(f)
	if y >= minYear && y <= maxYear {
		return y, true
	}
	return 0, false
}

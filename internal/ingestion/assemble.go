package ingestion

import (
	"sort"
	"strings"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// AssembleOptions tunes how the assembler resolves product codes to sheets.
type AssembleOptions struct {
	// ContainsFallback enables the substring locator when the exact match
	// fails, for workbooks whose sheets are named descriptively around the
	// code instead of being the bare code.
	ContainsFallback bool
}

// BuildDataset parses every configured product sheet of a workbook into one
// concatenated long-form record set with the taxonomy attached.
//
// Resolution per code: exact match first, substring match when enabled. A
// code with no resolvable sheet is skipped silently; workbooks legitimately
// ship subsets of the configured codes. A sheet that resolves but fails to
// parse is a hard error: a partial dataset must never be mistaken for a
// complete one. Zero parsed sheets across the whole mapping is
// ErrEmptyDataset.
//
// The sheetSpecs and taxonomy tables are caller-supplied data (see
// models.DiamondSheets7102 and friends); nothing is inferred from the file.
func BuildDataset(wb Workbook, sheetSpecs map[string]models.SheetSpec, taxonomy map[string]models.Taxonomy, opts AssembleOptions) ([]models.TradeRecord, error) {
	// Deterministic iteration keeps output order stable across calls.
	codes := make([]string, 0, len(sheetSpecs))
	for code := range sheetSpecs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var out []models.TradeRecord
	parsed := 0
	for _, code := range codes {
		spec := sheetSpecs[code]
		name, ok := findSheetExact(wb, code)
		if !ok && opts.ContainsFallback {
			name, ok = findSheetContains(wb, code)
		}
		if !ok {
			ilog().Debug().Str("code", code).Msg("no sheet for code, skipping")
			continue
		}

		recs, err := parseSheet(wb, name, spec.Code, spec.Description)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
		parsed++
		ilog().Debug().Str("code", code).Str("sheet", name).Int("records", len(recs)).Msg("sheet parsed")
	}
	if parsed == 0 {
		return nil, ErrEmptyDataset
	}

	for i := range out {
		if t, ok := taxonomy[out[i].Code]; ok {
			out[i].Group = t.Group
			out[i].Subgroup = t.Subgroup
		}
		out[i].Country = strings.TrimSpace(out[i].Country)
	}
	return out, nil
}

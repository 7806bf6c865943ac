package ingestion

import (
	"strings"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// parseSheet parses one product sheet containing both flow blocks and
// returns its long-form records stamped with the product code and
// description.
//
// Layout convention (TradeMap exports): column 0 carries the literal marker
// labels "Importers" and "Exporters"; the imports block is everything
// strictly between the two markers, the exports block runs from below the
// exporters marker to the last row with a non-blank country cell. Both
// markers are required.
func parseSheet(wb Workbook, sheetName, code, desc string) ([]models.TradeRecord, error) {
	grid, err := wb.Rows(sheetName)
	if err != nil {
		return nil, err
	}

	impRow, expRow := -1, -1
	for r := range grid {
		switch strings.ToLower(strings.TrimSpace(cell(grid, r, 0))) {
		case "importers":
			if impRow < 0 {
				impRow = r
			}
		case "exporters":
			if expRow < 0 {
				expRow = r
			}
		}
	}
	if impRow < 0 {
		return nil, &StructuralError{Sheet: sheetName, Reason: `marker row "Importers" not found`}
	}
	if expRow < 0 {
		return nil, &StructuralError{Sheet: sheetName, Reason: `marker row "Exporters" not found`}
	}

	// Exports block ends at the last non-blank country row below the marker.
	expEnd := -1
	for r := len(grid) - 1; r > expRow; r-- {
		if strings.TrimSpace(cell(grid, r, 0)) != "" {
			expEnd = r
			break
		}
	}
	if expEnd < 0 {
		return nil, &StructuralError{Sheet: sheetName, Reason: "exports block has no data rows"}
	}

	imports, err := parseBlock(grid, impRow, expRow, models.FlowImports)
	if err != nil {
		return nil, err
	}
	exports, err := parseBlock(grid, expRow, expEnd+1, models.FlowExports)
	if err != nil {
		return nil, err
	}

	out := append(imports, exports...)
	for i := range out {
		out[i].Code = code
		out[i].Description = desc
	}
	return out, nil
}

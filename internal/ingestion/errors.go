package ingestion

import (
	"errors"
	"fmt"

	"github.com/mfontes/hspulse/internal/domain/models"
)

// ErrEmptyDataset is returned by the assembler when none of the configured
// codes resolved to a sheet, i.e. the whole workbook yielded nothing.
var ErrEmptyDataset = errors.New("no product sheets were parsed; check sheet names and file")

// StructuralError reports a sheet whose layout violates the marker-row
// convention: a missing "Importers"/"Exporters" marker, or an exports block
// with no data rows. It fails that sheet's parse; the caller decides whether
// to abort the dataset.
type StructuralError struct {
	Sheet  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("sheet %q: %s", e.Sheet, e.Reason)
}

// NoYearColumnsError reports that neither the header row nor its one-row
// fallback encoded any year columns for the named flow block.
type NoYearColumnsError struct {
	Flow models.Flow
}

func (e *NoYearColumnsError) Error() string {
	return fmt.Sprintf("no year columns detected for %s block", e.Flow)
}

package api

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportRecordsCSV handles GET /api/v1/export/records.csv, streaming the
// filtered record set as CSV with the same query parameters as GetRecords.
//
// ExportRecordsCSV godoc
// @Summary      Export records as CSV
// @Description  Streams the filtered long-form record set in CSV form
// @Tags         records
// @Produce      text/csv
// @Param        family  query  string  false  "Dataset family (hs7102 or hs7104)"  default(hs7102)
// @Param        flow    query  string  false  "Imports or Exports"
// @Param        unit    query  string  false  "usd | usd_mn | usd_bn"  default(usd)
// @Success      200  {string}  string  "CSV payload"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/export/records.csv [get]
func (h *Handler) ExportRecordsCSV(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	_, div, ok := h.parseUnit(c)
	if !ok {
		return
	}

	recs, err := h.svc.Records(c.Request.Context(), f)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_records.csv", f.Family)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"country", "year", "flow", "code", "description", "group", "subgroup", "value"})
	for _, r := range recs {
		value := ""
		if r.Value != nil {
			value = fmt.Sprintf("%g", *r.Value/div)
		}
		if err := w.Write([]string{
			r.Country,
			fmt.Sprintf("%d", r.Year),
			string(r.Flow),
			r.Code,
			r.Description,
			r.Group,
			r.Subgroup,
			value,
		}); err != nil {
			// The response is already streaming; all we can do is stop.
			return
		}
	}
	w.Flush()
}

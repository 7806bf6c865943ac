package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/internal/domain/dto"
	"github.com/mfontes/hspulse/internal/domain/models"
	"github.com/mfontes/hspulse/internal/ingestion"
	"github.com/mfontes/hspulse/internal/service"
)

// Handler provides HTTP handlers over the normalized trade dataset.
//
// Responsibilities:
//   - Validate and translate query parameters into service filters.
//   - Map engine errors to HTTP statuses (source-data problems are 422,
//     everything else 500) without ever serving a partial dataset.
//   - Apply display-only unit scaling to response values.
type Handler struct {
	svc service.DatasetService
}

// NewHandler constructs a Handler around the dataset service.
func NewHandler(svc service.DatasetService) *Handler {
	return &Handler{svc: svc}
}

// GetRecords handles GET /api/v1/records.
//
// GetRecords godoc
// @Summary      List normalized trade records
// @Description  Returns the filtered long-form record set for one product family
// @Tags         records
// @Produce      json
// @Param        family     query  string  false  "Dataset family (hs7102 or hs7104)"  default(hs7102)
// @Param        flow       query  string  false  "Imports or Exports"
// @Param        code       query  string  false  "Comma-separated 6-digit product codes"
// @Param        group      query  string  false  "Comma-separated taxonomy groups"
// @Param        subgroup   query  string  false  "Comma-separated taxonomy subgroups"
// @Param        country    query  string  false  "Comma-separated partner names"
// @Param        year_from  query  int     false  "Inclusive lower year bound"
// @Param        year_to    query  int     false  "Inclusive upper year bound"
// @Param        unit       query  string  false  "usd | usd_mn | usd_bn"  default(usd)
// @Success      200  {object}  dto.RecordsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/records [get]
func (h *Handler) GetRecords(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	label, div, ok := h.parseUnit(c)
	if !ok {
		return
	}

	recs, err := h.svc.Records(c.Request.Context(), f)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecordsResponse{
		Family:  f.Family,
		Unit:    label,
		Count:   len(recs),
		Records: scaleRecords(recs, div),
	})
}

// GetWorldSeries handles GET /api/v1/world-series.
//
// GetWorldSeries godoc
// @Summary      World totals per year
// @Description  Returns per-year Imports/Exports totals and trade balance for the filtered set
// @Tags         summary
// @Produce      json
// @Param        family  query  string  false  "Dataset family (hs7102 or hs7104)"  default(hs7102)
// @Param        unit    query  string  false  "usd | usd_mn | usd_bn"  default(usd)
// @Success      200  {object}  dto.WorldSeriesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/world-series [get]
func (h *Handler) GetWorldSeries(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	label, div, ok := h.parseUnit(c)
	if !ok {
		return
	}

	series, err := h.svc.WorldSeries(c.Request.Context(), f)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	for i := range series {
		series[i].Imports /= div
		series[i].Exports /= div
		series[i].Balance /= div
	}
	c.JSON(http.StatusOK, dto.WorldSeriesResponse{Family: f.Family, Unit: label, Series: series})
}

// GetPartners handles GET /api/v1/partners.
//
// GetPartners godoc
// @Summary      Top-N partner ranking
// @Description  Ranks partners for one flow and year, collapsing the tail into an Others row
// @Tags         summary
// @Produce      json
// @Param        family  query  string  false  "Dataset family (hs7102 or hs7104)"  default(hs7102)
// @Param        flow    query  string  true   "Imports or Exports"
// @Param        year    query  int     true   "Snapshot year"
// @Param        top     query  int     false  "Number of ranked partners"  default(10)
// @Param        metric  query  string  false  "value | share"  default(value)
// @Param        unit    query  string  false  "usd | usd_mn | usd_bn"  default(usd)
// @Success      200  {object}  dto.PartnersResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/partners [get]
func (h *Handler) GetPartners(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}
	if f.Flow == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("flow is required", nil))
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid year parameter", err))
		return
	}
	top := 10
	if s := c.Query("top"); s != "" {
		top, err = strconv.Atoi(s)
		if err != nil || top < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid top parameter", err))
			return
		}
	}
	label, div, ok := h.parseUnit(c)
	if !ok {
		return
	}

	q := service.PartnersQuery{
		Filter:    f,
		Year:      year,
		TopN:      top,
		WithShare: strings.EqualFold(c.DefaultQuery("metric", "value"), "share"),
	}
	partners, err := h.svc.TopPartners(c.Request.Context(), q)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	for i := range partners {
		partners[i].Value /= div
	}
	c.JSON(http.StatusOK, dto.PartnersResponse{
		Family:   f.Family,
		Flow:     string(f.Flow),
		Year:     year,
		Unit:     label,
		Partners: partners,
	})
}

// parseFilter translates the shared query parameters into a service filter.
// A false return means a 400 was already written.
func (h *Handler) parseFilter(c *gin.Context) (service.Filter, bool) {
	f := service.Filter{
		Family:    strings.ToLower(c.DefaultQuery("family", "hs7102")),
		Codes:     splitParam(c.Query("code")),
		Groups:    splitParam(c.Query("group")),
		Subgroups: splitParam(c.Query("subgroup")),
		Countries: splitParam(c.Query("country")),
	}
	if f.Family != "hs7102" && f.Family != "hs7104" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown family, expected hs7102 or hs7104", nil))
		return f, false
	}

	switch strings.ToLower(c.Query("flow")) {
	case "":
	case "imports":
		f.Flow = models.FlowImports
	case "exports":
		f.Flow = models.FlowExports
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid flow, expected Imports or Exports", nil))
		return f, false
	}

	var err error
	if s := c.Query("year_from"); s != "" {
		if f.YearFrom, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid year_from parameter", err))
			return f, false
		}
	}
	if s := c.Query("year_to"); s != "" {
		if f.YearTo, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid year_to parameter", err))
			return f, false
		}
	}
	return f, true
}

// parseUnit resolves the display scaling. Trade values come from TradeMap
// style workbooks and are stored in USD thousand, so reaching millions
// divides by 1e3 and billions by 1e6. A false return means a 400 was
// already written.
func (h *Handler) parseUnit(c *gin.Context) (string, float64, bool) {
	switch strings.ToLower(c.DefaultQuery("unit", "usd")) {
	case "usd", "absolute":
		return "USD thousand", 1, true
	case "usd_mn", "mn":
		return "USD Mn", 1e3, true
	case "usd_bn", "bn":
		return "USD Bn", 1e6, true
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid unit, expected usd, usd_mn or usd_bn", nil))
		return "", 0, false
	}
}

// writeEngineError maps engine failures to statuses: malformed source data
// is 422, anything else 500. The dataset is all-or-nothing either way.
func (h *Handler) writeEngineError(c *gin.Context, err error) {
	var structural *ingestion.StructuralError
	var noYears *ingestion.NoYearColumnsError
	switch {
	case errors.Is(err, ingestion.ErrEmptyDataset),
		errors.As(err, &structural),
		errors.As(err, &noYears):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("source workbook could not be parsed", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load dataset", err))
	}
}

// scaleRecords returns a copy of recs with values divided by div. Missing
// values stay missing; the cached slice is never mutated.
func scaleRecords(recs []models.TradeRecord, div float64) []models.TradeRecord {
	if div == 1 {
		return recs
	}
	out := make([]models.TradeRecord, len(recs))
	for i, r := range recs {
		out[i] = r
		if r.Value != nil {
			v := *r.Value / div
			out[i].Value = &v
		}
	}
	return out
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

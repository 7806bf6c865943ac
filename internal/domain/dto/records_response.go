package dto

import "github.com/mfontes/hspulse/internal/domain/models"

// RecordsResponse wraps the filtered long-form record set returned by
// GET /api/v1/records. Values are scaled by the requested display unit.
type RecordsResponse struct {
	Family  string               `json:"family" example:"hs7102"`
	Unit    string               `json:"unit" example:"USD Mn"`
	Count   int                  `json:"count" example:"1240"`
	Records []models.TradeRecord `json:"records"`
}

// WorldSeriesResponse is the per-year world totals series returned by
// GET /api/v1/world-series.
type WorldSeriesResponse struct {
	Family string              `json:"family" example:"hs7102"`
	Unit   string              `json:"unit" example:"USD Bn"`
	Series []models.WorldPoint `json:"series"`
}

// PartnersResponse is the top-N + Others partner ranking returned by
// GET /api/v1/partners.
type PartnersResponse struct {
	Family   string               `json:"family" example:"hs7102"`
	Flow     string               `json:"flow" example:"Exports"`
	Year     int                  `json:"year" example:"2023"`
	Unit     string               `json:"unit" example:"USD Mn"`
	Partners []models.PartnerRank `json:"partners"`
}

package models

// WorldPoint is one year of world totals for both flows. Exports and
// Imports come from the sheet's "World" row when present, otherwise from
// summing the partner rows; Balance is always Exports minus Imports.
type WorldPoint struct {
	Year    int     `json:"year"`
	Imports float64 `json:"imports"`
	Exports float64 `json:"exports"`
	Balance float64 `json:"balance"`
}

// PartnerRank is one row of a top-N partner ranking for a (flow, year)
// snapshot. Share is the percentage of the world total and is NaN-free:
// it is zero when no world total is available.
type PartnerRank struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share,omitempty"`
}

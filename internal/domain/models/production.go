package models

// ProductionRecord is one yearly production observation from the Kimberley
// Process workbook. Unlike the trade sheets this dataset has a fixed header
// of named columns, so the loader is a plain rename-and-aggregate path.
type ProductionRecord struct {
	Country        string   `json:"country"`
	Year           int      `json:"year"`
	TradeType      string   `json:"trade_type"`
	ProductionType string   `json:"production_type"`
	Carat          *float64 `json:"carat"`
	USValue        *float64 `json:"us_value"`
}

package models

// Flow is the trade direction of a record. A record always belongs to
// exactly one of the two flow blocks of its source sheet.
type Flow string

const (
	FlowImports Flow = "Imports"
	FlowExports Flow = "Exports"
)

// TradeRecord is one normalized long-form row produced by the workbook
// engine: one (country, year, flow, code) observation.
//
// Fields:
//   - Country: trimmed partner name from column 0 of the source block.
//   - Year: integer year taken from the block's header row.
//   - Value: trade value in USD thousand, the TradeMap convention the
//     source workbooks use; nil when the source cell was blank or
//     non-numeric (missing is distinct from zero).
//   - Flow: Imports or Exports.
//   - Code: the 6-digit product classification code of the source sheet.
//   - Description: human-readable label for Code.
//   - Group, Subgroup: static taxonomy attached by the assembler.
type TradeRecord struct {
	Country     string   `json:"country"`
	Year        int      `json:"year"`
	Value       *float64 `json:"value"`
	Flow        Flow     `json:"flow"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Group       string   `json:"group,omitempty"`
	Subgroup    string   `json:"subgroup,omitempty"`
}

// HasValue reports whether the record carries an observed value.
func (r TradeRecord) HasValue() bool { return r.Value != nil }

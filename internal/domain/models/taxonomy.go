package models

// SheetSpec ties a logical product code to the code and description stamped
// onto every record parsed from its sheet.
type SheetSpec struct {
	Code        string
	Description string
}

// Taxonomy classifies a product code into a group and subgroup. The
// assembler attaches these columns to every record; it never infers them.
type Taxonomy struct {
	Group    string
	Subgroup string
}

// DiamondSheets7102 maps the five HS 7102 diamond codes to their sheet
// specs. Sheet names in the source workbook equal the bare code after
// trimming (the 710210 sheet is known to carry a trailing space).
var DiamondSheets7102 = map[string]SheetSpec{
	"710210": {Code: "710210", Description: "Diamonds, unsorted (ROUGH)"},
	"710221": {Code: "710221", Description: "Industrial diamonds, unworked, sorted (ROUGH)"},
	"710231": {Code: "710231", Description: "Non-industrial diamonds, unworked (ROUGH)"},
	"710229": {Code: "710229", Description: "Industrial diamonds, worked (CUT & POLISHED)"},
	"710239": {Code: "710239", Description: "Diamonds, worked, non-industrial (CUT & POLISHED)"},
}

// LabGrownSheets7104 maps the HS 7104 lab-grown codes. These sheets are
// named descriptively (e.g. "710421-UNWORKED"), so locating them needs the
// substring strategy rather than an exact match.
var LabGrownSheets7104 = map[string]SheetSpec{
	"710421": {Code: "710421", Description: "Lab-grown diamonds, unworked"},
	"710491": {Code: "710491", Description: "Lab-grown diamonds, worked"},
}

// DiamondTaxonomy7102 is the static group/subgroup table for HS 7102.
var DiamondTaxonomy7102 = map[string]Taxonomy{
	"710210": {Group: "Rough Diamonds", Subgroup: "Unsorted"},
	"710231": {Group: "Rough Diamonds", Subgroup: "Unsorted"},
	"710221": {Group: "Rough Diamonds", Subgroup: "Sorted"},
	"710229": {Group: "Cut & Polished Diamonds", Subgroup: "Industrial"},
	"710239": {Group: "Cut & Polished Diamonds", Subgroup: "Non-Industrial"},
}

// LabGrownTaxonomy7104 is the static group/subgroup table for HS 7104.
var LabGrownTaxonomy7104 = map[string]Taxonomy{
	"710421": {Group: "Lab Grown Diamonds", Subgroup: "Unworked"},
	"710491": {Group: "Lab Grown Diamonds", Subgroup: "Worked"},
}

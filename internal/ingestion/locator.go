package ingestion

import "strings"

// findSheetExact returns the first sheet whose trimmed name equals the code
// exactly (case-sensitive). Trimming matters: real exports carry sheets like
// " 710210 " with stray spaces around the code.
func findSheetExact(wb Workbook, code string) (string, bool) {
	for _, name := range wb.SheetNames() {
		if strings.TrimSpace(name) == code {
			return name, true
		}
	}
	return "", false
}

// findSheetContains returns the first sheet whose trimmed, lower-cased name
// contains the token. Used for workbooks whose sheets are named
// descriptively around the code (e.g. "710421-UNWORKED").
func findSheetContains(wb Workbook, token string) (string, bool) {
	tok := strings.ToLower(strings.TrimSpace(token))
	for _, name := range wb.SheetNames() {
		if strings.Contains(strings.ToLower(strings.TrimSpace(name)), tok) {
			return name, true
		}
	}
	return "", false
}

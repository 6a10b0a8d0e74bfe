package chart

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet used when a chart carries no formula.
const DefaultSheet = "Sheet1"

// SheetFromFormula extracts the worksheet name from a series formula such
// as "Sheet1!$B$1" or "'My data'!$A$2:$A$5". It returns "" when the
// formula holds no sheet-qualified range.
func SheetFromFormula(formula string) string {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return ""
	}
	ps := efp.ExcelParser()
	for _, tok := range ps.Parse("=" + strings.TrimPrefix(formula, "=")) {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		i := strings.LastIndex(tok.TValue, "!")
		if i <= 0 {
			continue
		}
		return unquoteSheet(tok.TValue[:i])
	}
	return ""
}

// QuoteSheet quotes a worksheet name for use in a formula when it holds
// anything but letters, digits and underscores.
func QuoteSheet(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r == '.' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f) {
			plain = false
			break
		}
	}
	if plain && !(name[0] >= '0' && name[0] <= '9') {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// CellRef returns the absolute reference of one cell, e.g. Sheet1!$B$1.
// col and row are 1-based.
func CellRef(sheet string, col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row, true)
	return QuoteSheet(sheet) + "!" + cell
}

// ColumnRef returns the absolute reference of rows first..last of col,
// e.g. Sheet1!$A$2:$A$5. A single row collapses to a cell reference.
func ColumnRef(sheet string, col, first, last int) string {
	if last <= first {
		return CellRef(sheet, col, first)
	}
	from, _ := excelize.CoordinatesToCellName(col, first, true)
	to, _ := excelize.CoordinatesToCellName(col, last, true)
	return QuoteSheet(sheet) + "!" + from + ":" + to
}

func attrInt(el *etree.Element, key string) (int, bool) {
	if el == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue(key, "")))
	if err != nil {
		return 0, false
	}
	return n, true
}

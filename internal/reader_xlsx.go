package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an Excel workbook. Number cells come back
// as their stored value ("1234.5", not "1,234.50"); dates, text and booleans
// come back as Excel displays them.
func ReadXLSX(path string, opts ReadOptions) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	dateStyles := make(map[int]bool)
	rows := make([]Row, len(shown))
	for i, cells := range shown {
		row := make(Row, len(cells))
		for j, text := range cells {
			row[j] = text
			if i >= len(raw) || j >= len(raw[i]) || raw[i][j] == text {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			isNumber, err := numberCell(f, sheet, axis, raw[i][j], dateStyles)
			if err != nil {
				return nil, fmt.Errorf("reading cell %s: %w", axis, err)
			}
			if isNumber {
				row[j] = raw[i][j]
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// numberCell reports whether the cell holds a plain number, i.e. a numeric
// value whose number format is not a date or time format
func numberCell(f *excelize.File, sheet, axis, value string, dateStyles map[int]bool) (bool, error) {
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return false, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeFormula:
	default:
		return false, nil
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return false, nil
	}

	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false, err
	}
	isDate, ok := dateStyles[styleID]
	if !ok {
		style, err := f.GetStyle(styleID)
		isDate = err == nil && isDateFormat(style)
		dateStyles[styleID] = isDate
	}
	return !isDate, nil
}

func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return hasDateTokens(*style.CustomNumFmt)
	}
	n := style.NumFmt
	return (n >= 14 && n <= 22) || (n >= 27 && n <= 36) || (n >= 45 && n <= 47) || (n >= 50 && n <= 58)
}

// hasDateTokens looks for day, month, year, hour or second codes outside
// quoted literals, escapes and [bracket] sections of a number format
func hasDateTokens(format string) bool {
	var inQuote, inBracket bool
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case strings.IndexByte("dmyhsDMYHS", c) >= 0:
			return true
		}
	}
	return false
}

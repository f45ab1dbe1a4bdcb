package internal

import (
	"fmt"

	"github.com/extrame/xls"
)

// ReadXLS reads the first sheet of a legacy BIFF (.xls) workbook
func ReadXLS(path string, opts ReadOptions) ([]Row, error) {
	charset := opts.Encoding
	if charset == "" {
		charset = "utf-8"
	}
	wb, err := xls.Open(path, charset)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheets
	}

	rows := make([]Row, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			// keep physical row positions stable
			rows = append(rows, Row{})
			continue
		}
		cells := make(Row, 0, r.LastCol()+1)
		for j := 0; j <= r.LastCol(); j++ {
			cells = append(cells, r.Col(j))
		}
		rows = append(rows, trimTrailingEmpty(cells))
	}

	return trimTrailingBlankRows(rows), nil
}

func trimTrailingBlankRows(rows []Row) []Row {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}

package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// SimpleJSONFormat is a minimal JSON format for raw sheet content
// Example:
//
//	{
//	  "rows": [
//	    ["ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES"],
//	    ["2025-01-15", "", "GJ", "", "", "", "INV-1", "", "Fees", 120.5]
//	  ]
//	}
//
// Cells may be strings, numbers or null. This format is handy for fixtures
// and for piping sheets exported by other tools.
type SimpleJSONFormat struct {
	Rows [][]any `json:"rows"`
}

// ReadSimpleJSON reads rows from a JSON file in the simple JSON format
func ReadSimpleJSON(path string, _ ReadOptions) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var doc SimpleJSONFormat
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rows := make([]Row, len(doc.Rows))
	for i, cells := range doc.Rows {
		row := make(Row, len(cells))
		for j, cell := range cells {
			text, err := cellText(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i+1, IndexToLetter(j), err)
			}
			row[j] = text
		}
		rows[i] = row
	}

	return rows, nil
}

func cellText(v any) (string, error) {
	switch c := v.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case json.Number:
		return c.String(), nil
	case bool:
		return strconv.FormatBool(c), nil
	}
	return "", fmt.Errorf("unsupported cell value %v", v)
}

func init() {
	RegisterReader("simple-json", ReaderFunc(ReadSimpleJSON), ".json")
}

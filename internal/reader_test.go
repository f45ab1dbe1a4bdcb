package internal

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// createTestXLSX writes rows of cell values to the first sheet of a new workbook
func createTestXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("failed to set row %d: %v", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to create test xlsx: %v", err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := createTestXLSX(t, [][]interface{}{
		{"ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES"},
		{},
		{"2025-01-15", nil, "GJ", nil, nil, nil, "PV-1", nil, "Allowance", 120.5},
	})

	rows, err := ReadXLSX(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES" {
		t.Errorf("row 1 = %v", rows[0])
	}
	if len(rows[1]) != 0 {
		t.Errorf("row 2 should be empty, got %v", rows[1])
	}
	want := Row{"2025-01-15", "", "GJ", "", "", "", "PV-1", "", "Allowance", "120.5"}
	if !reflect.DeepEqual(rows[2], want) {
		t.Errorf("row 3 = %q, want %q", rows[2], want)
	}
}

func TestReadXLSX_FormattedCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	posted := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(f.SetCellValue(sheet, "A1", "ACCOUNT CODE: 1000-A01 CASH"))
	must(f.SetCellValue(sheet, "A2", posted))
	must(f.SetCellValue(sheet, "B2", 1234.5))
	must(f.SetCellValue(sheet, "A3", posted))
	must(f.SetCellValue(sheet, "C3", "INV-1"))
	must(f.SetCellValue(sheet, "D3", true))
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	must(err)
	must(f.SetCellStyle(sheet, "B2", "B2", thousands))
	custom := "dd.mm.yyyy"
	dotted, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	must(err)
	must(f.SetCellStyle(sheet, "A3", "A3", dotted))
	must(f.SaveAs(path))

	rows, err := ReadXLSX(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(rows), rows)
	}

	// amounts come back unformatted
	if rows[1][1] != "1234.5" {
		t.Errorf("debit = %q, want 1234.5", rows[1][1])
	}
	// dates and booleans come back as shown, never as serial numbers
	for _, cell := range []string{rows[1][0], rows[2][0], rows[2][3]} {
		if cell == "" || isPositive(cell) {
			t.Errorf("cell %q should be non-empty and not numeric", cell)
		}
	}
	if rows[2][0] != "15.01.2025" {
		t.Errorf("custom date = %q, want 15.01.2025", rows[2][0])
	}

	cols := ColumnConfig{
		Date: Col(0), Journal: Col(9), Reference: Col(2), Description: Col(9),
		Debit: Col(1), Credit: Auto, BalanceStart: Col(9), BalanceEnd: Col(9),
		AccountCode: Auto, AccountName: Col(9),
	}
	records, err := Normalize(context.Background(), rows, cols, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Debit != "1234.5" || records[0].AccountCode != "1000-A01" {
		t.Errorf("record 1 = %+v", records[0])
	}
	if records[1].Credit != "" {
		t.Errorf("date cell taken as credit: %q", records[1].Credit)
	}
}

func TestHasDateTokens(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"yyyy-mm-dd", true},
		{"[h]:mm:ss", true},
		{"#,##0.00", false},
		{`#,##0.00 "days"`, false},
		{"[Red]0.00", false},
		{"General", false},
	}

	for _, tt := range tests {
		if got := hasDateTokens(tt.format); got != tt.expected {
			t.Errorf("hasDateTokens(%q) = %v, want %v", tt.format, got, tt.expected)
		}
	}
}

func TestReadXLSX_MissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), ReadOptions{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadXLS_MissingFile(t *testing.T) {
	if _, err := ReadXLS(filepath.Join(t.TempDir(), "missing.xls"), ReadOptions{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		opts     ReadOptions
		expected []Row
	}{
		{
			name:    "comma separated",
			content: "Date,Ref,Debit\n2025-01-15,INV-1,100\n",
			expected: []Row{
				{"Date", "Ref", "Debit"},
				{"2025-01-15", "INV-1", "100"},
			},
		},
		{
			name:    "semicolon separated with ragged rows",
			content: "ACCOUNT CODE: 1000-A01 CASH;;\n2025-01-15;INV-1;100,50;;\n",
			expected: []Row{
				{"ACCOUNT CODE: 1000-A01 CASH"},
				{"2025-01-15", "INV-1", "100,50"},
			},
		},
		{
			name:    "explicit tab delimiter",
			content: "a,b\tc\n",
			opts:    ReadOptions{Delimiter: '\t'},
			expected: []Row{
				{"a,b", "c"},
			},
		},
		{
			name:    "byte order mark",
			content: "\xEF\xBB\xBFDate,Ref\n",
			expected: []Row{
				{"Date", "Ref"},
			},
		},
		{
			name:    "windows-1252",
			content: "Caf\xe9,12\n",
			opts:    ReadOptions{Encoding: "windows-1252"},
			expected: []Row{
				{"Café", "12"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "ledger.csv", tt.content)
			rows, err := ReadCSV(path, tt.opts)
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if !reflect.DeepEqual(rows, tt.expected) {
				t.Errorf("rows = %q, want %q", rows, tt.expected)
			}
		})
	}
}

func TestReadCSV_UnknownEncoding(t *testing.T) {
	path := writeFile(t, "ledger.csv", "a,b\n")
	if _, err := ReadCSV(path, ReadOptions{Encoding: "klingon"}); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		content  string
		expected rune
	}{
		{"a,b,c\n", ','},
		{"\n\na;b;c\n", ';'},
		{"a\tb\tc,d\n", '\t'},
		{"a|b|c\n", '|'},
		{"single\n", ','},
		{"", ','},
	}

	for _, tt := range tests {
		if got := sniffDelimiter([]byte(tt.content)); got != tt.expected {
			t.Errorf("sniffDelimiter(%q) = %q, want %q", tt.content, got, tt.expected)
		}
	}
}

func TestReadSimpleJSON(t *testing.T) {
	path := writeFile(t, "rows.json", `{"rows": [
		["ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES"],
		["2025-01-15", null, "GJ", 120.50, true]
	]}`)

	rows, err := ReadSimpleJSON(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadSimpleJSON: %v", err)
	}
	expected := []Row{
		{"ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES"},
		{"2025-01-15", "", "GJ", "120.50", "true"},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("rows = %q, want %q", rows, expected)
	}
}

func TestReadSimpleJSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "rows"},
		{"nested cell", `{"rows": [[["x"]]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "rows.json", tt.content)
			if _, err := ReadSimpleJSON(path, ReadOptions{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xuri/excelize/v2"
)

// DefaultExportName is the base file name used when only a format is given
const DefaultExportName = "cleaned_ledger_with_accounts"

// ExportPath turns a bare export format ("csv", "xlsx") into the default file
// name with that extension. Anything else is taken as a path.
func ExportPath(arg string) string {
	switch format := strings.ToLower(arg); format {
	case "csv", "xlsx":
		return DefaultExportName + "." + format
	}
	return arg
}

// OutputOptions controls how records are displayed
type OutputOptions struct {
	PreviewRows int
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Records []Record    `json:"records"`
	Summary JSONSummary `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count        int           `json:"count"`
	AccountCodes int           `json:"account_codes"`
	TotalDebit   string        `json:"total_debit"`
	TotalCredit  string        `json:"total_credit"`
	Accounts     []JSONAccount `json:"accounts"`
}

// JSONAccount is the per-account part of the JSON summary
type JSONAccount struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Records int    `json:"records"`
	Debit   string `json:"debit"`
	Credit  string `json:"credit"`
}

// PrintRecordsJSON outputs all records and their summary in JSON format
func PrintRecordsJSON(w io.Writer, records []Record) error {
	sum := Summarize(records)

	accounts := make([]JSONAccount, 0, len(sum.Accounts))
	for _, acc := range sum.Accounts {
		accounts = append(accounts, JSONAccount{
			Code:    acc.Code,
			Name:    acc.Name,
			Records: acc.Records,
			Debit:   acc.Debit.StringFixed(2),
			Credit:  acc.Credit.StringFixed(2),
		})
	}

	if records == nil {
		records = []Record{}
	}
	output := JSONOutput{
		Records: records,
		Summary: JSONSummary{
			Count:        sum.Records,
			AccountCodes: sum.Codes,
			TotalDebit:   sum.TotalDebit.StringFixed(2),
			TotalCredit:  sum.TotalCredit.StringFixed(2),
			Accounts:     accounts,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintRecordsTable outputs a preview of the records followed by per-account totals
func PrintRecordsTable(w io.Writer, records []Record, opts OutputOptions) {
	limit := opts.PreviewRows
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{}
	for _, h := range RecordHeader {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, rec := range records[:limit] {
		row := table.Row{}
		for _, v := range rec.Values() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align Debit, Credit and Balance (last three)
	colCount := len(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, WidthMax: 40},
		{Number: colCount - 2, Align: text.AlignRight},
		{Number: colCount - 1, Align: text.AlignRight},
		{Number: colCount, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintf(w, "Displaying %d of %d rows\n\n", limit, len(records))

	printAccountSummary(w, Summarize(records))
}

func printAccountSummary(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "Found %d transactions in %d accounts\n", sum.Records, sum.Codes)
	if len(sum.Accounts) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Account Code", "Account Name", "Records", "Debit", "Credit"})
	for _, acc := range sum.Accounts {
		t.AppendRow(table.Row{acc.Code, acc.Name, acc.Records, acc.Debit.StringFixed(2), acc.Credit.StringFixed(2)})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", text.Bold.Sprint("Total"), text.Bold.Sprint(sum.Records),
		text.Bold.Sprint(sum.TotalDebit.StringFixed(2)), text.Bold.Sprint(sum.TotalCredit.StringFixed(2))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// WriteCSV writes the records as comma separated text with a header row
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the records to a new single-sheet workbook at path
func WriteXLSX(path string, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(RecordHeader))
	for i, h := range RecordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol := IndexToLetter(len(RecordHeader) - 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, rec := range records {
		values := rec.Values()
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// ExportFile writes records to path, choosing CSV or XLSX from the extension
func ExportFile(path string, records []Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

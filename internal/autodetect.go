package internal

import (
	"strings"
)

// AutoDetectRows is how many leading rows are searched for header text
const AutoDetectRows = 20

// headerRule maps a header keyword test to the field it identifies
type headerRule struct {
	field   string
	matches func(cell string) bool
}

func containsAll(words ...string) func(string) bool {
	return func(cell string) bool {
		for _, w := range words {
			if !strings.Contains(cell, w) {
				return false
			}
		}
		return true
	}
}

// headerRules are tried in order for each cell; a rule is skipped once its
// field has been found
var headerRules = []headerRule{
	{FieldDate, containsAll("date")},
	{FieldJournal, containsAll("journ")},
	{FieldReference, containsAll("ref")},
	{FieldDescription, containsAll("desc")},
	{FieldDebit, containsAll("debit")},
	{FieldCredit, containsAll("credit")},
	{"balance", containsAll("balance")},
	{FieldAccountCode, containsAll("account", "code")},
}

// DetectedColumns holds the header positions found by AutoDetectColumns,
// keyed by field. Balance is stored under both balance fields.
type DetectedColumns map[string]int

// String renders the detections in field order, e.g. "Date=A, Debit=K"
func (d DetectedColumns) String() string {
	var parts []string
	for _, name := range ColumnFields {
		idx, ok := d[name]
		if !ok {
			continue
		}
		label := strings.ToUpper(name[:1]) + strings.ReplaceAll(name[1:], "_", " ")
		parts = append(parts, label+"="+IndexToLetter(idx))
	}
	return strings.Join(parts, ", ")
}

// AutoDetectColumns guesses column positions from header text in the first
// AutoDetectRows rows. The first matching cell in row-major order wins for
// each field. Fields that are not found keep their value from base.
func AutoDetectColumns(rows []Row, base ColumnConfig) (ColumnConfig, DetectedColumns) {
	found := make(map[string]int)

	limit := min(len(rows), AutoDetectRows)
	for _, row := range rows[:limit] {
		for colIdx, cell := range row {
			cell = strings.ToLower(strings.TrimSpace(cell))
			if cell == "" {
				continue
			}
			for _, rule := range headerRules {
				if _, done := found[rule.field]; done {
					continue
				}
				if rule.matches(cell) {
					found[rule.field] = colIdx
					break
				}
			}
		}
	}

	detected := make(DetectedColumns, len(found)+1)
	cfg := base
	for field, idx := range found {
		if field == "balance" {
			cfg.BalanceStart = Col(idx)
			cfg.BalanceEnd = Col(idx)
			detected[FieldBalanceStart] = idx
			detected[FieldBalanceEnd] = idx
			continue
		}
		col, _ := cfg.field(field)
		*col = Col(idx)
		detected[field] = idx
	}

	return cfg, detected
}

package internal

import (
	"regexp"
	"strings"
	"unicode"
)

// DetectedAccountName is the name given to accounts found only by their code pattern
const DetectedAccountName = "Detected Account"

var (
	// "ACCOUNT CODE: 12399-D01 ATTACHMENT ALLOWANCES"; \p{Zs} catches the
	// no-break spaces that \s misses
	accountPhraseRe = regexp.MustCompile(`(?i)account[\s\p{Zs}]*code[:\s\p{Zs}]*([^\s\p{Zs}]+)[\s\p{Zs}]*(.*)`)
	// codes stored in a dedicated column: digits, dashes and capitals
	accountColumnRe = regexp.MustCompile(`^[\d\-A-Z]+$`)
	// bare codes like 12399-D01 or 14101-A01
	accountCodeRe = regexp.MustCompile(`^\d{4,5}-[A-Z]\d{2}$`)
)

// AccountDetector inspects a row and reports the account it announces, if any
type AccountDetector func(row Row, cols ColumnConfig) (Account, bool)

// AccountDetectors is the ordered decision list used by DetectAccount.
// The first detector that matches wins.
var AccountDetectors = []AccountDetector{
	DetectAccountPhrase,
	DetectAccountColumn,
	DetectAccountPattern,
}

// DetectAccount reports whether the row is an account header row and
// returns its code and name.
func DetectAccount(row Row, cols ColumnConfig) (Account, bool) {
	for _, detect := range AccountDetectors {
		if acc, ok := detect(row, cols); ok {
			return acc, true
		}
	}
	return Account{}, false
}

// joinCells joins all non-empty cells with single spaces
func joinCells(row Row) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

func isAccountLine(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "account code") ||
		(strings.Contains(lower, "account") && strings.Contains(lower, "code"))
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// DetectAccountPhrase finds "ACCOUNT CODE: <code> <name...>" anywhere in the row
func DetectAccountPhrase(row Row, _ ColumnConfig) (Account, bool) {
	text := joinCells(row)
	if !isAccountLine(text) {
		return Account{}, false
	}
	m := accountPhraseRe.FindStringSubmatch(text)
	if m == nil {
		return Account{}, false
	}
	code := strings.TrimSpace(m[1])
	if code == "" || !hasAlphanumeric(code) {
		return Account{}, false
	}
	return Account{Code: code, Name: strings.TrimSpace(m[2])}, true
}

// DetectAccountColumn reads the code from the configured account code column.
// Short values (two characters or fewer) are not taken as codes.
func DetectAccountColumn(row Row, cols ColumnConfig) (Account, bool) {
	if cols.AccountCode.IsAuto() {
		return Account{}, false
	}
	code := strings.TrimSpace(cols.AccountCode.Cell(row))
	if !accountColumnRe.MatchString(code) || len(code) <= 2 {
		return Account{}, false
	}
	return Account{Code: code, Name: strings.TrimSpace(cols.AccountName.Cell(row))}, true
}

// DetectAccountPattern accepts the first cell shaped like 12399-D01
func DetectAccountPattern(row Row, _ ColumnConfig) (Account, bool) {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if accountCodeRe.MatchString(cell) {
			return Account{Code: cell, Name: DetectedAccountName}, true
		}
	}
	return Account{}, false
}

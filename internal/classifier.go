package internal

import (
	"strconv"
	"strings"
)

// isPositive reports whether s parses as a number greater than zero.
// Anything that does not parse counts as not numeric.
func isPositive(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && f > 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsTransaction decides whether extracted row values describe a transaction:
// a dated row with either a reference or a positive debit or credit.
func IsTransaction(date, reference, debit, credit string) bool {
	if isBlank(date) {
		return false
	}
	return !isBlank(reference) || isPositive(debit) || isPositive(credit)
}

// DetectCredit scans the row left to right for the first positive number
// outside the debit column and the balance column range. Returns "" when
// nothing qualifies.
func DetectCredit(row Row, cols ColumnConfig) string {
	debit, hasDebit := cols.Debit.Index()
	balStart, hasBalance := cols.BalanceStart.Index()
	balEnd, ok := cols.BalanceEnd.Index()
	if !ok {
		balEnd = balStart
	}

	for i, cell := range row {
		if hasDebit && i == debit {
			continue
		}
		if hasBalance && i >= balStart && i <= balEnd {
			continue
		}
		if isPositive(cell) {
			return cell
		}
	}
	return ""
}

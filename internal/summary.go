package internal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountSummary counts the records of one account and totals its amounts.
// Amounts that are not numbers are left out of the totals.
type AccountSummary struct {
	Code    string
	Name    string
	Records int
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Summary aggregates a normalized ledger per account, in order of first appearance.
// One code can show up under several names, so Codes counts distinct codes.
type Summary struct {
	Accounts    []AccountSummary
	Codes       int
	Records     int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Summarize groups records by account code and name
func Summarize(records []Record) Summary {
	var s Summary
	index := make(map[Account]int)
	codes := make(map[string]bool)

	for _, rec := range records {
		key := Account{Code: rec.AccountCode, Name: rec.AccountName}
		i, ok := index[key]
		if !ok {
			i = len(s.Accounts)
			index[key] = i
			s.Accounts = append(s.Accounts, AccountSummary{Code: key.Code, Name: key.Name})
		}
		if !codes[key.Code] {
			codes[key.Code] = true
			s.Codes++
		}
		debit := parseAmount(rec.Debit)
		credit := parseAmount(rec.Credit)

		acc := &s.Accounts[i]
		acc.Records++
		acc.Debit = acc.Debit.Add(debit)
		acc.Credit = acc.Credit.Add(credit)

		s.Records++
		s.TotalDebit = s.TotalDebit.Add(debit)
		s.TotalCredit = s.TotalCredit.Add(credit)
	}

	return s
}

package internal

import (
	"context"

	"github.com/rs/zerolog"
)

// ProgressFunc receives the fraction of rows scanned so far, from 0 to 1
type ProgressFunc func(fraction float64)

// DefaultProgressEvery is how many rows pass between progress reports
const DefaultProgressEvery = 100

// NormalizeOptions carries the optional collaborators of a normalize run
type NormalizeOptions struct {
	Logger        zerolog.Logger
	Progress      ProgressFunc
	ProgressEvery int
}

// Normalize scans the rows once, top to bottom, and returns every
// transaction row stamped with the most recent account header above it.
// Rows that are neither account headers nor transactions are dropped.
//
// The scan stops between rows when ctx is done; in that case no records
// are returned.
func Normalize(ctx context.Context, rows []Row, cols ColumnConfig, opts NormalizeOptions) ([]Record, error) {
	every := opts.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}
	log := opts.Logger

	current := Account{Code: UnknownAccountCode, Name: UnknownAccountName}
	var records []Record

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Progress != nil && i%every == 0 {
			opts.Progress(float64(i) / float64(len(rows)))
		}

		if acc, ok := DetectAccount(row, cols); ok {
			current.Code = acc.Code
			if acc.Name != "" {
				current.Name = acc.Name
			}
			log.Debug().Int("row", i+1).Msgf("Found account: %s - %s", acc.Code, acc.Name)
			continue
		}

		rec, ok := extractRecord(row, cols, current)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if opts.Progress != nil {
		opts.Progress(1)
	}
	log.Info().Int("rows", len(rows)).Int("records", len(records)).Msg("Normalized ledger")

	return records, nil
}

func extractRecord(row Row, cols ColumnConfig, acc Account) (Record, bool) {
	date := cols.Date.Cell(row)
	reference := cols.Reference.Cell(row)
	debit := cols.Debit.Cell(row)
	credit := cols.Credit.Cell(row)
	if cols.Credit.IsAuto() || isBlank(credit) {
		credit = DetectCredit(row, cols)
	}

	if !IsTransaction(date, reference, debit, credit) {
		return Record{}, false
	}

	return Record{
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Date:        date,
		Journal:     cols.Journal.Cell(row),
		Reference:   reference,
		Description: cols.Description.Cell(row),
		Debit:       debit,
		Credit:      credit,
		Balance:     cols.BalanceStart.Cell(row),
	}, true
}

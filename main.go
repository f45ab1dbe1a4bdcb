package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"unicode/utf8"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/ledger-cleaner/internal"
	"github.com/rs/zerolog"
)

type Params struct {
	File        string `descr:"Path to the ledger file, optionally prefixed with a format (csv:ledger.txt)" positional:"true"`
	Source      string `descr:"Input format, inferred from the file extension when omitted" alts:"xlsx,xls,csv,simple-json" optional:"true"`
	Config      string `descr:"Path to config file (default: ~/.ledger-cleaner/config.yaml)" optional:"true"`
	Output      string `descr:"Output format" alts:"table,json,none" strict:"true" default:"table"`
	Export      string `descr:"Write the cleaned ledger to this .csv or .xlsx file, or just csv/xlsx for cleaned_ledger_with_accounts.<ext>" optional:"true"`
	AutoDetect  bool   `descr:"Guess column positions from header text in the first 20 rows" optional:"true"`
	SaveConfig  bool   `descr:"Save the column mapping used for this run to the config file" optional:"true"`
	ResetConfig bool   `descr:"Ignore the config file and start from the default column mapping" optional:"true"`
	Encoding    string `descr:"Charset of CSV input, e.g. windows-1252 (default: UTF-8)" optional:"true"`
	Delimiter   string `descr:"CSV field separator (default: sniffed from the first line)" optional:"true"`
	Preview     int    `descr:"Number of records shown in table output (default: 500)" optional:"true"`
	NoProgress  bool   `descr:"Do not draw the progress bar" optional:"true"`
	Verbose     bool   `descr:"Log every account header found" short:"v" optional:"true"`

	ColDate         string `descr:"Column of the date (letter or auto)" optional:"true"`
	ColJournal      string `descr:"Column of the journal" optional:"true"`
	ColReference    string `descr:"Column of the reference" optional:"true"`
	ColDescription  string `descr:"Column of the description" optional:"true"`
	ColDebit        string `descr:"Column of the debit amount" optional:"true"`
	ColCredit       string `descr:"Column of the credit amount (auto scans the row)" optional:"true"`
	ColBalanceStart string `descr:"First column of the balance range" optional:"true"`
	ColBalanceEnd   string `descr:"Last column of the balance range" optional:"true"`
	ColAccountCode  string `descr:"Column holding account codes on header rows" optional:"true"`
	ColAccountName  string `descr:"Column holding account names on header rows" optional:"true"`
}

func (p *Params) columnOverrides() map[string]string {
	return map[string]string{
		internal.FieldDate:         p.ColDate,
		internal.FieldJournal:      p.ColJournal,
		internal.FieldReference:    p.ColReference,
		internal.FieldDescription:  p.ColDescription,
		internal.FieldDebit:        p.ColDebit,
		internal.FieldCredit:       p.ColCredit,
		internal.FieldBalanceStart: p.ColBalanceStart,
		internal.FieldBalanceEnd:   p.ColBalanceEnd,
		internal.FieldAccountCode:  p.ColAccountCode,
		internal.FieldAccountName:  p.ColAccountName,
	}
}

func main() {
	boa.NewCmdT[Params]("ledger-cleaner").
		WithShort("Flatten spreadsheet general ledgers into account-tagged transactions").
		WithLong("Reads a general ledger export where account header rows are mixed with transaction rows, " +
			"and produces one flat table of transactions, each tagged with the account it belongs to.").
		WithRunFunc(func(params *Params) {
			log := internal.NewLogger(os.Stderr, params.Verbose)
			if err := run(params, log); err != nil {
				log.Error().Err(err).Msg("Processing failed")
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, log zerolog.Logger) error {
	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}

	cfg := internal.NewDefaultConfig()
	if !params.ResetConfig {
		cfg = internal.LoadConfigOrDefault(configPath, log)
	}
	overrides := params.columnOverrides()
	for _, field := range internal.ColumnFields {
		label := overrides[field]
		if label == "" {
			continue
		}
		if err := cfg.Columns.Set(field, label); err != nil {
			return err
		}
	}

	readOpts := internal.ReadOptions{Encoding: params.Encoding}
	if readOpts.Encoding == "" {
		readOpts.Encoding = cfg.CSVEncoding
	}
	if params.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(params.Delimiter)
		if params.Delimiter == `\t` {
			r = '\t'
		}
		readOpts.Delimiter = r
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := internal.Start(ctx, internal.Job{
		File:        params.File,
		Source:      params.Source,
		ReadOptions: readOpts,
		Columns:     cfg.Columns,
		AutoDetect:  params.AutoDetect,
		Logger:      log,
	})

	var res internal.Result
	if params.NoProgress {
		res = r.Wait()
	} else {
		res = trackProgress(r, os.Stderr)
	}
	if res.Err != nil {
		return res.Err
	}

	if params.SaveConfig {
		cfg.Columns = res.Columns
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		log.Info().Str("path", configPath).Msg("Saved column mapping")
	}

	switch params.Output {
	case "json":
		if err := internal.PrintRecordsJSON(os.Stdout, res.Records); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	case "table":
		preview := params.Preview
		if preview <= 0 {
			preview = cfg.PreviewRows
		}
		internal.PrintRecordsTable(os.Stdout, res.Records, internal.OutputOptions{PreviewRows: preview})
	}

	if params.Export != "" {
		exportPath := internal.ExportPath(params.Export)
		if err := internal.ExportFile(exportPath, res.Records); err != nil {
			return err
		}
		log.Info().Str("path", exportPath).Msg("Exported cleaned ledger")
	}

	log.Info().
		Int("records", len(res.Records)).
		Int("rows", res.Rows).
		Dur("elapsed", res.Elapsed).
		Msg("Processing completed")
	return nil
}

package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Logical ledger fields that can be mapped to a column
const (
	FieldDate         = "date"
	FieldJournal      = "journal"
	FieldReference    = "reference"
	FieldDescription  = "description"
	FieldDebit        = "debit"
	FieldCredit       = "credit"
	FieldBalanceStart = "balance_start"
	FieldBalanceEnd   = "balance_end"
	FieldAccountCode  = "account_code"
	FieldAccountName  = "account_name"
)

// ColumnFields lists every configurable field in display order
var ColumnFields = []string{
	FieldDate, FieldJournal, FieldReference, FieldDescription, FieldDebit,
	FieldCredit, FieldBalanceStart, FieldBalanceEnd, FieldAccountCode, FieldAccountName,
}

// ColumnConfig maps each logical field to a column. It is built once
// before a run and not changed while rows are scanned.
type ColumnConfig struct {
	Date         Column `yaml:"col_date" json:"col_date"`
	Journal      Column `yaml:"col_journal" json:"col_journal"`
	Reference    Column `yaml:"col_reference" json:"col_reference"`
	Description  Column `yaml:"col_description" json:"col_description"`
	Debit        Column `yaml:"col_debit" json:"col_debit"`
	Credit       Column `yaml:"col_credit" json:"col_credit"`
	BalanceStart Column `yaml:"col_balance_start" json:"col_balance_start"`
	BalanceEnd   Column `yaml:"col_balance_end" json:"col_balance_end"`
	AccountCode  Column `yaml:"col_account_code" json:"col_account_code"`
	AccountName  Column `yaml:"col_account_name" json:"col_account_name"`
}

// DefaultColumns returns the layout of the most common general ledger export
func DefaultColumns() ColumnConfig {
	return ColumnConfig{
		Date:         Col(0),  // A
		Journal:      Col(2),  // C
		Reference:    Col(6),  // G
		Description:  Col(8),  // I
		Debit:        Col(22), // W
		Credit:       Auto,
		BalanceStart: Col(31), // AF
		BalanceEnd:   Col(31), // AF
		AccountCode:  Col(4),  // E
		AccountName:  Col(10), // K
	}
}

func (c *ColumnConfig) field(name string) (*Column, error) {
	switch strings.ToLower(name) {
	case FieldDate:
		return &c.Date, nil
	case FieldJournal:
		return &c.Journal, nil
	case FieldReference:
		return &c.Reference, nil
	case FieldDescription:
		return &c.Description, nil
	case FieldDebit:
		return &c.Debit, nil
	case FieldCredit:
		return &c.Credit, nil
	case FieldBalanceStart:
		return &c.BalanceStart, nil
	case FieldBalanceEnd:
		return &c.BalanceEnd, nil
	case FieldAccountCode:
		return &c.AccountCode, nil
	case FieldAccountName:
		return &c.AccountName, nil
	}
	return nil, fmt.Errorf("unknown column field %q (available: %s)", name, strings.Join(ColumnFields, ", "))
}

// Get returns the column mapped to a field
func (c ColumnConfig) Get(name string) (Column, error) {
	col, err := c.field(name)
	if err != nil {
		return Column{}, err
	}
	return *col, nil
}

// Set maps a field to a column label ("B", "AF" or "auto")
func (c *ColumnConfig) Set(name, label string) error {
	col, err := c.field(name)
	if err != nil {
		return err
	}
	parsed, err := LetterToIndex(label)
	if err != nil {
		return fmt.Errorf("column for %s: %w", name, err)
	}
	*col = parsed
	return nil
}

// String renders the mapping as "date=A, journal=C, ..."
func (c ColumnConfig) String() string {
	parts := make([]string, 0, len(ColumnFields))
	for _, name := range ColumnFields {
		col, _ := c.Get(name)
		parts = append(parts, name+"="+col.String())
	}
	return strings.Join(parts, ", ")
}

type Config struct {
	// Columns maps ledger fields to sheet columns (flat col_* keys)
	Columns ColumnConfig `yaml:",inline"`

	// PreviewRows limits how many records the table output shows
	PreviewRows int `yaml:"preview_rows,omitempty"`

	// CSVEncoding is the charset of CSV input (e.g. "windows-1252"); empty means UTF-8
	CSVEncoding string `yaml:"csv_encoding,omitempty"`
}

const DefaultPreviewRows = 500

// DefaultConfigPath returns the default config file path (~/.ledger-cleaner/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ledger-cleaner", "config.yaml")
}

// NewDefaultConfig creates a config with the built-in column layout.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Columns:     DefaultColumns(),
		PreviewRows: DefaultPreviewRows,
	}
}

// LoadConfig reads a config file. Keys missing from the file keep their
// default values. JSON documents are accepted as well.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = DefaultPreviewRows
	}

	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig that never fails: a missing file or a
// malformed one yields the default config. Malformed files are logged.
func LoadConfigOrDefault(path string, log zerolog.Logger) *Config {
	if path == "" {
		return NewDefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("No config file, using defaults")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring config file, using defaults")
		}
		return NewDefaultConfig()
	}
	return cfg
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

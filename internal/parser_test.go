package internal

import (
	"errors"
	"testing"
)

func TestIsKnownReader(t *testing.T) {
	// Register a test reader
	RegisterReader("test-format", ReaderFunc(func(path string, opts ReadOptions) ([]Row, error) {
		return nil, nil
	}))

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"known reader", "test-format", true},
		{"built-in reader", "xlsx", true},
		{"unknown reader", "unknown-format", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKnownReader(tt.input)
			if got != tt.expected {
				t.Errorf("IsKnownReader(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFileArg(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedFormat string
		expectedPath   string
	}{
		{
			name:           "with known format prefix",
			input:          "csv:ledger.txt",
			expectedFormat: "csv",
			expectedPath:   "ledger.txt",
		},
		{
			name:           "no prefix",
			input:          "ledger.xlsx",
			expectedFormat: "",
			expectedPath:   "ledger.xlsx",
		},
		{
			name:           "unknown prefix treated as path",
			input:          "unknown:ledger.xlsx",
			expectedFormat: "",
			expectedPath:   "unknown:ledger.xlsx",
		},
		{
			name:           "windows path with drive letter",
			input:          "C:\\Users\\audit\\ledger.xlsx",
			expectedFormat: "",
			expectedPath:   "C:\\Users\\audit\\ledger.xlsx",
		},
		{
			name:           "format prefix with absolute path",
			input:          "simple-json:/home/user/rows.json",
			expectedFormat: "simple-json",
			expectedPath:   "/home/user/rows.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFormat, gotPath := ParseFileArg(tt.input)
			if gotFormat != tt.expectedFormat {
				t.Errorf("ParseFileArg(%q) format = %q, want %q", tt.input, gotFormat, tt.expectedFormat)
			}
			if gotPath != tt.expectedPath {
				t.Errorf("ParseFileArg(%q) path = %q, want %q", tt.input, gotPath, tt.expectedPath)
			}
		})
	}
}

func TestReaderForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"ledger.xlsx", "xlsx"},
		{"LEDGER.XLSX", "xlsx"},
		{"old/ledger.xls", "xls"},
		{"export.csv", "csv"},
		{"export.tsv", "csv"},
		{"rows.json", "simple-json"},
	}

	for _, tt := range tests {
		name, r, err := ReaderForPath(tt.path)
		if err != nil {
			t.Errorf("ReaderForPath(%q): %v", tt.path, err)
			continue
		}
		if name != tt.expected || r == nil {
			t.Errorf("ReaderForPath(%q) = %q, want %q", tt.path, name, tt.expected)
		}
	}

	if _, _, err := ReaderForPath("ledger.pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestResolveReader(t *testing.T) {
	if _, path, err := ResolveReader("csv:ledger.dat", ""); err != nil || path != "ledger.dat" {
		t.Errorf("prefix: path=%q err=%v", path, err)
	}
	if _, path, err := ResolveReader("ledger.dat", "csv"); err != nil || path != "ledger.dat" {
		t.Errorf("fallback: path=%q err=%v", path, err)
	}
	if _, _, err := ResolveReader("ledger.dat", ""); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("no format: expected ErrUnknownFormat, got %v", err)
	}
	if _, _, err := ResolveReader("ledger.csv", "pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("bad fallback: expected ErrUnknownFormat, got %v", err)
	}
}

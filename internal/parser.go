package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrUnknownFormat is returned when no reader matches a source type or file extension
	ErrUnknownFormat = errors.New("unknown source format")
	// ErrNoSheets is returned for workbooks without any sheet
	ErrNoSheets = errors.New("no sheets found in file")
)

// ReadOptions tunes how a sheet is turned into rows
type ReadOptions struct {
	// Encoding is the charset of text input (CSV); empty means UTF-8
	Encoding string
	// Delimiter overrides the CSV field separator; 0 means sniff it
	Delimiter rune
}

// Reader reads the first sheet of a ledger file into rows
type Reader interface {
	Read(path string, opts ReadOptions) ([]Row, error)
}

// ReaderFunc is a function that implements Reader
type ReaderFunc func(path string, opts ReadOptions) ([]Row, error)

func (f ReaderFunc) Read(path string, opts ReadOptions) ([]Row, error) {
	return f(path, opts)
}

// readers is the registry of available readers
var readers = map[string]Reader{}

// extensions maps lower-case file extensions to reader names
var extensions = map[string]string{}

// RegisterReader registers a reader with the given name and the file
// extensions it handles by default
func RegisterReader(name string, r Reader, exts ...string) {
	readers[name] = r
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = name
	}
}

// GetReader returns the reader for the given source type
func GetReader(source string) (Reader, error) {
	r, ok := readers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFormat, source, AvailableSources())
	}
	return r, nil
}

// ReaderForPath picks a reader from the file extension
func ReaderForPath(path string) (string, Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := extensions[ext]
	if !ok {
		return "", nil, fmt.Errorf("%w: cannot infer format from %q (available: %v)", ErrUnknownFormat, path, AvailableSources())
	}
	return name, readers[name], nil
}

// AvailableSources returns a sorted list of registered source types
func AvailableSources() []string {
	var sources []string
	for name := range readers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownReader returns true if the name is a registered reader
func IsKnownReader(name string) bool {
	_, ok := readers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "csv:ledger.txt" → ("csv", "ledger.txt")
// Example: "ledger.xlsx" → ("", "ledger.xlsx")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownReader(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known reader, treat whole thing as path
}

// ResolveReader finds the reader for a file argument: an explicit
// "format:path" prefix wins, then the fallback source, then the extension.
func ResolveReader(arg, fallback string) (Reader, string, error) {
	format, path := ParseFileArg(arg)
	if format == "" {
		format = fallback
	}
	if format != "" {
		r, err := GetReader(format)
		return r, path, err
	}
	_, r, err := ReaderForPath(path)
	return r, path, err
}

// trimTrailingEmpty drops empty cells at the end of a row
func trimTrailingEmpty(row Row) Row {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func init() {
	// Register built-in readers
	RegisterReader("xlsx", ReaderFunc(ReadXLSX), ".xlsx", ".xlsm")
	RegisterReader("xls", ReaderFunc(ReadXLS), ".xls")
	RegisterReader("csv", ReaderFunc(ReadCSV), ".csv", ".txt", ".tsv")
}

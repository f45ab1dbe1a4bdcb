package internal

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate separators, most common first
var csvDelimiters = []rune{',', ';', '\t', '|'}

// ReadCSV reads a delimited text export. The delimiter is sniffed from the
// first non-blank line unless opts.Delimiter is set, and legacy charsets
// such as "windows-1252" or "iso-8859-1" are decoded via opts.Encoding.
func ReadCSV(path string, opts ReadOptions) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if opts.Encoding != "" {
		enc, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", opts.Encoding, err)
		}
		src = transform.NewReader(f, enc.NewDecoder())
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = trimTrailingEmpty(Row(rec))
	}
	return rows, nil
}

// sniffDelimiter picks the separator that occurs most often on the first
// non-blank line, defaulting to a comma
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, bestCount := ',', 0
		for _, d := range csvDelimiters {
			if n := strings.Count(line, string(d)); n > bestCount {
				best, bestCount = d, n
			}
		}
		return best
	}
	return ','
}

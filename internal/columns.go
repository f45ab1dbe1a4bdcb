package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyColumn is returned for a column label with no letters in it
var ErrEmptyColumn = errors.New("column label has no letters")

const autoLabel = "auto"

// Column addresses a spreadsheet column: either a fixed 0-based index,
// or Auto meaning the value is derived per row.
type Column struct {
	index int
	auto  bool
}

// Auto is the column sentinel for "derive automatically"
var Auto = Column{auto: true}

// Col returns a fixed column at the given 0-based index
func Col(index int) Column {
	return Column{index: index}
}

// IsAuto reports whether the column is the Auto sentinel
func (c Column) IsAuto() bool {
	return c.auto
}

// Index returns the 0-based index and false when the column is Auto
func (c Column) Index() (int, bool) {
	if c.auto {
		return 0, false
	}
	return c.index, true
}

// Cell returns the row's value at this column, or "" when the column is
// Auto or past the end of the row.
func (c Column) Cell(row Row) string {
	i, ok := c.Index()
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// String returns the letter label ("A", "AF") or "auto"
func (c Column) String() string {
	if c.auto {
		return autoLabel
	}
	return IndexToLetter(c.index)
}

// LetterToIndex converts a column label like "A" or "af" to a Column.
// The literal "auto" yields Auto. Non-letter characters are ignored;
// a label with no letters left is rejected with ErrEmptyColumn.
func LetterToIndex(label string) (Column, error) {
	trimmed := strings.TrimSpace(label)
	if strings.EqualFold(trimmed, autoLabel) {
		return Auto, nil
	}

	number := 0
	seen := false
	for _, r := range strings.ToUpper(trimmed) {
		if r < 'A' || r > 'Z' {
			continue
		}
		number = number*26 + int(r-'A'+1)
		seen = true
	}
	if !seen {
		return Column{}, fmt.Errorf("%w: %q", ErrEmptyColumn, label)
	}
	return Col(number - 1), nil
}

// IndexToLetter converts a 0-based index to its column label.
// Negative indices give "".
func IndexToLetter(index int) string {
	if index < 0 {
		return ""
	}
	var letters []byte
	n := index + 1
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}

func (c Column) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column must be a letter label or %q", node.Line, autoLabel)
	}
	parsed, err := LetterToIndex(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

func (c Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Column) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("column must be a string: %w", err)
	}
	parsed, err := LetterToIndex(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

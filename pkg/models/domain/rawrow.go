package domain

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// RawRow is a single row of an external inventory export: column names mapped
// to string values, in the order the columns arrived. Lookups tolerate header
// variants (casing, punctuation, diacritics) via a normalized index, so a
// transformer asking for "Serial Number" also finds "serial_number" or
// "SerialNumber".
type RawRow struct {
	columns    []string
	values     map[string]string
	normalized map[string]string // normalized header -> original column
}

func NewRawRow() *RawRow {
	return &RawRow{
		values:     make(map[string]string),
		normalized: make(map[string]string),
	}
}

// RawRowFrom builds a row from an unordered map. Columns are sorted by name
// so repeated calls on the same map produce identical rows.
func RawRowFrom(columns map[string]string) *RawRow {
	row := NewRawRow()
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row.Set(name, columns[name])
	}
	return row
}

// Set adds or replaces a column value. The first column to claim a normalized
// header keeps it.
func (r *RawRow) Set(column, value string) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
		key := NormalizeHeader(column)
		if _, taken := r.normalized[key]; !taken {
			r.normalized[key] = column
		}
	}
	r.values[column] = value
}

// Get returns the trimmed value for a column, or "" when the column is absent.
func (r *RawRow) Get(column string) string {
	v, _ := r.Lookup(column)
	return v
}

// Lookup resolves a column by exact name first, then by normalized header.
// Values are trimmed of surrounding whitespace.
func (r *RawRow) Lookup(column string) (string, bool) {
	if v, ok := r.values[column]; ok {
		return strings.TrimSpace(v), true
	}
	if original, ok := r.normalized[NormalizeHeader(column)]; ok {
		return strings.TrimSpace(r.values[original]), true
	}
	return "", false
}

// Columns returns column names in arrival order.
func (r *RawRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r *RawRow) Len() int {
	return len(r.columns)
}

// NormalizeHeader lowercases a column name, strips diacritics and drops
// everything that is not a letter or digit.
func NormalizeHeader(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(name)))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

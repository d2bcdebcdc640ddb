// Package dataset ships small example datasets as an embedded DataSource so
// the CLI and API have data to demonstrate comparisons against without any
// external backend.
package dataset

import (
	"context"
	"embed"
	"encoding/csv"
	"math"
	"sort"
	"strconv"
	"strings"

	"betweenstats/internal/errors"
	"betweenstats/ports"
)

//go:embed data/*.csv
var files embed.FS

// List returns the available dataset names.
func List() []string {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}

// Table is an in-memory column-oriented view over one embedded dataset.
// It implements ports.DataSource.
type Table struct {
	name   string
	header []string
	rows   [][]string
}

// Load parses the named embedded dataset.
func Load(name string) (*Table, error) {
	raw, err := files.ReadFile("data/" + name + ".csv")
	if err != nil {
		return nil, errors.Schemaf("unknown dataset %q, available: %s", name, strings.Join(List(), ", "))
	}
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		return nil, errors.DataSource("parsing dataset "+name, err)
	}
	if len(records) < 2 {
		return nil, errors.Schemaf("dataset %q has no data rows", name)
	}
	return &Table{name: name, header: records[0], rows: records[1:]}, nil
}

// Name returns the dataset name.
func (t *Table) Name() string { return t.name }

// Columns lists the columns with their inferred kind. A column is numeric
// when every non-empty cell parses as a float.
func (t *Table) Columns(ctx context.Context) ([]ports.ColumnInfo, error) {
	infos := make([]ports.ColumnInfo, len(t.header))
	for i, name := range t.header {
		kind := ports.ColumnNumeric
		for _, row := range t.rows {
			cell := row[i]
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				kind = ports.ColumnLabel
				break
			}
		}
		infos[i] = ports.ColumnInfo{Name: name, Kind: kind}
	}
	return infos, nil
}

// NumericColumn returns the named column as floats, empty cells as NaN.
func (t *Table) NumericColumn(ctx context.Context, name string) ([]float64, error) {
	i, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(t.rows))
	for r, row := range t.rows {
		values[r], err = parseNumericCell(row[i])
		if err != nil {
			return nil, errors.Schemaf("column %q of dataset %q is not numeric: row %d is %q",
				name, t.name, r+1, row[i])
		}
	}
	return values, nil
}

// LabelColumn returns the named column as group labels, empty cells as "".
func (t *Table) LabelColumn(ctx context.Context, name string) ([]string, error) {
	i, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(t.rows))
	for r, row := range t.rows {
		labels[r] = row[i]
	}
	return labels, nil
}

func (t *Table) columnIndex(name string) (int, error) {
	for i, h := range t.header {
		if h == name {
			return i, nil
		}
	}
	return 0, errors.Schemaf("dataset %q has no column %q, available: %s",
		t.name, name, strings.Join(t.header, ", "))
}

func parseNumericCell(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

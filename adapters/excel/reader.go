// Package excel reads xlsx and csv files into a column-oriented DataSource.
package excel

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"betweenstats/internal/errors"
	"betweenstats/ports"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Open reads the file into a column table usable as a ports.DataSource.
func (r *DataReader) Open() (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.Schemaf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.Schemaf("%s has a header but no data rows", r.filePath)
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// Trailing cells missing from a short row count as missing values.
		padded := make([]string, len(header))
		copy(padded, row)
		body = append(body, padded)
	}
	return &Table{path: r.filePath, header: header, rows: body}, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DataSource("opening CSV file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DataSource("parsing CSV file", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DataSource("opening Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Schemaf("%s contains no sheets", r.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DataSource("reading sheet "+sheets[0], err)
	}
	return rows, nil
}

// Table is the parsed file as an aligned column set. It implements
// ports.DataSource with the usual missing sentinels (NaN, "").
type Table struct {
	path   string
	header []string
	rows   [][]string
}

// Columns lists columns with inferred kinds.
func (t *Table) Columns(ctx context.Context) ([]ports.ColumnInfo, error) {
	infos := make([]ports.ColumnInfo, len(t.header))
	for i, name := range t.header {
		kind := ports.ColumnNumeric
		for _, row := range t.rows {
			if row[i] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				kind = ports.ColumnLabel
				break
			}
		}
		infos[i] = ports.ColumnInfo{Name: name, Kind: kind}
	}
	return infos, nil
}

// NumericColumn returns the named column as floats, missing cells as NaN.
func (t *Table) NumericColumn(ctx context.Context, name string) ([]float64, error) {
	i, err := t.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(t.rows))
	for r, row := range t.rows {
		if row[i] == "" {
			values[r] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, errors.Schemaf("column %q of %s is not numeric: row %d is %q",
				name, t.path, r+1, row[i])
		}
		values[r] = v
	}
	return values, nil
}

// LabelColumn returns the named column as labels, missing cells as "".
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
	return 0, errors.Schemaf("%s has no column %q, available: %s",
		t.path, name, strings.Join(t.header, ", "))
}

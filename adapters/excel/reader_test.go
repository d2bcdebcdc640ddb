package excel

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"

	"betweenstats/ports"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "score,group\n1.5,a\n2.5,a\n3.5,b\n4.5,b\n")

	table, err := NewDataReader(path).Open()
	require.NoError(t, err)

	columns, err := table.Columns(context.Background())
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, ports.ColumnNumeric, columns[0].Kind)
	assert.Equal(t, ports.ColumnLabel, columns[1].Kind)

	values, err := table.NumericColumn(context.Background(), "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, values)

	labels, err := table.LabelColumn(context.Background(), "group")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "b", "b"}, labels)
}

func TestReadCSVMissingCells(t *testing.T) {
	path := writeTempCSV(t, "score,group\n1,a\n,a\n3,\n")

	table, err := NewDataReader(path).Open()
	require.NoError(t, err)

	values, err := table.NumericColumn(context.Background(), "score")
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.True(t, math.IsNaN(values[1]), "empty numeric cell must read as NaN")

	labels, err := table.LabelColumn(context.Background(), "group")
	require.NoError(t, err)
	assert.Equal(t, "", labels[2], "empty label cell must read as empty string")
}

func TestReadCSVShortRowsArePadded(t *testing.T) {
	path := writeTempCSV(t, "score,group\n1,a\n2\n")

	table, err := NewDataReader(path).Open()
	require.NoError(t, err)

	labels, err := table.LabelColumn(context.Background(), "group")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", ""}, labels)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"score", "group"},
		{1.5, "a"},
		{2.5, "b"},
	}
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, cell))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path).Open()
	require.NoError(t, err)

	values, err := table.NumericColumn(context.Background(), "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, values)

	labels, err := table.LabelColumn(context.Background(), "group")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, labels)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/data.csv").Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpenHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "score,group\n")
	_, err := NewDataReader(path).Open()
	require.Error(t, err)
}

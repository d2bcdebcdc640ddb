package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betweenstats/ports"
)

func TestListContainsShippedDatasets(t *testing.T) {
	names := List()
	assert.Contains(t, names, "iris")
	assert.Contains(t, names, "mtcars")
}

func TestLoadIris(t *testing.T) {
	table, err := Load("iris")
	require.NoError(t, err)
	assert.Equal(t, "iris", table.Name())

	columns, err := table.Columns(context.Background())
	require.NoError(t, err)

	kinds := map[string]ports.ColumnKind{}
	for _, c := range columns {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, ports.ColumnNumeric, kinds["sepal_length"])
	assert.Equal(t, ports.ColumnLabel, kinds["species"])

	values, err := table.NumericColumn(context.Background(), "sepal_length")
	require.NoError(t, err)
	assert.Len(t, values, 150)

	labels, err := table.LabelColumn(context.Background(), "species")
	require.NoError(t, err)
	assert.Len(t, labels, 150)

	seen := map[string]int{}
	for _, l := range labels {
		seen[l]++
	}
	assert.Equal(t, map[string]int{"setosa": 50, "versicolor": 50, "virginica": 50}, seen)
}

func TestLoadMtcars(t *testing.T) {
	table, err := Load("mtcars")
	require.NoError(t, err)

	values, err := table.NumericColumn(context.Background(), "mpg")
	require.NoError(t, err)
	assert.Len(t, values, 32)

	// The am column is numeric 0/1 but usable as a two-level grouping via the
	// label view.
	labels, err := table.LabelColumn(context.Background(), "am")
	require.NoError(t, err)
	assert.Contains(t, labels, "0")
	assert.Contains(t, labels, "1")
}

func TestLoadUnknownDataset(t *testing.T) {
	_, err := Load("penguins")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestNumericColumnRejectsLabels(t *testing.T) {
	table, err := Load("iris")
	require.NoError(t, err)

	_, err = table.NumericColumn(context.Background(), "species")
	require.Error(t, err)
}

func TestColumnLookupFailure(t *testing.T) {
	table, err := Load("iris")
	require.NoError(t, err)

	_, err = table.NumericColumn(context.Background(), "stem_length")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no column")
}

package ports

import "context"

// ColumnKind tags how a column can be consumed.
type ColumnKind string

const (
	ColumnNumeric ColumnKind = "numeric"
	ColumnLabel   ColumnKind = "label"
)

// ColumnInfo describes one column of a tabular source.
type ColumnInfo struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// DataSource provides read-only access to aligned columns of a tabular
// backend. Implementations normalize their null representation before
// returning: missing numeric cells become NaN, missing labels become "".
// Columns returned by one source are equal-length and row-aligned.
type DataSource interface {
	// Columns lists the available columns with their inferred kind.
	Columns(ctx context.Context) ([]ColumnInfo, error)

	// NumericColumn returns the named column as float64 values.
	NumericColumn(ctx context.Context, name string) ([]float64, error)

	// LabelColumn returns the named column as group labels.
	LabelColumn(ctx context.Context, name string) ([]string, error)
}

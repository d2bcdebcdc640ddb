// Package postgres exposes one table of a Postgres database as a
// ports.DataSource.
package postgres

import (
	"context"
	"database/sql"
	"math"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"betweenstats/internal/errors"
	"betweenstats/ports"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableSource reads aligned columns from a single table. Column reads are
// ordered by ctid so separate reads of the same unmodified table stay
// row-aligned.
type TableSource struct {
	db    *sqlx.DB
	table string
}

// NewTableSource creates a data source over the named table.
func NewTableSource(db *sqlx.DB, table string) (*TableSource, error) {
	if !identifierPattern.MatchString(table) {
		return nil, errors.Schemaf("invalid table name %q", table)
	}
	return &TableSource{db: db, table: table}, nil
}

// Columns lists the table's columns with kinds derived from the catalog.
func (s *TableSource) Columns(ctx context.Context) ([]ports.ColumnInfo, error) {
	const query = `SELECT column_name, data_type FROM information_schema.columns
		WHERE table_name = $1 ORDER BY ordinal_position`

	rows, err := s.db.QueryxContext(ctx, query, s.table)
	if err != nil {
		return nil, errors.DataSource("listing columns of "+s.table, err)
	}
	defer rows.Close()

	var infos []ports.ColumnInfo
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, errors.DataSource("scanning column metadata", err)
		}
		infos = append(infos, ports.ColumnInfo{Name: name, Kind: kindOf(dataType)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DataSource("listing columns of "+s.table, err)
	}
	if len(infos) == 0 {
		return nil, errors.Schemaf("table %q not found or has no columns", s.table)
	}
	return infos, nil
}

func kindOf(dataType string) ports.ColumnKind {
	switch dataType {
	case "smallint", "integer", "bigint", "real", "double precision", "numeric", "decimal":
		return ports.ColumnNumeric
	}
	return ports.ColumnLabel
}

// NumericColumn reads the named column as floats, NULLs as NaN.
func (s *TableSource) NumericColumn(ctx context.Context, name string) ([]float64, error) {
	query, err := s.columnQuery(name)
	if err != nil {
		return nil, err
	}
	var raw []sql.NullFloat64
	if err := s.db.SelectContext(ctx, &raw, query); err != nil {
		return nil, errors.DataSource("reading column "+name, err)
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		if v.Valid {
			values[i] = v.Float64
		} else {
			values[i] = math.NaN()
		}
	}
	return values, nil
}

// LabelColumn reads the named column as labels, NULLs as "".
func (s *TableSource) LabelColumn(ctx context.Context, name string) ([]string, error) {
	query, err := s.columnQuery(name)
	if err != nil {
		return nil, err
	}
	var raw []sql.NullString
	if err := s.db.SelectContext(ctx, &raw, query); err != nil {
		return nil, errors.DataSource("reading column "+name, err)
	}
	labels := make([]string, len(raw))
	for i, v := range raw {
		if v.Valid {
			labels[i] = v.String
		}
	}
	return labels, nil
}

func (s *TableSource) columnQuery(column string) (string, error) {
	if !identifierPattern.MatchString(column) {
		return "", errors.Schemaf("invalid column name %q", column)
	}
	return "SELECT " + pq.QuoteIdentifier(column) + " FROM " +
		pq.QuoteIdentifier(s.table) + " ORDER BY ctid", nil
}

package coltype

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrTableNotFound is returned by Reflect when the table has no visible columns.
var ErrTableNotFound = errors.New("coltype: table not found")

// Column is one column of a Table.
type Column struct {
	Name       string
	Type       Descriptor
	Nullable   bool
	PrimaryKey bool
}

// Table is a table definition, either built by hand for DDL or produced by Reflect.
type Table struct {
	Schema  string
	Name    string
	Columns []Column
}

// Column returns the column named name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) identifier() pgx.Identifier {
	if t.Schema == "" {
		return pgx.Identifier{t.Name}
	}
	return pgx.Identifier{t.Schema, t.Name}
}

// Querier is the subset of *pgx.Conn, *pgxpool.Pool, and pgx.Tx used by Reflect.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const reflectColumnsSQL = `select column_name, udt_name, is_nullable = 'YES'
from information_schema.columns
where table_schema = $1 and table_name = $2
order by ordinal_position`

// Reflect reads the column definitions of schema.table and resolves each column's server type through r. An empty
// schema means "public". If r is nil Default is used.
func Reflect(ctx context.Context, q Querier, schema, table string, r *Registry) (*Table, error) {
	if r == nil {
		r = Default
	}
	if schema == "" {
		schema = "public"
	}

	rows, err := q.Query(ctx, reflectColumnsSQL, schema, table)
	if err != nil {
		return nil, fmt.Errorf("reflect %s.%s: %w", schema, table, err)
	}

	columns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Column, error) {
		var name, udtName string
		var nullable bool
		if err := row.Scan(&name, &udtName, &nullable); err != nil {
			return Column{}, err
		}
		return Column{Name: name, Type: r.Resolve(udtName), Nullable: nullable}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reflect %s.%s: %w", schema, table, err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, schema, table)
	}

	return &Table{Schema: schema, Name: table, Columns: columns}, nil
}

// CreateTableSQL renders a CREATE TABLE statement for t using each column type's DDL keyword.
func CreateTableSQL(t *Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(t.identifier().Sanitize())
	sb.WriteString(" (")

	var pk []string
	for i, c := range t.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pgx.Identifier{c.Name}.Sanitize())
		sb.WriteByte(' ')
		sb.WriteString(c.Type.ColumnType())
		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if c.PrimaryKey {
			pk = append(pk, pgx.Identifier{c.Name}.Sanitize())
		}
	}

	if len(pk) > 0 {
		sb.WriteString(", PRIMARY KEY (")
		sb.WriteString(strings.Join(pk, ", "))
		sb.WriteByte(')')
	}

	sb.WriteByte(')')
	return sb.String()
}

// DropTableSQL renders a DROP TABLE IF EXISTS statement for t.
func DropTableSQL(t *Table) string {
	return "DROP TABLE IF EXISTS " + t.identifier().Sanitize()
}

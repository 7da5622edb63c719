// Package querybuilder renders the handful of PostgreSQL statement shapes the
// import store needs, with $n placeholders suitable for sqlx.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errNoTable = errors.New("table is required")

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	case len(b.columns) == 0:
		return "", nil, errors.New("select: columns are required")
	}

	w := newSQLWriter(len(b.where))
	w.raw("SELECT ")
	w.list(b.columns)
	w.raw(" FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.list(b.orderBy)
	}
	if b.limit > 0 {
		w.raw(" LIMIT ", strconv.Itoa(b.limit))
	}

	query, args := w.finish()
	return query, args, nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	values    []any
	suffix    string
	returning []string
	err       error
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = values
	return b
}

// Suffix is emitted after VALUES, typically an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = columns
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.err != nil:
		return "", nil, b.err
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert into %s: columns are required", b.table)
	case len(b.values) != len(b.columns):
		return "", nil, fmt.Errorf("insert into %s: %d values for %d columns", b.table, len(b.values), len(b.columns))
	}

	w := newSQLWriter(len(b.values))
	w.raw("INSERT INTO ", b.table, " (")
	w.list(b.columns)
	w.raw(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(value)
	}
	w.raw(")")
	if b.suffix != "" {
		w.raw(" ", b.suffix)
	}
	w.returning(b.returning)

	query, args := w.finish()
	return query, args, nil
}

type assignment struct {
	column string
	value  any
	expr   string
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression such as NOW(); nothing is bound.
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = columns
	return b
}

// ToSQL refuses to render an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("update: %w", errNoTable)
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update %s: nothing to set", b.table)
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("update %s: a where clause is required", b.table)
	}

	w := newSQLWriter(len(b.sets) + len(b.where))
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		if s.expr != "" {
			w.raw(s.expr)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	w.returning(b.returning)

	query, args := w.finish()
	return query, args, nil
}

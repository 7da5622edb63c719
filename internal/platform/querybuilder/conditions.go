package querybuilder

import (
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// sqlWriter accumulates query text in a pooled buffer and numbers bind
// parameters as $1..$n in the order they are written.
type sqlWriter struct {
	buf  *bytebufferpool.ByteBuffer
	args []any
}

func newSQLWriter(argsHint int) *sqlWriter {
	return &sqlWriter{buf: bytebufferpool.Get(), args: make([]any, 0, argsHint)}
}

func (w *sqlWriter) raw(parts ...string) {
	for _, p := range parts {
		_, _ = w.buf.WriteString(p)
	}
}

func (w *sqlWriter) list(items []string) {
	w.raw(strings.Join(items, ", "))
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.raw("$", strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) returning(columns []string) {
	if len(columns) > 0 {
		w.raw(" RETURNING ")
		w.list(columns)
	}
}

// finish releases the buffer; the writer must not be used afterwards.
func (w *sqlWriter) finish() (string, []any) {
	query := w.buf.String()
	bytebufferpool.Put(w.buf)
	w.buf = nil
	return query, w.args
}

// Condition is one WHERE predicate. Predicates are joined with AND.
type Condition interface {
	writeSQL(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
	fold   bool
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

// EqFold compares case-insensitively, LOWER(column) = LOWER($n). Club and
// league names arrive with inconsistent casing from page titles.
func EqFold(column, value string) Condition {
	return eqCondition{column: column, value: value, fold: true}
}

func (c eqCondition) writeSQL(w *sqlWriter) {
	if !c.fold {
		w.raw(c.column, " = ")
		w.bind(c.value)
		return
	}
	w.raw("LOWER(", c.column, ") = LOWER(")
	w.bind(c.value)
	w.raw(")")
}

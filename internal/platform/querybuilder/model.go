package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the `db` tags of model.
func InsertModel(table string, model any) *InsertBuilder {
	cols, vals, err := ModelColumns(model)
	if err != nil {
		return &InsertBuilder{table: table, err: fmt.Errorf("insert into %s: %w", table, err)}
	}
	return InsertInto(table).Columns(cols...).Values(vals...)
}

// UpsertModel builds INSERT ... ON CONFLICT (conflict) DO UPDATE SET for
// every model column outside the conflict target, stamping updated_at.
func UpsertModel(table string, model any, conflict ...string) (*InsertBuilder, error) {
	cols, vals, err := ModelColumns(model)
	if err != nil {
		return nil, err
	}
	if len(conflict) == 0 {
		return nil, fmt.Errorf("upsert %s requires a conflict target", table)
	}

	skip := make(map[string]struct{}, len(conflict))
	for _, col := range conflict {
		skip[col] = struct{}{}
	}

	sets := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, "updated_at = NOW()")

	suffix := "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix), nil
}

// ModelColumns lists the exported `db`-tagged fields of a struct in
// declaration order together with their values.
func ModelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

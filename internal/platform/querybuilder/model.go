package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds one multi-row INSERT from a slice of structs tagged with `db`.
func InsertModels(table string, models any, suffix string) (string, []any, error) {
	slice := reflect.ValueOf(models)
	if slice.Kind() != reflect.Slice {
		return "", nil, fmt.Errorf("models must be a slice")
	}
	if slice.Len() == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	for i := 0; i < slice.Len(); i++ {
		cols, vals, err := columnsAndValues(slice.Index(i))
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// Columns lists the db column names of a tagged struct in field order.
func Columns(model any) []string {
	cols, _, err := columnsAndValues(reflect.ValueOf(model))
	if err != nil {
		return nil
	}
	return cols
}

func columnsAndValues(value reflect.Value) ([]string, []any, error) {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
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

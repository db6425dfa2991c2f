package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one boolean SQL term.
type Condition interface {
	render(w *writer)
}

// writer accumulates SQL text and either binds values as $N placeholders
// or, in inline mode, renders them as escaped literals (view DDL cannot bind).
type writer struct {
	buf    strings.Builder
	args   []any
	inline bool
	err    error
}

func (w *writer) bind(v any) {
	if !w.inline {
		w.args = append(w.args, v)
		w.buf.WriteString(placeholder(len(w.args)))
		return
	}
	lit, err := literal(v)
	if err != nil && w.err == nil {
		w.err = err
	}
	w.buf.WriteString(lit)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Gte(column string, value any) Condition {
	return compareCondition{column: column, op: ">=", value: value}
}

func (c compareCondition) render(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" " + c.op + " ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

// InStrings is In for a string slice.
func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return In(column, out)
}

func (c inCondition) render(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL, binding each ? in order to args.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) render(w *writer) {
	next := 0
	for i := 0; i < len(c.expr); i++ {
		if c.expr[i] == '?' && next < len(c.args) {
			w.bind(c.args[next])
			next++
			continue
		}
		w.buf.WriteByte(c.expr[i])
	}
}

type groupCondition struct {
	joiner string
	terms  []Condition
}

// And groups terms in parentheses joined by AND.
func And(terms ...Condition) Condition {
	return groupCondition{joiner: " AND ", terms: terms}
}

// Or groups terms in parentheses joined by OR.
func Or(terms ...Condition) Condition {
	return groupCondition{joiner: " OR ", terms: terms}
}

func (c groupCondition) render(w *writer) {
	if len(c.terms) == 0 {
		w.buf.WriteString("1=1")
		return
	}
	w.buf.WriteString("(")
	for i, term := range c.terms {
		if i > 0 {
			w.buf.WriteString(c.joiner)
		}
		term.render(w)
	}
	w.buf.WriteString(")")
}

type SelectBuilder struct {
	distinct bool
	columns  []string
	table    string
	where    []Condition
	groupBy  []string
	orderBy  []string
	limit    int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func SelectDistinct(columns ...string) *SelectBuilder {
	b := Select(columns...)
	b.distinct = true
	return b
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

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	w := &writer{}
	if err := b.write(w); err != nil {
		return "", nil, err
	}
	return w.buf.String(), w.args, nil
}

// Inline renders the statement with every value as a literal.
func (b *SelectBuilder) Inline() (string, error) {
	w := &writer{inline: true}
	if err := b.write(w); err != nil {
		return "", err
	}
	if w.err != nil {
		return "", w.err
	}
	return w.buf.String(), nil
}

func (b *SelectBuilder) write(w *writer) error {
	if len(b.columns) == 0 {
		return fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return fmt.Errorf("select table is required")
	}

	w.buf.WriteString("SELECT ")
	if b.distinct {
		w.buf.WriteString("DISTINCT ")
	}
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	writeWhere(w, b.where)
	writeList(w, " GROUP BY ", b.groupBy)
	writeList(w, " ORDER BY ", b.orderBy)
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}
	return nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := &writer{args: make([]any, 0, len(b.rows)*len(b.columns))}
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}

	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}
	return w.buf.String(), w.args, nil
}

type UpdateBuilder struct {
	table   string
	columns []string
	values  []any
	where   []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := &writer{}
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")
	for i, col := range b.columns {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(col)
		w.buf.WriteString(" = ")
		w.bind(b.values[i])
	}
	writeWhere(w, b.where)
	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	w := &writer{}
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	writeWhere(w, b.where)
	return w.buf.String(), w.args, nil
}

func writeWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.render(w)
	}
}

func writeList(w *writer, keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.buf.WriteString(keyword)
	w.buf.WriteString(strings.Join(parts, ", "))
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func literal(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return QuoteLiteral(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", v)
	}
}

// QuoteLiteral wraps value in single quotes, doubling embedded quotes.
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const eventsTable = "events"

// Logical columns understood by the translator. Tag access uses the
// snuba-style nested layout: tags.key / tags.value parallel arrays.
const (
	colTagsKey   = "tags_key"
	colTagsValue = "tags_value"
)

// numericKeyColumns are group-by columns that scan as UInt64 and are
// rendered into Group.Key as decimal strings.
var numericKeyColumns = map[string]bool{
	"issue":       true,
	"project_id":  true,
	"environment": true,
}

type clickhouseEngine struct {
	conn clickhouse.Conn
}

// NewClickHouse returns an Engine that translates query descriptors into
// single SELECT statements against the events table.
func NewClickHouse(conn clickhouse.Conn) Engine {
	return &clickhouseEngine{conn: conn}
}

func (e *clickhouseEngine) Query(ctx context.Context, p Params) (Result, error) {
	query, args, err := buildQuery(p)
	if err != nil {
		return Result{}, err
	}

	rows, err := e.conn.Query(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("engine query: %w", err)
	}
	defer rows.Close()

	var result Result
	for rows.Next() {
		keyHolders := make([]any, len(p.GroupBy))
		for i, col := range p.GroupBy {
			if numericKeyColumns[col] {
				keyHolders[i] = new(uint64)
			} else {
				keyHolders[i] = new(string)
			}
		}
		aggHolders := make([]any, len(p.Aggregations))
		for i, agg := range p.Aggregations {
			switch agg.Function {
			case AggMin, AggMax:
				aggHolders[i] = new(time.Time)
			default:
				aggHolders[i] = new(uint64)
			}
		}

		dests := append(append([]any{}, keyHolders...), aggHolders...)
		if err := rows.Scan(dests...); err != nil {
			return Result{}, fmt.Errorf("engine scan: %w", err)
		}

		row := make(Row, len(p.Aggregations))
		for i, agg := range p.Aggregations {
			switch v := aggHolders[i].(type) {
			case *time.Time:
				row[agg.Alias] = *v
			case *uint64:
				row[agg.Alias] = *v
			}
		}

		if len(p.GroupBy) == 0 {
			result.Totals = row
			continue
		}
		result.Groups = append(result.Groups, Group{
			Key: formatKey(keyHolders[0]),
			Row: row,
		})
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("engine rows: %w", err)
	}
	return result, nil
}

func formatKey(holder any) string {
	switch v := holder.(type) {
	case *uint64:
		return strconv.FormatUint(*v, 10)
	case *string:
		return *v
	}
	return ""
}

// buildQuery renders a Params descriptor into SQL. Numeric filter values are
// inlined; string condition values are bound as arguments.
func buildQuery(p Params) (string, []any, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	selects := make([]string, 0, len(p.GroupBy)+len(p.Aggregations))
	for _, col := range p.GroupBy {
		expr, err := columnExpr(col)
		if err != nil {
			return "", nil, err
		}
		if expr == col {
			selects = append(selects, expr)
		} else {
			selects = append(selects, fmt.Sprintf("%s AS %s", expr, groupAlias(col)))
		}
	}
	for _, agg := range p.Aggregations {
		expr, err := aggregateExpr(agg)
		if err != nil {
			return "", nil, err
		}
		selects = append(selects, fmt.Sprintf("%s AS %s", expr, agg.Alias))
	}
	if len(selects) == 0 {
		return "", nil, fmt.Errorf("engine: query selects nothing")
	}
	sb.WriteString(strings.Join(selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(eventsTable)

	if usesTagArrays(p) {
		sb.WriteString(" ARRAY JOIN tags.key AS tags_key, tags.value AS tags_value")
	}

	where := []string{"timestamp >= ? AND timestamp < ?"}
	args = append(args, p.Start, p.End)

	filterCols := make([]string, 0, len(p.Filters))
	for col := range p.Filters {
		filterCols = append(filterCols, col)
	}
	sort.Strings(filterCols)
	for _, col := range filterCols {
		ids := p.Filters[col]
		if len(ids) == 0 {
			continue
		}
		where = append(where, fmt.Sprintf("%s IN (%s)", col, joinIDs(ids)))
	}

	for _, cond := range p.Conditions {
		clause, condArgs, err := conditionExpr(cond)
		if err != nil {
			return "", nil, err
		}
		where = append(where, clause)
		args = append(args, condArgs...)
	}

	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(where, " AND "))

	if len(p.GroupBy) > 0 {
		aliases := make([]string, len(p.GroupBy))
		for i, col := range p.GroupBy {
			aliases[i] = groupAlias(col)
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(aliases, ", "))
	}

	if p.OrderBy.Column != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(groupAlias(p.OrderBy.Column))
		if p.OrderBy.Desc {
			sb.WriteString(" DESC")
		}
	}

	if p.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(p.Limit))
	}

	return sb.String(), args, nil
}

// groupAlias names the output column for a logical column so that GROUP BY
// and ORDER BY can reference the select list.
func groupAlias(col string) string {
	if key, ok := tagColumn(col); ok {
		return "tag_" + sanitizeIdent(key)
	}
	return col
}

func sanitizeIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// tagColumn reports whether col is a tags[key] accessor and extracts the key.
func tagColumn(col string) (string, bool) {
	if strings.HasPrefix(col, "tags[") && strings.HasSuffix(col, "]") {
		return col[len("tags[") : len(col)-1], true
	}
	return "", false
}

func columnExpr(col string) (string, error) {
	if key, ok := tagColumn(col); ok {
		return fmt.Sprintf("tags.value[indexOf(tags.key, %s)]", quoteString(key)), nil
	}
	return col, nil
}

func aggregateExpr(agg Aggregation) (string, error) {
	switch agg.Function {
	case AggCount:
		return "count()", nil
	case AggUniq, AggMin, AggMax:
		expr, err := columnExpr(agg.Column)
		if err != nil {
			return "", err
		}
		fn := agg.Function
		if fn == AggUniq {
			fn = "uniqExact"
		}
		return fmt.Sprintf("%s(%s)", fn, expr), nil
	default:
		return "", fmt.Errorf("engine: unsupported aggregate %q", agg.Function)
	}
}

func conditionExpr(cond Condition) (string, []any, error) {
	if len(cond.Or) > 0 {
		clauses := make([]string, 0, len(cond.Or))
		var args []any
		for _, sub := range cond.Or {
			clause, subArgs, err := conditionExpr(sub)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, clause)
			args = append(args, subArgs...)
		}
		return "(" + strings.Join(clauses, " OR ") + ")", args, nil
	}

	expr, err := columnExpr(cond.Column)
	if err != nil {
		return "", nil, err
	}

	switch cond.Op {
	case OpEq, OpNotEq:
		if len(cond.Values) != 1 {
			return "", nil, fmt.Errorf("engine: %s condition on %q needs exactly one value", cond.Op, cond.Column)
		}
		return fmt.Sprintf("%s %s ?", expr, cond.Op), []any{cond.Values[0]}, nil
	case OpIn:
		if len(cond.Values) == 0 {
			return "", nil, fmt.Errorf("engine: empty IN condition on %q", cond.Column)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cond.Values)), ", ")
		args := make([]any, len(cond.Values))
		for i, v := range cond.Values {
			args[i] = v
		}
		return fmt.Sprintf("%s IN (%s)", expr, placeholders), args, nil
	case OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", expr), nil, nil
	default:
		return "", nil, fmt.Errorf("engine: unsupported operator %q", cond.Op)
	}
}

func usesTagArrays(p Params) bool {
	for _, col := range p.GroupBy {
		if col == colTagsKey || col == colTagsValue {
			return true
		}
	}
	for _, agg := range p.Aggregations {
		if agg.Column == colTagsKey || agg.Column == colTagsValue {
			return true
		}
	}
	var walk func(conds []Condition) bool
	walk = func(conds []Condition) bool {
		for _, c := range conds {
			if c.Column == colTagsKey || c.Column == colTagsValue || walk(c.Or) {
				return true
			}
		}
		return false
	}
	return walk(p.Conditions)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func quoteString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(s) + "'"
}

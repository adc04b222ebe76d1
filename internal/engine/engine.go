// Package engine defines the boundary to the columnar analytics store.
// Callers describe a time-bounded aggregation query as a Params value and
// receive either a single row of aggregates or one row per group-by key.
package engine

import (
	"context"
	"time"
)

// Comparison operators understood by the engine.
const (
	OpEq        = "="
	OpNotEq     = "!="
	OpIn        = "IN"
	OpIsNotNull = "IS NOT NULL"
)

// Aggregate functions understood by the engine.
const (
	AggCount = "count"
	AggUniq  = "uniq"
	AggMin   = "min"
	AggMax   = "max"
)

// Condition is a single comparison against a column, or an OR-group of
// nested comparisons when Or is non-empty. Top-level conditions are ANDed.
type Condition struct {
	Column string
	Op     string
	Values []string

	// Or, when set, makes this condition a disjunction of its members and
	// Column/Op/Values are ignored.
	Or []Condition
}

// Aggregation names one aggregate output column.
type Aggregation struct {
	Function string
	Column   string
	Alias    string
}

// OrderBy selects the result ordering. The zero value means engine order.
type OrderBy struct {
	Column string
	Desc   bool
}

// Params describes one aggregation query.
//
// Filters map a column to the set of allowed numeric ids and are always
// ANDed; Conditions carry everything else, including string comparisons and
// OR-groups. A query without GroupBy returns a single row of aggregates.
type Params struct {
	Start        time.Time
	End          time.Time
	GroupBy      []string
	Conditions   []Condition
	Filters      map[string][]int64
	Aggregations []Aggregation
	Limit        int
	OrderBy      OrderBy
}

// Row holds named aggregate values for one result row.
type Row map[string]any

// Count returns the named count/uniq aggregate, or 0 when absent.
func (r Row) Count(alias string) uint64 {
	switch v := r[alias].(type) {
	case uint64:
		return v
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	default:
		return 0
	}
}

// Time returns the named min/max timestamp aggregate, or the zero time when
// absent.
func (r Row) Time(alias string) time.Time {
	if v, ok := r[alias].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// Group is one result row of a grouped query, keyed by the group-by value
// rendered as a string (numeric ids in decimal).
type Group struct {
	Key string
	Row Row
}

// Result is the outcome of one query. For scalar queries Totals holds the
// aggregates and Groups is empty; a nil Totals means the engine returned no
// row at all, which is distinct from a row of zero-valued aggregates. For
// grouped queries Groups preserves engine order.
type Result struct {
	Totals Row
	Groups []Group
}

// Engine executes aggregation queries against the analytics store. Engine
// failures are reported as-is; they are never translated into "no data".
type Engine interface {
	Query(ctx context.Context, p Params) (Result, error)
}

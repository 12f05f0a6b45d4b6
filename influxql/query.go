// Package influxql is the structured InfluxQL query model behind a visual
// query editor: a persisted Target, the builder rules that keep its select
// and group-by parts well ordered, and the renderer producing query text.
package influxql

import (
	u "github.com/araddon/gou"

	"github.com/araddon/qldash/part"
)

// Join conditions between tag filters.
const (
	CondAnd = "AND"
	CondOr  = "OR"
)

const (
	defaultPolicy       = "default"
	defaultResultFormat = "time_series"
	defaultMeasurement  = "measurement"
)

type (
	// Target is the persisted description of one query as stored by the
	// dashboard.  Absent sequences are nil, present but empty ones are not.
	Target struct {
		Measurement  string        `json:"measurement,omitempty"`
		Policy       string        `json:"policy,omitempty"`
		Select       [][]part.Part `json:"select"`
		GroupBy      []part.Part   `json:"groupBy"`
		Tags         []*TagFilter  `json:"tags"`
		RawQuery     bool          `json:"rawQuery,omitempty"`
		Query        string        `json:"query,omitempty"`
		ResultFormat string        `json:"resultFormat,omitempty"`
		OrderByTime  string        `json:"orderByTime,omitempty"`
		Limit        string        `json:"limit,omitempty"`
		SLimit       string        `json:"slimit,omitempty"`
		Fill         string        `json:"fill,omitempty"`
	}
	// TagFilter restricts matched series by tag value.  Operator is optional,
	// when empty it is chosen from the value (regex or not).
	TagFilter struct {
		Key       string `json:"key"`
		Operator  string `json:"operator,omitempty"`
		Value     string `json:"value"`
		Condition string `json:"condition,omitempty"`
		Negated   bool   `json:"negated,omitempty"`
	}
	// Query wraps a Target being edited.  A Query is owned by a single editor
	// session, callers serialize edits.
	Query struct {
		Target *Target
		reg    *part.Registry
		// implicitGroupBy is set when the select was synthesized over an
		// empty group-by: the synthesized mean() renders with the default
		// grouping until the group-by is edited.
		implicitGroupBy bool
	}
)

// DefaultSelect is the select-group synthesized for targets without one.
func DefaultSelect() []part.Part {
	return []part.Part{part.New("field", "value"), part.New("mean")}
}

// DefaultGroupBy is the grouping synthesized for targets without one.
func DefaultGroupBy() []part.Part {
	return []part.Part{part.New("time", "$interval"), part.New("fill", "null")}
}

// NewQuery creates a query over target using the default part registry,
// filling in defaults for absent fields.
func NewQuery(target *Target) *Query {
	return NewQueryWithRegistry(target, part.DefaultRegistry())
}

// NewQueryWithRegistry creates a query resolving part types against reg.
func NewQueryWithRegistry(target *Target, reg *part.Registry) *Query {
	if target == nil {
		target = &Target{}
	}
	if target.Policy == "" {
		target.Policy = defaultPolicy
	}
	if target.ResultFormat == "" {
		target.ResultFormat = defaultResultFormat
	}
	if target.Tags == nil {
		target.Tags = []*TagFilter{}
	}
	q := &Query{Target: target, reg: reg}
	if target.GroupBy == nil {
		target.GroupBy = DefaultGroupBy()
	}
	if target.Select == nil {
		q.implicitGroupBy = len(target.GroupBy) == 0
		target.Select = [][]part.Part{DefaultSelect()}
	}
	q.warnUnknown()
	return q
}

// warnUnknown logs persisted part types the registry does not know, they are
// kept and treated as functions.
func (q *Query) warnUnknown() {
	check := func(parts []part.Part) {
		for _, p := range parts {
			if _, ok := q.reg.Get(p.Type); !ok {
				u.Warnf("unknown part type %q in %q, treating as function", p.Type, q.Target.Measurement)
			}
		}
	}
	for _, parts := range q.Target.Select {
		check(parts)
	}
	check(q.Target.GroupBy)
}

// Registry used to resolve part types.
func (q *Query) Registry() *part.Registry { return q.reg }

// SelectGroups returns the select-groups, each an ordered select expression.
func (q *Query) SelectGroups() [][]part.Part { return q.Target.Select }

// GroupByParts returns the ordered group-by parts.
func (q *Query) GroupByParts() []part.Part { return q.Target.GroupBy }

// HasGroupByTime is true if grouped by a time interval.
func (q *Query) HasGroupByTime() bool { return q.groupByIndex(part.CategoryTime) >= 0 }

// HasFill is true if group-by carries a fill directive.
func (q *Query) HasFill() bool { return q.groupByIndex(part.CategoryFill) >= 0 }

// renderedGroupBy is the grouping written to the query text.
func (q *Query) renderedGroupBy() []part.Part {
	if q.implicitGroupBy && len(q.Target.GroupBy) == 0 {
		return DefaultGroupBy()
	}
	return q.Target.GroupBy
}

func (q *Query) groupByIndex(c part.Category) int {
	return indexOfCategory(q.reg, q.Target.GroupBy, c)
}

func indexOfCategory(reg *part.Registry, parts []part.Part, c part.Category) int {
	for i, p := range parts {
		if reg.Category(p.Type) == c {
			return i
		}
	}
	return -1
}

func (q *Query) category(p part.Part) part.Category {
	return q.reg.Category(p.Type)
}

func (t *TagFilter) condition() string {
	if t.Condition == "" {
		return CondAnd
	}
	return t.Condition
}

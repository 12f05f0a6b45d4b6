package querydef

import (
	"strconv"
	"strings"

	u "github.com/araddon/gou"
)

// PipelineMinVersion is the first server major version with pipeline aggregations.
const PipelineMinVersion = 2

// MetricAggTypes is the built in metric aggregation table.
var MetricAggTypes = []AggType{
	{Value: "count", Text: "Count", SupportsPipelineWrapping: true},
	{Value: "avg", Text: "Average", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "sum", Text: "Sum", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "max", Text: "Max", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "min", Text: "Min", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "extended_stats", Text: "Extended Stats", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "percentiles", Text: "Percentiles", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true, SupportsInlineScript: true},
	{Value: "cardinality", Text: "Unique Count", RequiresField: true, SupportsPipelineWrapping: true, SupportsMissing: true},
	{Value: "moving_avg", Text: "Moving Average", IsPipelineAgg: true, MinVersion: PipelineMinVersion},
	{Value: "derivative", Text: "Derivative", IsPipelineAgg: true, MinVersion: PipelineMinVersion},
	{Value: "raw_document", Text: "Raw Document"},
}

var defaultRegistry = NewRegistry(MetricAggTypes)

// Registry is an immutable, ordered table of aggregation types.
type Registry struct {
	types []AggType
	index map[string]int
}

// NewRegistry creates a registry over a copy of types, order is kept.
func NewRegistry(types []AggType) *Registry {
	r := &Registry{
		types: append([]AggType(nil), types...),
		index: make(map[string]int, len(types)),
	}
	for i, t := range r.types {
		r.index[t.Value] = i
	}
	return r
}

// DefaultRegistry holds MetricAggTypes.
func DefaultRegistry() *Registry { return defaultRegistry }

// Types returns all registered types regardless of version.
func (r *Registry) Types() []AggType {
	return append([]AggType(nil), r.types...)
}

// Get a type by id.
func (r *Registry) Get(id string) (*AggType, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	t := r.types[i]
	return &t, true
}

// ActiveTypes returns the types offered by a server of major version
// version.  Zero or negative means unknown, which gets the base set.
func (r *Registry) ActiveTypes(version int) []AggType {
	out := make([]AggType, 0, len(r.types))
	for _, t := range r.types {
		if t.MinVersion == 0 || (version > 0 && t.MinVersion <= version) {
			out = append(out, t)
		}
	}
	return out
}

// IsPipelineAgg is true for pipeline aggregation types, unknown ids are not.
func (r *Registry) IsPipelineAgg(id string) bool {
	t, ok := r.Get(id)
	if !ok {
		u.Debugf("unknown aggregation type %q", id)
		return false
	}
	return t.IsPipelineAgg
}

// PipelineAggOptions returns the selected metrics a new pipeline aggregation
// may consume: those whose type supports pipeline wrapping.
func (r *Registry) PipelineAggOptions(metrics []*Metric) []MetricOption {
	out := make([]MetricOption, 0, len(metrics))
	for _, m := range metrics {
		t, ok := r.Get(m.Type)
		if !ok {
			u.Debugf("skipping metric %s of unknown type %q", m.ID, m.Type)
			continue
		}
		if !t.SupportsPipelineWrapping {
			continue
		}
		out = append(out, MetricOption{Text: r.DescribeMetric(m), Value: m.ID, Type: t})
	}
	return out
}

// DescribeMetric is the display text of a selected metric, `Average @value`.
func (r *Registry) DescribeMetric(m *Metric) string {
	text := m.Type
	if t, ok := r.Get(m.Type); ok {
		text = t.Text
	}
	if m.Field == "" {
		return text
	}
	return text + " " + m.Field
}

// OrderByOptions lists what a terms aggregation may be ordered by: doc
// count, term, or any selected non count metric.
func (r *Registry) OrderByOptions(target *Target) []Option {
	out := append([]Option(nil), OrderByOptions...)
	if target == nil {
		return out
	}
	for _, m := range target.Metrics {
		if m.Type == "count" {
			continue
		}
		out = append(out, Option{Text: r.DescribeMetric(m), Value: m.ID})
	}
	return out
}

// DescribeOrderBy is the display text of a terms order by value.
func (r *Registry) DescribeOrderBy(orderBy string, target *Target) string {
	for _, o := range OrderByOptions {
		if o.Value == orderBy {
			return o.Text
		}
	}
	if target != nil {
		for _, m := range target.Metrics {
			if m.ID == orderBy {
				return r.DescribeMetric(m)
			}
		}
	}
	return "metric not found"
}

// ParseVersion reads a server major version such as "2" or "2.4.1".
// Malformed or negative input is 0, the conservative base feature set.
func ParseVersion(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		if s != "" {
			u.Debugf("invalid server version %q", s)
		}
		return 0
	}
	return v
}

// ActiveTypes of the default registry.
func ActiveTypes(version int) []AggType { return defaultRegistry.ActiveTypes(version) }

// IsPipelineAgg in the default registry.
func IsPipelineAgg(id string) bool { return defaultRegistry.IsPipelineAgg(id) }

// PipelineAggOptions against the default registry.
func PipelineAggOptions(metrics []*Metric) []MetricOption {
	return defaultRegistry.PipelineAggOptions(metrics)
}

// DescribeMetric using the default registry.
func DescribeMetric(m *Metric) string { return defaultRegistry.DescribeMetric(m) }

// DescribeOrderBy using the default registry.
func DescribeOrderBy(orderBy string, target *Target) string {
	return defaultRegistry.DescribeOrderBy(orderBy, target)
}

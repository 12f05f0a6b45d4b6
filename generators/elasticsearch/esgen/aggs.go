// Package esgen generates the elasticsearch search DSL for the metric
// aggregations chosen in the query editor.
package esgen

import (
	"fmt"
	"sort"

	u "github.com/araddon/gou"

	"github.com/araddon/qldash/generators/elasticsearch/gentypes"
	"github.com/araddon/qldash/generators/elasticsearch/querydef"
)

/*
	Native go data types that map to the elasticsearch
	aggregations DSL

	"aggs": {
	  "3": {"avg": {"field": "bytes"}},
	  "4": {"moving_avg": {"buckets_path": "3", "window": 5}}
	}
*/
type (
	// Aggs is the "aggs" object of a request, keyed by metric id.
	Aggs map[string]Agg
	// Agg is a single {type: body} aggregation.
	Agg map[string]AggBody
	// AggBody holds the field or buckets_path plus metric settings.
	AggBody map[string]interface{}
)

// docCountPath is the buckets_path of the implicit document count.
const docCountPath = "_count"

// MetricAggs builds the aggregations for metrics.  Count metrics are
// implicit in every bucket and raw documents are not aggregations, both are
// left out.  Pipeline metrics get a buckets_path to the metric they consume.
func MetricAggs(reg *querydef.Registry, metrics []*querydef.Metric) (Aggs, error) {
	byID := make(map[string]*querydef.Metric, len(metrics))
	for _, m := range metrics {
		byID[m.ID] = m
	}

	aggs := make(Aggs, len(metrics))
	for _, m := range metrics {
		t, ok := reg.Get(m.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q", gentypes.ErrUnknownAggType, m.Type)
		}
		switch m.Type {
		case "count", "raw_document":
			continue
		}

		body := make(AggBody, len(m.Settings)+1)
		if t.IsPipelineAgg {
			path, err := bucketsPath(reg, byID, m)
			if err != nil {
				return nil, err
			}
			body["buckets_path"] = path
		} else {
			if t.RequiresField && m.Field == "" {
				return nil, fmt.Errorf("qldash: metric %s of type %s requires a field", m.ID, m.Type)
			}
			body["field"] = m.Field
		}
		for k, v := range m.Settings {
			if v != nil {
				body[k] = v
			}
		}
		aggs[m.ID] = Agg{m.Type: body}
	}
	u.Debugf("built %d metric aggs from %d metrics", len(aggs), len(metrics))
	return aggs, nil
}

func bucketsPath(reg *querydef.Registry, byID map[string]*querydef.Metric, m *querydef.Metric) (string, error) {
	src, ok := byID[m.PipelineAgg]
	if !ok || m.PipelineAgg == "" {
		return "", gentypes.MissingMetric(m.PipelineAgg)
	}
	st, ok := reg.Get(src.Type)
	if !ok || !st.SupportsPipelineWrapping {
		return "", fmt.Errorf("%w: %s of type %s", gentypes.ErrNotPipelineSource, src.ID, src.Type)
	}
	if src.Type == "count" {
		return docCountPath, nil
	}
	return src.ID, nil
}

// IDs returns the aggregation ids in sorted order.
func (a Aggs) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

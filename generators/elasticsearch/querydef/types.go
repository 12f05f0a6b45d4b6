// Package querydef is the vocabulary of the elasticsearch query editor: the
// metric aggregation types valid for a server version, which metrics a
// pipeline aggregation may consume, and the option lists of the editor.
package querydef

type (
	// AggType describes one metric aggregation type.
	AggType struct {
		Value         string
		Text          string
		RequiresField bool
		IsPipelineAgg bool
		// MinVersion is the lowest server major version offering the type,
		// zero means every version.
		MinVersion int
		// SupportsPipelineWrapping is true if the type's output can feed a
		// pipeline aggregation.
		SupportsPipelineWrapping bool
		SupportsMissing          bool
		SupportsInlineScript     bool
	}
	// Metric is one metric aggregation chosen in the editor.
	Metric struct {
		ID          string                 `json:"id"`
		Type        string                 `json:"type"`
		Field       string                 `json:"field,omitempty"`
		PipelineAgg string                 `json:"pipelineAgg,omitempty"`
		Settings    map[string]interface{} `json:"settings,omitempty"`
		Meta        map[string]bool        `json:"meta,omitempty"`
		Hide        bool                   `json:"hide,omitempty"`
	}
	// BucketAgg is one bucket aggregation (terms, date_histogram ...).
	BucketAgg struct {
		ID       string                 `json:"id"`
		Type     string                 `json:"type"`
		Field    string                 `json:"field,omitempty"`
		Settings map[string]interface{} `json:"settings,omitempty"`
	}
	// Target is the persisted elasticsearch query of one panel.
	Target struct {
		Query      string       `json:"query,omitempty"`
		Alias      string       `json:"alias,omitempty"`
		TimeField  string       `json:"timeField,omitempty"`
		Metrics    []*Metric    `json:"metrics"`
		BucketAggs []*BucketAgg `json:"bucketAggs"`
	}
	// Option is one entry of an editor drop down.
	Option struct {
		Text  string
		Value string
	}
	// MetricOption offers an already selected metric, with its type.
	MetricOption struct {
		Text  string
		Value string
		Type  *AggType
	}
	// PipelineSetting is a setting of a pipeline aggregation with its default.
	PipelineSetting struct {
		Text    string
		Default interface{}
	}
)

package querydef

var (
	BucketAggTypes = []AggType{
		{Value: "terms", Text: "Terms", RequiresField: true},
		{Value: "filters", Text: "Filters"},
		{Value: "geohash_grid", Text: "Geo Hash Grid", RequiresField: true},
		{Value: "date_histogram", Text: "Date Histogram", RequiresField: true},
	}

	OrderByOptions = []Option{
		{Text: "Doc Count", Value: "_count"},
		{Text: "Term value", Value: "_term"},
	}

	OrderOptions = []Option{
		{Text: "Top", Value: "desc"},
		{Text: "Bottom", Value: "asc"},
	}

	SizeOptions = []Option{
		{Text: "No limit", Value: "0"},
		{Text: "1", Value: "1"},
		{Text: "2", Value: "2"},
		{Text: "3", Value: "3"},
		{Text: "5", Value: "5"},
		{Text: "10", Value: "10"},
		{Text: "15", Value: "15"},
		{Text: "20", Value: "20"},
	}

	ExtendedStats = []Option{
		{Text: "Avg", Value: "avg"},
		{Text: "Min", Value: "min"},
		{Text: "Max", Value: "max"},
		{Text: "Sum", Value: "sum"},
		{Text: "Count", Value: "count"},
		{Text: "Std Dev", Value: "std_deviation"},
		{Text: "Std Dev Upper", Value: "std_deviation_bounds_upper"},
		{Text: "Std Dev Lower", Value: "std_deviation_bounds_lower"},
	}

	IntervalOptions = []Option{
		{Text: "auto", Value: "auto"},
		{Text: "10s", Value: "10s"},
		{Text: "1m", Value: "1m"},
		{Text: "5m", Value: "5m"},
		{Text: "10m", Value: "10m"},
		{Text: "20m", Value: "20m"},
		{Text: "1h", Value: "1h"},
		{Text: "1d", Value: "1d"},
	}

	MovingAvgModelOptions = []Option{
		{Text: "Simple", Value: "simple"},
		{Text: "Linear", Value: "linear"},
		{Text: "Exponentially Weighted", Value: "ewma"},
		{Text: "Holt Linear", Value: "holt"},
		{Text: "Holt Winters", Value: "holt_winters"},
	}

	pipelineSettings = map[string][]PipelineSetting{
		"moving_avg": {
			{Text: "window", Default: 5},
			{Text: "model", Default: "simple"},
			{Text: "predict"},
		},
		"derivative": {
			{Text: "unit"},
		},
	}
)

// PipelineSettings returns the settings a pipeline metric type takes, nil
// for anything else.
func PipelineSettings(metricType string) []PipelineSetting {
	return pipelineSettings[metricType]
}

// DescribeOrder is the display text of asc/desc.
func DescribeOrder(order string) string {
	for _, o := range OrderOptions {
		if o.Value == order {
			return o.Text
		}
	}
	return order
}

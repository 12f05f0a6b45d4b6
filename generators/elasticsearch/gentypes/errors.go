// Package gentypes holds the types shared by the elasticsearch generators.
package gentypes

import (
	"fmt"
)

var (
	// ErrNotPipelineSource is returned when a pipeline aggregation references a
	// metric whose type cannot feed a pipeline.
	ErrNotPipelineSource = fmt.Errorf("qldash: metric cannot be a pipeline source")
	// ErrUnknownAggType is returned building a request for an unregistered type.
	ErrUnknownAggType = fmt.Errorf("qldash: unknown aggregation type")
)

// MissingMetricError is returned when a pipeline aggregation references a
// metric id not present in the selection.
type MissingMetricError struct {
	ID string
}

// MissingMetric creates a new MissingMetricError for the given metric id.
func MissingMetric(id string) *MissingMetricError {
	return &MissingMetricError{id}
}

func (m *MissingMetricError) Reason() string { return m.Error() }
func (m *MissingMetricError) Status() int    { return 400 }

func (m *MissingMetricError) Error() string {
	return fmt.Sprintf("missing metric %s", m.ID)
}

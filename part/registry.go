package part

import (
	"fmt"
	"strings"
	"sync"

	u "github.com/araddon/gou"
)

var (
	// ErrUnknownPart is returned when a part name is not in the registry.
	ErrUnknownPart = fmt.Errorf("qldash: unknown part type")

	partReg = NewRegistry()
)

// Menu groups, in the order they are offered to the editor.
const (
	GroupAggregations    = "Aggregations"
	GroupSelectors       = "Selectors"
	GroupTransformations = "Transformations"
	GroupMath            = "Math"
	GroupAliasing        = "Aliasing"
	GroupFields          = "Fields"
	GroupBy              = "GroupBy"
)

var groupOrder = []string{
	GroupAggregations,
	GroupSelectors,
	GroupTransformations,
	GroupMath,
	GroupAliasing,
	GroupFields,
	GroupBy,
}

type (
	// ParamDef describes one argument of a part.
	ParamDef struct {
		Name    string
		Type    string // string, int, interval
		Options []string
	}
	// Def is the definition of a part type.
	Def struct {
		Name          string
		Category      Category
		Group         string
		Params        []ParamDef
		DefaultParams []string
	}
	// Registry of part definitions, keyed by lower-cased name.
	Registry struct {
		mu    sync.RWMutex
		defs  map[string]*Def
		names []string
	}
)

// NewRegistry creates an empty part registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Add a definition to registry, replacing any of the same name.
func (m *Registry) Add(d *Def) {
	name := strings.ToLower(d.Name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.defs[name]; !exists {
		m.names = append(m.names, name)
	}
	m.defs[name] = d
}

// Get a definition if it exists.
func (m *Registry) Get(name string) (*Def, bool) {
	m.mu.RLock()
	d, ok := m.defs[strings.ToLower(name)]
	m.mu.RUnlock()
	return d, ok
}

// Category of named part.  Unknown names are treated as functions, a
// persisted dashboard may carry a function this registry has never seen.
func (m *Registry) Category(name string) Category {
	if d, ok := m.Get(name); ok {
		return d.Category
	}
	u.Debugf("unknown part type %q, treating as function", name)
	return CategoryFunction
}

// Create a part of named type populated with the definition's default params.
func (m *Registry) Create(name string) (Part, error) {
	d, ok := m.Get(name)
	if !ok {
		return Part{}, fmt.Errorf("%w: %q", ErrUnknownPart, name)
	}
	return New(d.Name, d.DefaultParams...), nil
}

// Groups returns the definitions keyed by menu group, in registration order.
func (m *Registry) Groups() map[string][]*Def {
	m.mu.RLock()
	defer m.mu.RUnlock()
	groups := make(map[string][]*Def, len(groupOrder))
	for _, name := range m.names {
		d := m.defs[name]
		groups[d.Group] = append(groups[d.Group], d)
	}
	return groups
}

// GroupNames returns menu groups in display order.
func GroupNames() []string {
	return append([]string(nil), groupOrder...)
}

// DefaultRegistry returns the registry holding the InfluxQL part set.
func DefaultRegistry() *Registry { return partReg }

// Register adds a definition to the default registry.
func Register(d *Def) { partReg.Add(d) }

func init() {
	for _, name := range []string{"count", "distinct", "integral", "mean", "median", "mode", "sum"} {
		Register(&Def{Name: name, Category: CategoryFunction, Group: GroupAggregations})
	}

	Register(&Def{Name: "bottom", Category: CategoryFunction, Group: GroupSelectors,
		Params: []ParamDef{{Name: "count", Type: "int"}}, DefaultParams: []string{"3"}})
	Register(&Def{Name: "first", Category: CategoryFunction, Group: GroupSelectors})
	Register(&Def{Name: "last", Category: CategoryFunction, Group: GroupSelectors})
	Register(&Def{Name: "max", Category: CategoryFunction, Group: GroupSelectors})
	Register(&Def{Name: "min", Category: CategoryFunction, Group: GroupSelectors})
	Register(&Def{Name: "percentile", Category: CategoryFunction, Group: GroupSelectors,
		Params: []ParamDef{{Name: "nth", Type: "int"}}, DefaultParams: []string{"95"}})
	Register(&Def{Name: "top", Category: CategoryFunction, Group: GroupSelectors,
		Params: []ParamDef{{Name: "count", Type: "int"}}, DefaultParams: []string{"3"}})

	Register(&Def{Name: "derivative", Category: CategoryFunction, Group: GroupTransformations,
		Params: []ParamDef{{Name: "duration", Type: "interval", Options: []string{"1s", "10s", "1m", "5m", "10m", "15m", "1h"}}},
		DefaultParams: []string{"10s"}})
	Register(&Def{Name: "non_negative_derivative", Category: CategoryFunction, Group: GroupTransformations,
		Params: []ParamDef{{Name: "duration", Type: "interval", Options: []string{"1s", "10s", "1m", "5m", "10m", "15m", "1h"}}},
		DefaultParams: []string{"10s"}})
	Register(&Def{Name: "difference", Category: CategoryFunction, Group: GroupTransformations})
	Register(&Def{Name: "moving_average", Category: CategoryFunction, Group: GroupTransformations,
		Params: []ParamDef{{Name: "window", Type: "int", Options: []string{"5", "10", "20", "30", "40"}}},
		DefaultParams: []string{"10"}})
	Register(&Def{Name: "cumulative_sum", Category: CategoryFunction, Group: GroupTransformations})
	Register(&Def{Name: "stddev", Category: CategoryFunction, Group: GroupTransformations})
	Register(&Def{Name: "elapsed", Category: CategoryFunction, Group: GroupTransformations,
		Params: []ParamDef{{Name: "duration", Type: "interval", Options: []string{"1s", "10s", "1m", "5m", "10m", "15m", "1h"}}},
		DefaultParams: []string{"10s"}})
	Register(&Def{Name: "spread", Category: CategoryFunction, Group: GroupTransformations})

	Register(&Def{Name: "math", Category: CategoryMath, Group: GroupMath,
		Params: []ParamDef{{Name: "expr", Type: "string"}}, DefaultParams: []string{" / 100"}})
	Register(&Def{Name: "alias", Category: CategoryAlias, Group: GroupAliasing,
		Params: []ParamDef{{Name: "name", Type: "string"}}, DefaultParams: []string{"alias"}})
	Register(&Def{Name: "field", Category: CategoryField, Group: GroupFields,
		Params: []ParamDef{{Name: "field", Type: "field"}}, DefaultParams: []string{"value"}})

	Register(&Def{Name: "time", Category: CategoryTime, Group: GroupBy,
		Params: []ParamDef{{Name: "interval", Type: "time", Options: []string{"auto", "1s", "10s", "1m", "5m", "10m", "15m", "1h"}}},
		DefaultParams: []string{"$interval"}})
	Register(&Def{Name: "tag", Category: CategoryTag, Group: GroupBy,
		Params: []ParamDef{{Name: "tag", Type: "string"}}, DefaultParams: []string{"tag"}})
	Register(&Def{Name: "fill", Category: CategoryFill, Group: GroupBy,
		Params: []ParamDef{{Name: "fill", Type: "string", Options: []string{"none", "null", "0", "previous"}}},
		DefaultParams: []string{"null"}})
}

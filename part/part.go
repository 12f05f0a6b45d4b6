// Package part describes the atomic steps of a visual time-series query:
// field references, functions, math transforms, aliases and the group-by
// directives (time, tag, fill).
package part

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of kinds a Part can be.
type Category uint8

const (
	CategoryField Category = iota
	CategoryFunction
	CategoryMath
	CategoryAlias
	CategoryFill
	CategoryTag
	CategoryTime
)

var categoryNames = [...]string{
	CategoryField:    "field",
	CategoryFunction: "function",
	CategoryMath:     "math",
	CategoryAlias:    "alias",
	CategoryFill:     "fill",
	CategoryTag:      "tag",
	CategoryTime:     "time",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// Rank orders select-expression categories: field < function < math < alias.
// Group-by categories have no select rank and return -1.
func (c Category) Rank() int {
	switch c {
	case CategoryField:
		return 0
	case CategoryFunction:
		return 1
	case CategoryMath:
		return 2
	case CategoryAlias:
		return 3
	case CategoryFill, CategoryTag, CategoryTime:
		return -1
	}
	return -1
}

// Part is the persisted form of one query step.
//
//	{"type": "mean", "params": []}
//	{"type": "tag", "params": ["host"]}
type Part struct {
	Type   string `json:"type"`
	Params Params `json:"params,omitempty"`
}

// New creates a part of given type, params are copied.
func New(typ string, params ...string) Part {
	p := Part{Type: strings.ToLower(typ)}
	if len(params) > 0 {
		p.Params = append(Params{}, params...)
	}
	return p
}

// Param returns i'th param or empty string.
func (p Part) Param(i int) string {
	if i < len(p.Params) {
		return p.Params[i]
	}
	return ""
}

// Copy returns a Part not sharing its params slice.
func (p Part) Copy() Part {
	return New(p.Type, p.Params...)
}

func (p Part) String() string {
	return fmt.Sprintf("%s(%s)", p.Type, strings.Join(p.Params, ", "))
}

// Params are the ordered arguments of a part.  Persisted dashboards
// sometimes store numeric params (fill(0), percentile(95)) as json numbers,
// those are kept as their literal text.
type Params []string

func (ps *Params) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*ps = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Params, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("part param must be string or number: %s", string(r))
		}
		out = append(out, n.String())
	}
	*ps = out
	return nil
}

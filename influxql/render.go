package influxql

import (
	"regexp"
	"strings"

	u "github.com/araddon/gou"

	"github.com/araddon/qldash/part"
)

// Format tells an Interpolator how replaced values will be used.
type Format int

const (
	FormatText Format = iota
	// FormatRegex values are embedded in a /regex/ and must be escaped.
	FormatRegex
)

// Interpolator replaces dashboard template variables in query text.
type Interpolator interface {
	Replace(text string, format Format) string
}

// Vars is an Interpolator over a fixed variable map, replacing `$name`
// and `[[name]]` references.
type Vars map[string]string

var varRefRe = regexp.MustCompile(`\$(\w+)|\[\[(\w+)\]\]`)

// Replace variable references present in vars; unknown ones stay as written.
func (v Vars) Replace(text string, format Format) string {
	return varRefRe.ReplaceAllStringFunc(text, func(ref string) string {
		m := varRefRe.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		val, ok := v[name]
		if !ok {
			return ref
		}
		if format == FormatRegex {
			return regexp.QuoteMeta(val)
		}
		return val
	})
}

// Render the query text.  Rendering is pure, repeated calls on an
// unmodified query return identical text.
func (q *Query) Render() string {
	return q.render(nil)
}

// RenderWith renders the query replacing template variables in tag values
// and regex measurements.
func (q *Query) RenderWith(vars Interpolator) string {
	return q.render(vars)
}

func (q *Query) render(vars Interpolator) string {
	t := q.Target
	if t.RawQuery {
		u.Debugf("raw query passthrough interpolate=%v", vars != nil)
		if vars != nil {
			return vars.Replace(t.Query, FormatText)
		}
		return t.Query
	}

	w := NewDialectWriter()
	w.WriteRaw("SELECT ")
	for i, parts := range t.Select {
		if i > 0 {
			w.WriteRaw(", ")
		}
		w.WriteRaw(q.renderSelect(parts))
	}

	w.WriteRaw(" FROM ")
	q.writeMeasurement(w, vars)

	w.WriteRaw(" WHERE ")
	for i, tag := range t.Tags {
		if i > 0 {
			w.WriteRaw(" " + tag.condition() + " ")
		}
		writeTagCondition(w, tag, vars)
	}
	if len(t.Tags) > 0 {
		w.WriteRaw(" AND ")
	}
	w.WriteRaw("$timeFilter")

	for i, p := range q.renderedGroupBy() {
		c := q.category(p)
		switch {
		case i == 0:
			w.WriteRaw(" GROUP BY ")
		case c == part.CategoryFill:
			w.WriteRaw(" ")
		default:
			w.WriteRaw(", ")
		}
		writeGroupByPart(w, c, p)
	}

	if t.Fill != "" {
		w.WriteRaw(" fill(" + t.Fill + ")")
	}
	if strings.EqualFold(t.OrderByTime, "DESC") {
		w.WriteRaw(" ORDER BY time DESC")
	}
	if t.Limit != "" {
		w.WriteRaw(" LIMIT " + t.Limit)
	}
	if t.SLimit != "" {
		w.WriteRaw(" SLIMIT " + t.SLimit)
	}
	u.Debugf("rendered %q", w.String())
	return w.String()
}

// renderSelect folds the parts of one select expression left to right, each
// part wrapping or extending the text rendered so far.
func (q *Query) renderSelect(parts []part.Part) string {
	expr := ""
	for _, p := range parts {
		switch q.category(p) {
		case part.CategoryField:
			w := NewDialectWriter()
			w.WriteIdentity(fieldName(p))
			expr = w.String()
		case part.CategoryFunction:
			args := make([]string, 0, len(p.Params)+1)
			if expr != "" {
				args = append(args, expr)
			}
			args = append(args, p.Params...)
			expr = p.Type + "(" + strings.Join(args, ", ") + ")"
		case part.CategoryMath:
			expr = expr + " " + p.Param(0)
		case part.CategoryAlias:
			w := NewDialectWriter()
			w.WriteRaw(expr + " AS ")
			w.WriteIdentity(p.Param(0))
			expr = w.String()
		case part.CategoryFill, part.CategoryTag, part.CategoryTime:
			// group-by parts have no select rendering
		}
	}
	return expr
}

func fieldName(p part.Part) string {
	if name := p.Param(0); name != "" {
		return name
	}
	return "value"
}

func writeGroupByPart(w DialectWriter, c part.Category, p part.Part) {
	switch c {
	case part.CategoryTime:
		w.WriteRaw("time($interval)")
	case part.CategoryTag, part.CategoryField:
		w.WriteIdentity(p.Param(0))
	case part.CategoryFill:
		fill := p.Param(0)
		if fill == "" {
			fill = "null"
		}
		w.WriteRaw("fill(" + fill + ")")
	case part.CategoryFunction, part.CategoryMath, part.CategoryAlias:
		w.WriteRaw(p.Type + "(" + strings.Join(p.Params, ", ") + ")")
	}
}

func (q *Query) writeMeasurement(w DialectWriter, vars Interpolator) {
	t := q.Target
	if t.Policy != "" && t.Policy != defaultPolicy {
		w.WriteIdentity(t.Policy)
		w.WriteRaw(".")
	}
	m := t.Measurement
	if m == "" {
		m = defaultMeasurement
	}
	if isRegex(m) {
		if vars != nil {
			m = vars.Replace(m, FormatRegex)
		}
		w.WriteRaw(m)
		return
	}
	w.WriteIdentity(m)
}

// tagOperator picks the comparison for a filter, =~ for /regex/ values.
func tagOperator(tag *TagFilter) string {
	op := tag.Operator
	if op == "" {
		op = "="
		if isRegex(tag.Value) {
			op = "=~"
		}
	}
	if tag.Negated {
		switch op {
		case "=":
			op = "!="
		case "=~":
			op = "!~"
		}
	}
	return op
}

func writeTagCondition(w DialectWriter, tag *TagFilter, vars Interpolator) {
	op := tagOperator(tag)
	w.WriteIdentity(tag.Key)
	w.WriteRaw(" " + op + " ")

	value := tag.Value
	switch op {
	case "=~", "!~":
		if vars != nil {
			value = vars.Replace(value, FormatRegex)
		}
		w.WriteRaw(value)
	case "<", ">":
		if vars != nil {
			value = vars.Replace(value, FormatText)
		}
		w.WriteRaw(value)
	default:
		if vars != nil {
			value = vars.Replace(value, FormatText)
		}
		w.WriteLiteral(value)
	}
}

package influxql

import (
	"fmt"

	u "github.com/araddon/gou"

	"github.com/araddon/qldash/part"
)

var (
	// ErrNoSelectGroup is returned for a select-group index out of range.
	ErrNoSelectGroup = fmt.Errorf("qldash: no such select group")
	// ErrNoPart is returned for a part index out of range.
	ErrNoPart = fmt.Errorf("qldash: no such part")
	// ErrLastSelect is returned when removing the only select expression.
	ErrLastSelect = fmt.Errorf("qldash: cannot remove last select")
)

// Named ordering invariants of a query.
const (
	// InvariantFillLast: in group-by a fill directive is always the last part.
	InvariantFillLast = "FillLast"
	// InvariantSelectOrder: select parts are ordered field < function < math < alias
	// with at most one function, math and alias part.
	InvariantSelectOrder = "SelectOrder"
)

// InvariantError names the ordering invariant a query violates.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (m *InvariantError) Reason() string { return m.Error() }
func (m *InvariantError) Status() int    { return 400 }

func (m *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", m.Invariant, m.Detail)
}

// insertIndex decides where a part of category c goes in parts, enforcing
// FillLast for group-by and SelectOrder for select.  It returns either the
// index of a part to replace, or the index to insert at.
func insertIndex(reg *part.Registry, parts []part.Part, c part.Category, groupBy bool) (int, bool) {
	if groupBy {
		switch c {
		case part.CategoryFill, part.CategoryTime:
			if idx := indexOfCategory(reg, parts, c); idx >= 0 {
				return idx, true
			}
		}
		if c != part.CategoryFill {
			if idx := indexOfCategory(reg, parts, part.CategoryFill); idx >= 0 {
				return idx, false
			}
		}
		return len(parts), false
	}

	if idx := indexOfCategory(reg, parts, c); idx >= 0 {
		return idx, true
	}
	rank := c.Rank()
	for i, p := range parts {
		if reg.Category(p.Type).Rank() > rank {
			return i, false
		}
	}
	return len(parts), false
}

func place(parts []part.Part, p part.Part, idx int, replace bool) []part.Part {
	if replace {
		parts[idx] = p
		return parts
	}
	parts = append(parts, part.Part{})
	copy(parts[idx+1:], parts[idx:])
	parts[idx] = p
	return parts
}

// AddGroupBy parses raw part text such as `tag(host)` and adds it to the
// group-by clause, before any fill.  On error the query is unchanged.
func (q *Query) AddGroupBy(raw string) error {
	p, err := q.reg.Parse(raw)
	if err != nil {
		return err
	}
	idx, replace := insertIndex(q.reg, q.Target.GroupBy, q.category(p), true)
	q.Target.GroupBy = place(q.Target.GroupBy, p, idx, replace)
	q.implicitGroupBy = false
	u.Debugf("group by add %s idx=%d replace=%v", p, idx, replace)
	return nil
}

// AddSelectPart adds a part of named type to select-group group.  An existing
// part of the same category is replaced in place, otherwise the part goes
// before the first part ranked after it (math before alias), else last.
func (q *Query) AddSelectPart(group int, name string) error {
	if group < 0 || group >= len(q.Target.Select) {
		return ErrNoSelectGroup
	}
	p, err := q.reg.Create(name)
	if err != nil {
		return err
	}
	parts := q.Target.Select[group]
	idx, replace := insertIndex(q.reg, parts, q.category(p), false)
	q.Target.Select[group] = place(parts, p, idx, replace)
	u.Debugf("select[%d] add %s idx=%d replace=%v", group, p, idx, replace)
	return nil
}

// AddSelect appends a new select expression field(value) mean().
func (q *Query) AddSelect() {
	q.Target.Select = append(q.Target.Select, DefaultSelect())
}

// RemoveSelect removes select-group i, the last one cannot be removed.
func (q *Query) RemoveSelect(i int) error {
	if i < 0 || i >= len(q.Target.Select) {
		return ErrNoSelectGroup
	}
	if len(q.Target.Select) == 1 {
		return ErrLastSelect
	}
	q.Target.Select = append(q.Target.Select[:i], q.Target.Select[i+1:]...)
	return nil
}

// RemoveSelectPart removes one part of a select-group.  Removing the field
// removes the whole select expression.
func (q *Query) RemoveSelectPart(group, index int) error {
	if group < 0 || group >= len(q.Target.Select) {
		return ErrNoSelectGroup
	}
	parts := q.Target.Select[group]
	if index < 0 || index >= len(parts) {
		return ErrNoPart
	}
	if q.category(parts[index]) == part.CategoryField {
		return q.RemoveSelect(group)
	}
	q.Target.Select[group] = append(parts[:index], parts[index+1:]...)
	return nil
}

// RemoveGroupByPart removes group-by part at index.  Fill only makes sense
// with time grouping so removing time removes fill too.
func (q *Query) RemoveGroupByPart(index int) error {
	parts := q.Target.GroupBy
	if index < 0 || index >= len(parts) {
		return ErrNoPart
	}
	removeTime := q.category(parts[index]) == part.CategoryTime
	parts = append(parts[:index], parts[index+1:]...)
	if removeTime {
		if fi := indexOfCategory(q.reg, parts, part.CategoryFill); fi >= 0 {
			parts = append(parts[:fi], parts[fi+1:]...)
		}
	}
	q.Target.GroupBy = parts
	q.implicitGroupBy = false
	u.Debugf("group by remove idx=%d time=%v left=%d", index, removeTime, len(parts))
	return nil
}

// CheckInvariants verifies FillLast and SelectOrder.
func (q *Query) CheckInvariants() error {
	for i, p := range q.Target.GroupBy {
		if q.category(p) == part.CategoryFill && i != len(q.Target.GroupBy)-1 {
			return &InvariantError{InvariantFillLast, fmt.Sprintf("fill at %d of %d", i, len(q.Target.GroupBy))}
		}
	}
	for gi, parts := range q.Target.Select {
		last := -1
		seen := make(map[part.Category]bool, len(parts))
		for i, p := range parts {
			c := q.category(p)
			if c.Rank() < 0 {
				return &InvariantError{InvariantSelectOrder, fmt.Sprintf("select[%d][%d] %s is not a select part", gi, i, p.Type)}
			}
			if c.Rank() < last {
				return &InvariantError{InvariantSelectOrder, fmt.Sprintf("select[%d][%d] %s out of order", gi, i, p.Type)}
			}
			if seen[c] && c != part.CategoryField {
				return &InvariantError{InvariantSelectOrder, fmt.Sprintf("select[%d] has more than one %s", gi, c)}
			}
			seen[c] = true
			last = c.Rank()
		}
	}
	return nil
}

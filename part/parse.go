package part

import (
	"fmt"
	"regexp"
	"strings"

	u "github.com/araddon/gou"
)

// name or name(args)
var partSpecRe = regexp.MustCompile(`^\s*(\w+)\s*(?:\(([^()]*)\))?\s*$`)

// MalformedError is returned for a part specification that is neither
// `name` nor `name(args)`.
type MalformedError struct {
	Spec string
}

func (m *MalformedError) Reason() string { return m.Error() }
func (m *MalformedError) Status() int    { return 400 }

func (m *MalformedError) Error() string {
	return fmt.Sprintf("malformed part specification %q, expected name or name(args)", m.Spec)
}

// Parse a raw part specification such as `tag(host)`, `fill(0)` or `mean`
// against registry.  The argument text is kept as a single param, an empty
// or missing argument list uses the definition's default params.
func (m *Registry) Parse(raw string) (Part, error) {
	match := partSpecRe.FindStringSubmatch(raw)
	if match == nil {
		u.Debugf("malformed part %q", raw)
		return Part{}, &MalformedError{Spec: raw}
	}
	name := strings.ToLower(match[1])
	d, ok := m.Get(name)
	if !ok {
		return Part{}, fmt.Errorf("%w: %q", ErrUnknownPart, name)
	}
	arg := strings.TrimSpace(match[2])
	u.Debugf("parsed part name=%s arg=%q", d.Name, arg)
	if arg == "" {
		return New(d.Name, d.DefaultParams...), nil
	}
	return New(d.Name, arg), nil
}

// Parse a raw part specification against the default registry.
func Parse(raw string) (Part, error) {
	return partReg.Parse(raw)
}

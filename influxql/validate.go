package influxql

import (
	"fmt"
	"strings"

	u "github.com/araddon/gou"
	iql "github.com/influxdata/influxql"
)

// Concrete stand-ins for the placeholders the datasource fills in at query
// time, so rendered text can be checked against the influx grammar.
var placeholderReplacer = strings.NewReplacer(
	"$timeFilter", "time > now() - 1h",
	"$interval", "1m",
)

// Validate renders the query and parses it with the influxql grammar.
func (q *Query) Validate() error {
	text := placeholderReplacer.Replace(q.Render())
	parsed, err := iql.ParseQuery(text)
	if err != nil {
		u.Debugf("invalid query %q: %v", text, err)
		return fmt.Errorf("qldash: invalid influxql %q: %w", text, err)
	}
	if q.Target.RawQuery {
		return nil
	}
	if len(parsed.Statements) != 1 {
		return fmt.Errorf("qldash: expected one statement got %d", len(parsed.Statements))
	}
	if _, ok := parsed.Statements[0].(*iql.SelectStatement); !ok {
		return fmt.Errorf("qldash: expected select statement got %T", parsed.Statements[0])
	}
	return nil
}

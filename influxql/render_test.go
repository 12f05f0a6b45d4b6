package influxql

import (
	"encoding/json"
	"flag"
	"os"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"

	"github.com/araddon/qldash/part"
)

var (
	VerboseTests *bool = flag.Bool("vv", false, "Verbose Logging?")
)

func TestMain(m *testing.M) {
	flag.Parse()
	if *VerboseTests {
		u.SetupLogging("debug")
		u.SetColorOutput()
	}
	os.Exit(m.Run())
}

func p(typ string, params ...string) part.Part { return part.New(typ, params...) }

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name   string
		target *Target
		expect string
	}{
		{
			"measurement only",
			&Target{Measurement: "cpu"},
			`SELECT mean("value") FROM "cpu" WHERE $timeFilter GROUP BY time($interval) fill(null)`,
		},
		{
			"empty select and group by",
			&Target{Measurement: "cpu", GroupBy: []part.Part{}, Tags: []*TagFilter{}},
			`SELECT mean("value") FROM "cpu" WHERE $timeFilter GROUP BY time($interval) fill(null)`,
		},
		{
			"math and alias",
			&Target{Measurement: "cpu", Select: [][]part.Part{
				{p("field", "value"), p("mean"), p("math", "/100"), p("alias", "text")},
			}},
			`SELECT mean("value") /100 AS "text" FROM "cpu" WHERE $timeFilter GROUP BY time($interval) fill(null)`,
		},
		{
			"single tag",
			&Target{Measurement: "cpu",
				GroupBy: []part.Part{p("time", "auto")},
				Tags:    []*TagFilter{{Key: "hostname", Value: "server1"}},
			},
			`SELECT mean("value") FROM "cpu" WHERE "hostname" = 'server1' AND $timeFilter GROUP BY time($interval)`,
		},
		{
			"regex tag",
			&Target{Measurement: "cpu",
				GroupBy: []part.Part{p("time", "auto")},
				Tags:    []*TagFilter{{Key: "app", Value: "/e.*/"}},
			},
			`SELECT mean("value") FROM "cpu" WHERE "app" =~ /e.*/ AND $timeFilter GROUP BY time($interval)`,
		},
		{
			"multiple tags",
			&Target{Measurement: "cpu",
				GroupBy: []part.Part{p("time", "auto")},
				Tags: []*TagFilter{
					{Key: "hostname", Value: "server1"},
					{Key: "app", Value: "email", Condition: CondAnd},
				},
			},
			`SELECT mean("value") FROM "cpu" WHERE "hostname" = 'server1' AND "app" = 'email' AND $timeFilter GROUP BY time($interval)`,
		},
		{
			"tags or condition",
			&Target{Measurement: "cpu",
				GroupBy: []part.Part{p("time", "auto")},
				Tags: []*TagFilter{
					{Key: "hostname", Value: "server1"},
					{Key: "hostname", Value: "server2", Condition: CondOr},
				},
			},
			`SELECT mean("value") FROM "cpu" WHERE "hostname" = 'server1' OR "hostname" = 'server2' AND $timeFilter GROUP BY time($interval)`,
		},
		{
			"group by tag",
			&Target{Measurement: "cpu",
				Tags:    []*TagFilter{},
				GroupBy: []part.Part{{Type: "time"}, p("tag", "host")},
			},
			`SELECT mean("value") FROM "cpu" WHERE $timeFilter GROUP BY time($interval), "host"`,
		},
		{
			"without group by",
			&Target{Measurement: "cpu",
				Select:  [][]part.Part{{p("field", "value")}},
				GroupBy: []part.Part{},
			},
			`SELECT "value" FROM "cpu" WHERE $timeFilter`,
		},
		{
			"without group by and fill",
			&Target{Measurement: "cpu",
				Select:  [][]part.Part{{p("field", "value")}},
				GroupBy: []part.Part{{Type: "time"}, p("fill", "0")},
			},
			`SELECT "value" FROM "cpu" WHERE $timeFilter GROUP BY time($interval) fill(0)`,
		},
		{
			"multiple selects",
			&Target{Measurement: "cpu",
				Select: [][]part.Part{
					{p("field", "value"), p("mean")},
					{p("field", "idle"), p("percentile", "95"), p("alias", "p95")},
				},
			},
			`SELECT mean("value"), percentile("idle", 95) AS "p95" FROM "cpu" WHERE $timeFilter GROUP BY time($interval) fill(null)`,
		},
		{
			"policy, star field and limits",
			&Target{Measurement: "cpu", Policy: "one_week",
				Select:      [][]part.Part{{p("field", "*")}},
				GroupBy:     []part.Part{},
				OrderByTime: "DESC",
				Limit:       "10",
				SLimit:      "5",
			},
			`SELECT * FROM "one_week"."cpu" WHERE $timeFilter ORDER BY time DESC LIMIT 10 SLIMIT 5`,
		},
		{
			"regex measurement, tag operators and legacy fill",
			&Target{Measurement: "/^cpu.*/",
				GroupBy: []part.Part{p("time", "$interval")},
				Tags: []*TagFilter{
					{Key: "host", Value: "it's\\me"},
					{Key: "load", Operator: ">", Value: "5"},
					{Key: "app", Value: "/api/", Negated: true},
					{Key: "dc", Value: "east", Negated: true, Condition: CondOr},
				},
				Fill: "none",
			},
			`SELECT mean("value") FROM /^cpu.*/ WHERE "host" = 'it\'s\\me' AND "load" > 5 AND "app" !~ /api/ OR "dc" != 'east' AND $timeFilter GROUP BY time($interval) fill(none)`,
		},
		{
			"empty measurement",
			&Target{},
			`SELECT mean("value") FROM "measurement" WHERE $timeFilter GROUP BY time($interval) fill(null)`,
		},
		{
			"raw query",
			&Target{RawQuery: true, Query: `SELECT max("v") FROM "m"`},
			`SELECT max("v") FROM "m"`,
		},
	} {
		q := NewQuery(tc.target)
		assert.Equal(t, tc.expect, q.Render(), tc.name)
	}
}

func TestRenderIdempotent(t *testing.T) {
	q := NewQuery(&Target{
		Measurement: "cpu",
		Tags:        []*TagFilter{{Key: "host", Value: "/a|b/"}},
	})
	first := q.Render()
	assert.Equal(t, first, q.Render())
	assert.Equal(t, first, q.Render())
}

func TestRenderWith(t *testing.T) {
	vars := Vars{"host": "web.01", "dc": "east"}
	q := NewQuery(&Target{
		Measurement: "/^$dc\\./",
		Tags: []*TagFilter{
			{Key: "host", Value: "$host"},
			{Key: "host", Value: "/^[[host]]$/", Condition: CondOr},
			{Key: "app", Value: "$unknown"},
		},
	})
	assert.Equal(t, `SELECT mean("value") FROM /^east\./ WHERE "host" = 'web.01' OR "host" =~ /^web\.01$/ AND "app" = '$unknown' AND $timeFilter GROUP BY time($interval) fill(null)`,
		q.RenderWith(vars))
	// uninterpolated render is untouched
	assert.Equal(t, `SELECT mean("value") FROM /^$dc\./ WHERE "host" = '$host' OR "host" =~ /^[[host]]$/ AND "app" = '$unknown' AND $timeFilter GROUP BY time($interval) fill(null)`,
		q.Render())

	raw := NewQuery(&Target{RawQuery: true, Query: `SELECT "v" FROM "m" WHERE "host" = '$host'`})
	assert.Equal(t, `SELECT "v" FROM "m" WHERE "host" = 'web.01'`, raw.RenderWith(vars))
}

func TestTargetJson(t *testing.T) {
	var target Target
	err := json.Unmarshal([]byte(`{
		"measurement": "cpu",
		"select": [[{"type":"field","params":["value"]},{"type":"mean","params":[]}]],
		"groupBy": [{"type":"time","params":["$interval"]},{"type":"fill","params":[0]}],
		"tags": [{"key":"host","operator":"=","value":"a"},{"key":"host","value":"b","condition":"OR"}]
	}`), &target)
	assert.Nil(t, err)
	q := NewQuery(&target)
	assert.Equal(t, `SELECT mean("value") FROM "cpu" WHERE "host" = 'a' OR "host" = 'b' AND $timeFilter GROUP BY time($interval) fill(0)`, q.Render())
	assert.Equal(t, "time_series", target.ResultFormat)
	assert.Equal(t, "default", target.Policy)

	// absent sequences get defaults, present empty ones are honored
	var bare Target
	assert.Nil(t, json.Unmarshal([]byte(`{"measurement":"mem","select":[[{"type":"field","params":["used"]}]],"groupBy":[]}`), &bare))
	assert.Equal(t, `SELECT "used" FROM "mem" WHERE $timeFilter`, NewQuery(&bare).Render())
}

func TestWriter(t *testing.T) {
	w := NewDialectWriter()
	w.WriteIdentity(`say "hi"`)
	w.WriteRaw(" ")
	w.WriteLiteral(`it's`)
	w.WriteRaw(" ")
	w.WriteIdentity("*")
	assert.Equal(t, `"say \"hi\"" 'it\'s' *`, w.String())
	assert.Equal(t, len(w.String()), w.Len())

	assert.Equal(t, `'a\\b'`, LiteralQuoteEscape('\'', `a\b`))
	assert.True(t, isRegex("/x/"))
	assert.True(t, isRegex("//"))
	assert.False(t, isRegex("/"))
	assert.False(t, isRegex("x/"))
}

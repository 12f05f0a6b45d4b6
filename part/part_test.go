package part

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
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

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		typ    string
		params []string
	}{
		{"tag(host)", "tag", []string{"host"}},
		{"fill(0)", "fill", []string{"0"}},
		{"fill", "fill", []string{"null"}},
		{"time()", "time", []string{"$interval"}},
		{"TAG( host )", "tag", []string{"host"}},
		{"mean", "mean", nil},
		{"percentile(99)", "percentile", []string{"99"}},
	} {
		p, err := Parse(tc.raw)
		assert.Nil(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.typ, p.Type, "raw=%q", tc.raw)
		assert.Equal(t, Params(tc.params), p.Params, "raw=%q", tc.raw)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"", "tag(host", "(host)", "tag host", "tag(host))x", "tag(host))", "tag((host))", "fill(0)(1)"} {
		_, err := Parse(raw)
		assert.NotNil(t, err, "raw=%q", raw)
		var me *MalformedError
		assert.True(t, errors.As(err, &me), "raw=%q err=%v", raw, err)
		assert.Equal(t, 400, me.Status())
	}

	_, err := Parse("bogus(1)")
	assert.True(t, errors.Is(err, ErrUnknownPart), "err=%v", err)
}

func TestCategory(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, CategoryFunction, reg.Category("mean"))
	assert.Equal(t, CategoryFunction, reg.Category("SUM"))
	assert.Equal(t, CategoryMath, reg.Category("math"))
	assert.Equal(t, CategoryAlias, reg.Category("alias"))
	assert.Equal(t, CategoryField, reg.Category("field"))
	assert.Equal(t, CategoryFill, reg.Category("fill"))
	assert.Equal(t, CategoryTag, reg.Category("tag"))
	assert.Equal(t, CategoryTime, reg.Category("time"))
	// unknown fails open to function
	assert.Equal(t, CategoryFunction, reg.Category("holt_winters"))

	assert.Equal(t, "function", CategoryFunction.String())
	assert.True(t, CategoryFunction.Rank() < CategoryMath.Rank())
	assert.True(t, CategoryMath.Rank() < CategoryAlias.Rank())
	assert.Equal(t, -1, CategoryFill.Rank())
}

func TestRegistryGroups(t *testing.T) {
	groups := DefaultRegistry().Groups()
	for _, g := range GroupNames() {
		assert.NotEmpty(t, groups[g], "group %s", g)
	}
	assert.Equal(t, "count", groups[GroupAggregations][0].Name)
	assert.Len(t, groups[GroupBy], 3)

	reg := NewRegistry()
	reg.Add(&Def{Name: "Custom", Category: CategoryFunction, Group: GroupAggregations})
	reg.Add(&Def{Name: "custom", Category: CategoryFunction, Group: GroupSelectors})
	assert.Len(t, reg.Groups()[GroupSelectors], 1)
	assert.Len(t, reg.Groups()[GroupAggregations], 0)

	p, err := reg.Create("custom")
	assert.Nil(t, err)
	assert.Equal(t, "custom", p.Type)
	_, err = reg.Create("mean")
	assert.True(t, errors.Is(err, ErrUnknownPart))
}

func TestPartJson(t *testing.T) {
	var parts []Part
	err := json.Unmarshal([]byte(`[{"type":"fill","params":[0]},{"type":"percentile","params":["95"]},{"type":"mean"}]`), &parts)
	assert.Nil(t, err)
	assert.Len(t, parts, 3)
	assert.Equal(t, "0", parts[0].Param(0))
	assert.Equal(t, "95", parts[1].Param(0))
	assert.Equal(t, "", parts[2].Param(0))

	err = json.Unmarshal([]byte(`[{"type":"fill","params":[true]}]`), &parts)
	assert.NotNil(t, err)

	p := New("tag", "host")
	c := p.Copy()
	c.Params[0] = "region"
	assert.Equal(t, "host", p.Param(0))
	assert.Equal(t, "tag(host)", p.String())
}

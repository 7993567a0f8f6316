package jsonskema_test

import (
	"strings"
	"testing"

	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonskema"
)

// Differential check against an independent Draft-07 implementation. Only the
// valid/invalid verdict is compared; error shapes differ between the two.
// EvaluateNull is set because the default null handling is deliberately
// more lenient than Draft-07.
func TestConformance_Draft07(t *testing.T) {
	cases := []struct {
		name      string
		schema    string
		instances []string
	}{
		{"type union", `{"type":["integer","string"],"minimum":3,"minLength":2}`,
			[]string{`1`, `5`, `"a"`, `"ab"`, `1.5`, `null`, `true`, `3.0`}},
		{"closed object", `{"properties":{"a":{"type":"number"}},"required":["a"],"additionalProperties":false}`,
			[]string{`{"a":1}`, `{}`, `{"a":1,"b":2}`, `{"a":"x"}`, `[]`}},
		{"pattern properties", `{"patternProperties":{"^s_":{"type":"string"},"n$":{"type":"number"}},"additionalProperties":{"type":"boolean"}}`,
			[]string{`{"s_x":"a"}`, `{"s_n":"a"}`, `{"z":true}`, `{"z":1}`, `{"xn":2}`}},
		{"tuple", `{"items":[{"type":"string"},{"type":"number"}],"additionalItems":false}`,
			[]string{`["a",1]`, `["a"]`, `["a",1,2]`, `[1]`, `{}`}},
		{"array keywords", `{"items":{"minimum":0},"uniqueItems":true,"contains":{"const":3},"minItems":1,"maxItems":3}`,
			[]string{`[3]`, `[3,3]`, `[]`, `[1,2]`, `[-1,3]`, `[1,2,3,4]`, `[3,3.0]`}},
		{"composition", `{"anyOf":[{"type":"string"},{"minimum":10}],"oneOf":[{"multipleOf":2},{"multipleOf":3}],"not":{"const":12}}`,
			[]string{`4`, `6`, `9`, `12`, `11`, `10`, `"a"`}},
		{"conditional", `{"if":{"properties":{"t":{"const":"a"}}},"then":{"required":["a"]},"else":{"required":["b"]}}`,
			[]string{`{"t":"a","a":1}`, `{"t":"a"}`, `{"t":"x","b":1}`, `{}`, `3`}},
		{"dependencies", `{"dependencies":{"a":["b"],"c":{"properties":{"d":{"type":"integer"}}}}}`,
			[]string{`{"a":1}`, `{"a":1,"b":2}`, `{"c":1,"d":1.5}`, `{"c":1,"d":2}`, `{"d":"x"}`}},
		{"property names", `{"propertyNames":{"pattern":"^[a-z]+$","maxLength":3}}`,
			[]string{`{"abc":1}`, `{"abcd":1}`, `{"A":1}`, `{}`, `"abcdef"`}},
		{"strings", `{"minLength":2,"maxLength":3,"pattern":"^[^0-9]"}`,
			[]string{`"日本"`, `"a"`, `"abcd"`, `"1ab"`, `"ab"`}},
		{"numbers", `{"exclusiveMinimum":0,"maximum":1,"multipleOf":0.25}`,
			[]string{`0`, `0.25`, `0.75`, `1`, `1.25`, `0.3`, `"x"`}},
		{"enum", `{"enum":[1,"a",null,{"x":[1]}]}`,
			[]string{`1`, `1.0`, `null`, `{"x":[1]}`, `2`, `"b"`, `{"x":[2]}`}},
		{"const null", `{"const":null}`, []string{`null`, `0`, `false`, `""`}},
		{"property counts", `{"type":"object","maxProperties":1,"minProperties":1}`,
			[]string{`{"a":1}`, `{}`, `{"a":1,"b":2}`}},
		{"email", `{"format":"email"}`, []string{`"a@b.co"`, `"x"`, `1`}},
		{"ipv4", `{"format":"ipv4"}`, []string{`"1.2.3.4"`, `"256.1.1.1"`}},
		{"date", `{"format":"date"}`, []string{`"2024-01-01"`, `"2024-13-01"`}},
		{"boolean subschemas", `{"properties":{"x":false},"items":true,"not":{"not":true}}`,
			[]string{`{"x":1}`, `{}`, `[1]`}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ref := compileReference(t, c.schema)
			v := jsonskema.MustNew(mustSchema(t, c.schema), jsonskema.Options{EvaluateNull: true})
			for _, in := range c.instances {
				inst, err := santhosh.UnmarshalJSON(strings.NewReader(in))
				require.NoError(t, err)
				want := ref.Validate(inst) == nil
				got := v.Validate(inst)
				assert.Equal(t, want, got.Valid, "instance %s: %v", in, got.Errors)
			}
		})
	}
}

func compileReference(t *testing.T, schema string) *santhosh.Schema {
	t.Helper()
	doc, err := santhosh.UnmarshalJSON(strings.NewReader(schema))
	require.NoError(t, err)
	c := santhosh.NewCompiler()
	c.DefaultDraft(santhosh.Draft7)
	c.AssertFormat()
	require.NoError(t, c.AddResource("schema.json", doc))
	sch, err := c.Compile("schema.json")
	require.NoError(t, err)
	return sch
}

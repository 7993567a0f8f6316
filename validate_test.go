package jsonskema_test

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/format"
	"github.com/reoring/jsonskema/i18n"
	"github.com/reoring/jsonskema/jsonschema"
)

func mustSchema(t *testing.T, doc string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return s
}

func mustInstance(t *testing.T, doc string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))
	return v
}

type point struct {
	Path    string
	Keyword string
}

func points(r jsonskema.Result) []point {
	out := make([]point, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, point{e.Path, e.Keyword})
	}
	return out
}

func TestValidate_TypeGateStopsEvaluation(t *testing.T) {
	s := mustSchema(t, `{"type":"string","minLength":10}`)
	res := jsonskema.Validate(5, s)

	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, jsonskema.KeywordType, e.Keyword)
	assert.Equal(t, "", e.Path)
	assert.Equal(t, []string{"string"}, e.Expected)
	assert.Equal(t, "integer", e.Actual)
	assert.Equal(t, "expected string, got integer", e.Message)
	assert.Same(t, s, e.Schema)
}

func TestValidate_IntegerAcceptsIntegralDecimals(t *testing.T) {
	s := mustSchema(t, `{"type":"integer"}`)
	assert.True(t, jsonskema.Validate(json.Number("1.0"), s).Valid)
	assert.True(t, jsonskema.Validate(json.Number("1e2"), s).Valid)
	assert.False(t, jsonskema.Validate(json.Number("1.5"), s).Valid)
	assert.False(t, jsonskema.Validate("1", s).Valid)
}

func TestValidate_Null(t *testing.T) {
	t.Run("allowed by type union", func(t *testing.T) {
		s := mustSchema(t, `{"type":["string","null"],"minLength":3}`)
		assert.True(t, jsonskema.Validate(nil, s).Valid)
	})
	t.Run("rejected by type", func(t *testing.T) {
		res := jsonskema.Validate(nil, mustSchema(t, `{"type":"string"}`))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "null", res.Errors[0].Actual)
	})
	t.Run("short-circuits other keywords", func(t *testing.T) {
		s := mustSchema(t, `{"const":5,"not":{}}`)
		assert.True(t, jsonskema.Validate(nil, s).Valid)
	})
	t.Run("EvaluateNull", func(t *testing.T) {
		s := mustSchema(t, `{"const":5}`)
		res := jsonskema.Validate(nil, s, jsonskema.Options{EvaluateNull: true})
		assert.Equal(t, []string{jsonskema.KeywordConst}, res.Keywords())
		assert.True(t, jsonskema.Validate(nil, mustSchema(t, `{"enum":[1,null]}`), jsonskema.Options{EvaluateNull: true}).Valid)
	})
	t.Run("false schema still rejects", func(t *testing.T) {
		res := jsonskema.Validate(nil, jsonschema.False())
		assert.Equal(t, []string{jsonskema.KeywordFalse}, res.Keywords())
	})
}

func TestValidate_ConstAndEnumShortCircuit(t *testing.T) {
	s := mustSchema(t, `{"const":"a","minLength":5}`)
	assert.True(t, jsonskema.Validate("a", s).Valid, "a matching const skips minLength")

	res := jsonskema.Validate("b", s)
	assert.Equal(t, []point{{"", jsonskema.KeywordConst}}, points(res))
	assert.Equal(t, "a", res.Errors[0].Expected)

	e := mustSchema(t, `{"enum":[1,2],"minimum":5}`)
	assert.True(t, jsonskema.Validate(1, e).Valid)
	res = jsonskema.Validate(3, e)
	assert.Equal(t, []point{{"", jsonskema.KeywordEnum}}, points(res), "minimum is not evaluated after enum fails")

	num := mustSchema(t, `{"const":1}`)
	assert.True(t, jsonskema.Validate(json.Number("1.0"), num).Valid)
	assert.True(t, jsonskema.Validate(json.Number("1e0"), num).Valid)

	obj := mustSchema(t, `{"enum":[{"a":[1,2]},"x"]}`)
	assert.True(t, jsonskema.Validate(map[string]any{"a": []int{1, 2}}, obj).Valid)
	assert.False(t, jsonskema.Validate(map[string]any{"a": []int{2, 1}}, obj).Valid)
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	s := mustSchema(t, `{"minimum":5,"multipleOf":2}`)
	res := jsonskema.Validate(3, s)
	require.Len(t, res.Errors, 2)
	assert.ElementsMatch(t, []string{jsonskema.KeywordMinimum, jsonskema.KeywordMultipleOf}, res.Keywords())
}

func TestValidate_NumericKeywords(t *testing.T) {
	s := mustSchema(t, `{"exclusiveMinimum":0,"exclusiveMaximum":10,"maximum":9.5}`)
	assert.True(t, jsonskema.Validate(json.Number("9.5"), s).Valid)
	assert.Equal(t, []string{jsonskema.KeywordExclusiveMinimum}, jsonskema.Validate(0, s).Keywords())
	assert.ElementsMatch(t,
		[]string{jsonskema.KeywordMaximum, jsonskema.KeywordExclusiveMaximum},
		jsonskema.Validate(10, s).Keywords())

	m := mustSchema(t, `{"multipleOf":0.01}`)
	assert.True(t, jsonskema.Validate(json.Number("19.99"), m).Valid, "exact decimal arithmetic")
	assert.True(t, jsonskema.Validate(json.Number("0.3"), mustSchema(t, `{"multipleOf":0.1}`)).Valid)
	assert.False(t, jsonskema.Validate(json.Number("0.015"), m).Valid)

	big := mustSchema(t, `{"maximum":12345678901234567889}`)
	assert.False(t, jsonskema.Validate(json.Number("12345678901234567890"), big).Valid)
}

func TestValidate_ExtremeExponents(t *testing.T) {
	huge, tiny := json.Number("1e5000"), json.Number("1e-5000")

	res := jsonskema.Validate(huge, mustSchema(t, `{"type":"number","maximum":10}`))
	assert.Equal(t, []point{{"", jsonskema.KeywordMaximum}}, points(res))

	assert.True(t, jsonskema.Validate(tiny, mustSchema(t, `{"exclusiveMinimum":0}`)).Valid)
	assert.Equal(t, []point{{"", jsonskema.KeywordExclusiveMaximum}},
		points(jsonskema.Validate(tiny, mustSchema(t, `{"exclusiveMaximum":0}`))))

	assert.True(t, jsonskema.Validate(huge, mustSchema(t, `{"type":"integer","multipleOf":2}`)).Valid)
	assert.Equal(t, []point{{"", jsonskema.KeywordType}},
		points(jsonskema.Validate(tiny, mustSchema(t, `{"type":"integer"}`))))
	assert.Equal(t, []point{{"", jsonskema.KeywordMultipleOf}},
		points(jsonskema.Validate(huge, mustSchema(t, `{"multipleOf":3}`))))

	inst := mustInstance(t, `{"n": -1e99999}`)
	res = jsonskema.Validate(inst, mustSchema(t, `{"properties":{"n":{"minimum":-1e300}}}`))
	assert.Equal(t, []point{{"/n", jsonskema.KeywordMinimum}}, points(res))
}

func TestValidate_GoBuiltEnumAndConst(t *testing.T) {
	s := &jsonschema.Schema{Enum: []any{1, "a", []int{2, 3}}}
	for _, ok := range []any{1, json.Number("1.0"), "a", []any{2, 3}} {
		assert.True(t, jsonskema.Validate(ok, s).Valid, "%#v", ok)
	}
	assert.Equal(t, []string{jsonskema.KeywordEnum}, jsonskema.Validate(2, s).Keywords())

	c := any(int64(7))
	v, err := jsonskema.New(&jsonschema.Schema{Const: &c})
	require.NoError(t, err)
	assert.True(t, v.Validate(json.Number("7")).Valid)
	assert.False(t, v.Validate(8).Valid)
	assert.Equal(t, json.Number("7"), *v.Schema().Const, "normalized by New")
}

func TestValidate_AllOf(t *testing.T) {
	s := mustSchema(t, `{"allOf":[{"minimum":2},{"maximum":4}]}`)
	assert.True(t, jsonskema.Validate(3, s).Valid)
	assert.Equal(t, []point{{"", jsonskema.KeywordMaximum}}, points(jsonskema.Validate(5, s)))
	assert.Equal(t, []point{{"", jsonskema.KeywordMinimum}}, points(jsonskema.Validate(1, s)))
}

func TestValidate_AnyOf(t *testing.T) {
	s := mustSchema(t, `{"anyOf":[{"type":"string"},{"minimum":10}]}`)
	assert.True(t, jsonskema.Validate("x", s).Valid)
	assert.True(t, jsonskema.Validate(11, s).Valid)

	res := jsonskema.Validate(1, s)
	assert.Equal(t, []point{
		{"", jsonskema.KeywordAnyOf},
		{"", jsonskema.KeywordType},
		{"", jsonskema.KeywordMinimum},
	}, points(res))
}

func TestValidate_OneOf(t *testing.T) {
	t.Run("ambiguous match reports only the synthetic error", func(t *testing.T) {
		s := mustSchema(t, `{"oneOf":[{"type":"integer"},{"minimum":0}]}`)
		res := jsonskema.Validate(1, s)
		require.Len(t, res.Errors, 1)
		e := res.Errors[0]
		assert.Equal(t, jsonskema.KeywordOneOf, e.Keyword)
		assert.Equal(t, 2, e.Actual)
		assert.Equal(t, "matches 2 schemas in oneOf, expected exactly one", e.Message)
	})
	t.Run("no match carries the branch errors", func(t *testing.T) {
		s := mustSchema(t, `{"oneOf":[{"type":"string"},{"type":"boolean"}]}`)
		res := jsonskema.Validate(1, s)
		assert.Equal(t, []string{jsonskema.KeywordOneOf, jsonskema.KeywordType}, res.Keywords())
		assert.Len(t, res.Errors, 3)
	})
	t.Run("exactly one", func(t *testing.T) {
		s := mustSchema(t, `{"oneOf":[{"type":"integer"},{"type":"string"}]}`)
		assert.True(t, jsonskema.Validate(1, s).Valid)
	})
}

func TestValidate_Not(t *testing.T) {
	s := mustSchema(t, `{"not":{"type":"string"}}`)
	assert.True(t, jsonskema.Validate(1, s).Valid)
	assert.Equal(t, []point{{"", jsonskema.KeywordNot}}, points(jsonskema.Validate("x", s)))
}

func TestValidate_IfThenElse(t *testing.T) {
	s := mustSchema(t, `{"if":{"minimum":10},"then":{"multipleOf":10},"else":{"maximum":3}}`)
	assert.True(t, jsonskema.Validate(20, s).Valid)
	assert.True(t, jsonskema.Validate(2, s).Valid)
	assert.Equal(t, []string{jsonskema.KeywordThen, jsonskema.KeywordMultipleOf}, jsonskema.Validate(15, s).Keywords())
	assert.Equal(t, []string{jsonskema.KeywordElse, jsonskema.KeywordMaximum}, jsonskema.Validate(5, s).Keywords())

	onlyThen := mustSchema(t, `{"if":{"type":"string"},"then":{"minLength":2}}`)
	assert.True(t, jsonskema.Validate(1, onlyThen).Valid, "no else: a failing if is fine")
	assert.False(t, jsonskema.Validate("a", onlyThen).Valid)
}

func TestValidate_UniqueItemsReportsFirstPair(t *testing.T) {
	s := mustSchema(t, `{"uniqueItems":true}`)
	res := jsonskema.Validate([]any{1, 2, 1}, s)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, jsonskema.KeywordUniqueItems, res.Errors[0].Keyword)
	assert.Equal(t, []int{0, 2}, res.Errors[0].Actual)
	assert.Equal(t, "items at index 0 and 2 are equal", res.Errors[0].Message)

	assert.False(t, jsonskema.Validate([]any{json.Number("1"), json.Number("1.0")}, s).Valid)
	assert.True(t, jsonskema.Validate([]any{map[string]any{"a": 1}, map[string]any{"a": 2}}, s).Valid)
}

func TestValidate_NestedPath(t *testing.T) {
	s := mustSchema(t, `{"type":"object","properties":{"age":{"type":"integer","minimum":18}}}`)
	res := jsonskema.Validate(map[string]any{"age": 17}, s)
	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, "/age", e.Path)
	assert.Equal(t, jsonskema.KeywordMinimum, e.Keyword)
	assert.Equal(t, "must be >= 18, got 17", e.Message)
	assert.Equal(t, json.Number("18"), e.Expected)
}

func TestValidate_ArrayKeywords(t *testing.T) {
	tuple := mustSchema(t, `{"items":[{"type":"integer"},{"type":"string"}],"additionalItems":false,"minItems":1,"maxItems":4}`)
	assert.True(t, jsonskema.Validate([]any{1}, tuple).Valid, "shorter than the tuple is fine")
	assert.True(t, jsonskema.Validate([]any{1, "a"}, tuple).Valid)
	assert.Equal(t, []point{{"", jsonskema.KeywordAdditionalItems}}, points(jsonskema.Validate([]any{1, "a", true, false}, tuple)))
	assert.Equal(t, []point{{"/1", jsonskema.KeywordType}}, points(jsonskema.Validate([]any{1, 2}, tuple)))
	assert.Equal(t, []point{{"", jsonskema.KeywordMinItems}}, points(jsonskema.Validate([]any{}, tuple)))

	extra := mustSchema(t, `{"items":[{}],"additionalItems":{"type":"string"}}`)
	assert.Equal(t, []point{{"/2", jsonskema.KeywordType}}, points(jsonskema.Validate([]any{1, "x", 3}, extra)))

	single := mustSchema(t, `{"items":{"type":"integer"},"additionalItems":false}`)
	assert.Equal(t, []point{{"/1", jsonskema.KeywordType}, {"/2", jsonskema.KeywordType}},
		points(jsonskema.Validate([]any{1, "a", "b"}, single)), "additionalItems is ignored without a tuple")

	contains := mustSchema(t, `{"contains":{"type":"string"}}`)
	assert.True(t, jsonskema.Validate([]any{1, "a"}, contains).Valid)
	assert.Equal(t, []string{jsonskema.KeywordContains}, jsonskema.Validate([]any{}, contains).Keywords())
	assert.Equal(t, []string{jsonskema.KeywordContains}, jsonskema.Validate([]any{1, 2}, contains).Keywords())
}

func TestValidate_ObjectKeywords(t *testing.T) {
	s := mustSchema(t, `{
		"required": ["name", "id"],
		"properties": {"name": {"type": "string"}, "id": {"type": "integer"}},
		"patternProperties": {"^x-": {"type": "string"}},
		"additionalProperties": false,
		"maxProperties": 3
	}`)

	assert.True(t, jsonskema.Validate(map[string]any{"name": "a", "id": 1, "x-note": "n"}, s).Valid)

	res := jsonskema.Validate(map[string]any{"zeta": 1, "alpha": 2, "x-bad": 3, "name": 4}, s)
	assert.Equal(t, []point{
		{"", jsonskema.KeywordMaxProperties},
		{"/id", jsonskema.KeywordRequired},
		{"/name", jsonskema.KeywordType},
		{"/alpha", jsonskema.KeywordAdditionalProperties},
		{"/x-bad", jsonskema.KeywordType},
		{"/zeta", jsonskema.KeywordAdditionalProperties},
	}, points(res))
	assert.Equal(t, "missing required property id", res.Errors[1].Message)

	schemaAdditional := mustSchema(t, `{"properties":{"a":{}},"additionalProperties":{"type":"integer"}}`)
	assert.Equal(t, []point{{"/b", jsonskema.KeywordType}},
		points(jsonskema.Validate(map[string]any{"a": "x", "b": "y", "c": 1}, schemaAdditional)))
}

func TestValidate_PointerEscaping(t *testing.T) {
	s := mustSchema(t, `{"required":["a/b"],"properties":{"m~n":{"type":"string"}}}`)
	res := jsonskema.Validate(map[string]any{"m~n": 1}, s)
	assert.Equal(t, []point{{"/a~1b", jsonskema.KeywordRequired}, {"/m~0n", jsonskema.KeywordType}}, points(res))
}

func TestValidate_Dependencies(t *testing.T) {
	s := mustSchema(t, `{"dependencies":{
		"card": ["billing"],
		"vip": {"required": ["level"], "properties": {"level": {"minimum": 1}}}
	}}`)

	assert.True(t, jsonskema.Validate(map[string]any{"other": 1}, s).Valid)

	res := jsonskema.Validate(map[string]any{"card": "4111"}, s)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "/billing", res.Errors[0].Path)
	assert.Equal(t, "property billing is required when card is present", res.Errors[0].Message)

	res = jsonskema.Validate(map[string]any{"vip": true, "level": 0}, s)
	assert.Equal(t, []point{{"", jsonskema.KeywordDependencies}, {"/level", jsonskema.KeywordMinimum}}, points(res))
}

func TestValidate_PropertyNames(t *testing.T) {
	s := mustSchema(t, `{"propertyNames":{"maxLength":3}}`)
	assert.True(t, jsonskema.Validate(map[string]any{"abc": 1}, s).Valid)
	res := jsonskema.Validate(map[string]any{"abcd": 1}, s)
	assert.Equal(t, []point{{"/abcd", jsonskema.KeywordPropertyNames}, {"/abcd", jsonskema.KeywordMaxLength}}, points(res))
}

func TestValidate_StringKeywords(t *testing.T) {
	length := mustSchema(t, `{"maxLength":1}`)
	res := jsonskema.Validate("日本", length)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Actual, "length counts code points")
	assert.True(t, jsonskema.Validate("日", length).Valid)

	pat := mustSchema(t, `{"pattern":"\\d{2}"}`)
	assert.True(t, jsonskema.Validate("ab12cd", pat).Valid, "patterns are not anchored")
	assert.Equal(t, []string{jsonskema.KeywordPattern}, jsonskema.Validate("a1", pat).Keywords())
}

func TestValidate_Format(t *testing.T) {
	s := mustSchema(t, `{"format":"date"}`)
	res := jsonskema.Validate("2023-02-29", s)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, jsonskema.KeywordFormat, res.Errors[0].Keyword)
	assert.Contains(t, res.Errors[0].Message, "is not a valid date")

	assert.True(t, jsonskema.Validate("2023-02-29", s, jsonskema.Options{Formats: format.None}).Valid)
	assert.True(t, jsonskema.Validate("whatever", mustSchema(t, `{"format":"x-custom"}`)).Valid)
	assert.True(t, jsonskema.Validate(12, s).Valid, "format applies to strings only")
}

func TestValidate_Content(t *testing.T) {
	s := mustSchema(t, `{"contentEncoding":"base64","contentMediaType":"application/json"}`)
	assert.True(t, jsonskema.Validate("eyJhIjoxfQ==", s).Valid) // {"a":1}
	assert.Equal(t, []string{jsonskema.KeywordContentEncoding}, jsonskema.Validate("not base64!", s).Keywords())
	assert.Equal(t, []string{jsonskema.KeywordContentMediaType}, jsonskema.Validate("bm90IGpzb24=", s).Keywords())

	raw := mustSchema(t, `{"contentMediaType":"application/vnd.api+json; charset=utf-8"}`)
	assert.True(t, jsonskema.Validate(`{"ok":true}`, raw).Valid)
	assert.False(t, jsonskema.Validate(`{ok}`, raw).Valid)

	other := mustSchema(t, `{"contentEncoding":"quoted-printable","contentMediaType":"text/html"}`)
	assert.True(t, jsonskema.Validate("<p>", other).Valid)
}

func TestValidate_BooleanSchemas(t *testing.T) {
	assert.True(t, jsonskema.Validate(map[string]any{"a": 1}, jsonschema.True()).Valid)
	res := jsonskema.Validate(1, jsonschema.False())
	assert.Equal(t, []point{{"", jsonskema.KeywordFalse}}, points(res))

	s := mustSchema(t, `{"properties":{"secret":false}}`)
	assert.Equal(t, []point{{"/secret", jsonskema.KeywordFalse}}, points(jsonskema.Validate(map[string]any{"secret": 1}, s)))
	assert.True(t, jsonskema.Validate(nil, nil).Valid, "nil schema accepts everything")
}

func TestValidate_DepthGuard(t *testing.T) {
	s := &jsonschema.Schema{}
	var inst any = 1
	for i := 0; i < 6; i++ {
		s = &jsonschema.Schema{Properties: jsonschema.NewProperties().Set("a", s)}
		inst = map[string]any{"a": inst}
	}

	res := jsonskema.Validate(inst, s, jsonskema.Options{MaxDepth: 3})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, jsonskema.KeywordDepth, res.Errors[0].Keyword)
	assert.Equal(t, "/a/a/a/a", res.Errors[0].Path)

	assert.True(t, jsonskema.Validate(inst, s).Valid, "default depth is large enough")
}

func TestValidate_GoValues(t *testing.T) {
	type user struct {
		Name string   `json:"name"`
		Age  int      `json:"age"`
		Tags []string `json:"tags"`
	}
	s := mustSchema(t, `{"properties":{
		"name":{"minLength":1},
		"age":{"minimum":18},
		"tags":{"uniqueItems":true}
	}}`)
	res := jsonskema.Validate(user{Age: 3, Tags: []string{"a", "a"}}, s)
	assert.Equal(t, []point{
		{"/name", jsonskema.KeywordMinLength},
		{"/age", jsonskema.KeywordMinimum},
		{"/tags", jsonskema.KeywordUniqueItems},
	}, points(res))

	res = jsonskema.Validate(make(chan int), jsonschema.True())
	assert.Equal(t, []string{jsonskema.KeywordType}, res.Keywords(), "values without a JSON form are type errors")
}

func TestValidate_UncheckedPattern(t *testing.T) {
	s := &jsonschema.Schema{Pattern: "("}
	res := jsonskema.Validate("x", s)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, jsonskema.KeywordPattern, res.Errors[0].Keyword)
	assert.Contains(t, res.Errors[0].Message, "cannot evaluate pattern")

	_, err := jsonskema.New(s)
	_, ok := jsonschema.AsSchemaErrors(err)
	assert.True(t, ok, "New rejects the schema, got %v", err)
}

func TestNew(t *testing.T) {
	_, err := jsonskema.New(nil)
	assert.ErrorIs(t, err, jsonskema.ErrNilSchema)

	s := mustSchema(t, `{"type":"string"}`)
	v := jsonskema.MustNew(s)
	assert.Same(t, s, v.Schema())
	assert.True(t, v.Validate("ok").Valid)
	assert.Panics(t, func() { jsonskema.MustNew(&jsonschema.Schema{MinLength: jsonschema.Int(-1)}) })
}

func TestValidate_Translator(t *testing.T) {
	s := mustSchema(t, `{"required":["name"]}`)
	res := jsonskema.Validate(map[string]any{}, s, jsonskema.Options{Translator: i18n.ForLanguage("ja")})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "必須プロパティ name が不足しています", res.Errors[0].Message)
}

func TestValidate_RoundTripKeepsOutcome(t *testing.T) {
	s1 := mustSchema(t, `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "integer", "exclusiveMinimum": 0},
			"tags": {"type": "array", "items": {"type": "string", "pattern": "^[a-z]+$"}, "uniqueItems": true},
			"kind": {"enum": ["a", "b"]}
		},
		"dependencies": {"kind": ["tags"]},
		"oneOf": [{"required": ["kind"]}, {"required": ["tags"]}],
		"if": {"properties": {"kind": {"const": "a"}}},
		"then": {"maxProperties": 2}
	}`)
	b, err := s1.MarshalJSON()
	require.NoError(t, err)
	s2, err := jsonschema.ParseJSON(b)
	require.NoError(t, err)

	instances := []string{
		`{"id": 1, "kind": "a"}`,
		`{"id": 0, "tags": ["x", "x", "Y"]}`,
		`{"kind": "c", "tags": []}`,
		`{"id": 2, "kind": "a", "tags": ["a"]}`,
		`[]`,
	}
	for _, in := range instances {
		v := mustInstance(t, in)
		r1, r2 := jsonskema.Validate(v, s1), jsonskema.Validate(v, s2)
		assert.Equal(t, r1.Valid, r2.Valid, in)
		assert.Equal(t, points(r1), points(r2), in)
	}
}

func TestValidator_Concurrent(t *testing.T) {
	v := jsonskema.MustNew(mustSchema(t, `{"items":{"type":"integer","pattern":"x","maximum":10}}`))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			res := v.Validate([]any{n, 20})
			assert.Equal(t, []point{{"/1", jsonskema.KeywordMaximum}}, points(res))
		}(i % 10)
	}
	wg.Wait()
}

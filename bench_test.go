package jsonskema_test

import (
	"context"
	"testing"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/jsonschema"
)

const benchSchema = `{
	"type": "object",
	"required": ["id", "email", "items"],
	"properties": {
		"id": {"type": "string", "format": "uuid"},
		"email": {"type": "string", "format": "email"},
		"age": {"type": "integer", "minimum": 0, "maximum": 150},
		"items": {
			"type": "array",
			"maxItems": 100,
			"items": {
				"type": "object",
				"required": ["sku", "qty"],
				"properties": {
					"sku": {"type": "string", "pattern": "^[A-Z]{3}-\\d{4}$"},
					"qty": {"type": "integer", "exclusiveMinimum": 0},
					"price": {"type": "number", "multipleOf": 0.01}
				},
				"additionalProperties": false
			}
		}
	}
}`

const benchDoc = `{
	"id": "2eb8aa08-aa98-11ea-b4aa-73b441d16380",
	"email": "joe@example.com",
	"age": 42,
	"items": [
		{"sku": "ABC-0001", "qty": 1, "price": 9.99},
		{"sku": "XYZ-1234", "qty": 3, "price": 0.5},
		{"sku": "DEF-9999", "qty": 10, "price": 120.25}
	]
}`

func BenchmarkValidator_Validate(b *testing.B) {
	s, err := jsonschema.ParseJSON([]byte(benchSchema))
	if err != nil {
		b.Fatal(err)
	}
	v := jsonskema.MustNew(s)
	inst, err := jsonskema.DecodeFrom(context.Background(), jsonskema.JSONBytes([]byte(benchDoc)))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if res := v.Validate(inst); !res.Valid {
			b.Fatal(res.Err())
		}
	}
}

func BenchmarkValidateJSON(b *testing.B) {
	s, err := jsonschema.ParseJSON([]byte(benchSchema))
	if err != nil {
		b.Fatal(err)
	}
	v := jsonskema.MustNew(s)
	data := []byte(benchDoc)
	ctx := context.Background()
	opt := jsonskema.DecodeOpt{OnDuplicateKey: jsonskema.Error, MaxDepth: 32}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		if _, err := jsonskema.ValidateJSON(ctx, v, data, opt); err != nil {
			b.Fatal(err)
		}
	}
}

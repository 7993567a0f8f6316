// Package jsonskema validates JSON values against Draft-07 JSON Schema.
//
// - One pass collects every violation as a path-annotated ValidationError
// - Schemas are plain trees (package jsonschema) built in Go or parsed from JSON/YAML
// - Instances can be Go values or streamed from JSON with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Schema modelling lives in jsonschema/, formats in format/, messages in i18n/, the CLI under cmd/jsonskema.
// - $ref is an annotation; references are never resolved.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := jsonschema.ParseJSON(schemaBytes)
//	v, err := jsonskema.New(s)
//	res := v.Validate(map[string]any{"age": 17})
//	res, err = jsonskema.ValidateJSON(ctx, v, body, jsonskema.DecodeOpt{OnDuplicateKey: jsonskema.Error})
//	for _, e := range res.Errors {
//		fmt.Println(e.Path, e.Keyword, e.Message)
//	}
package jsonskema

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	gojson "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Normalize converts an arbitrary Go value into the canonical JSON form.
// Canonical values pass through untouched; Go numbers become json.Number;
// typed slices, string-keyed maps and ordered maps are rebuilt; anything else (structs,
// pointers, json.Marshaler implementations) round-trips through go-json.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string:
		return t, nil
	case json.Number:
		if !ValidNumber(string(t)) {
			return nil, fmt.Errorf("jsonvalue: invalid number %q", string(t))
		}
		return t, nil
	case float64:
		n, ok := FromFloat(t)
		if !ok {
			return nil, fmt.Errorf("jsonvalue: %v has no JSON representation", t)
		}
		return n, nil
	case float32:
		n, ok := FromFloat(float64(t))
		if !ok {
			return nil, fmt.Errorf("jsonvalue: %v has no JSON representation", t)
		}
		return n, nil
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case []any:
		out := make([]any, len(t))
		for i := range t {
			nv, err := Normalize(t[i])
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := Normalize(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case *orderedmap.OrderedMap[string, any]:
		if t == nil {
			return nil, nil
		}
		out := make(map[string]any, t.Len())
		for p := t.Oldest(); p != nil; p = p.Next() {
			nv, err := Normalize(p.Value)
			if err != nil {
				return nil, err
			}
			out[p.Key] = nv
		}
		return out, nil
	}
	return normalizeReflect(v)
}

func normalizeReflect(v any) (any, error) {
	if _, ok := v.(json.Marshaler); ok {
		return viaJSON(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte marshals as a base64 string
			return viaJSON(v)
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			nv, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return viaJSON(v)
		}
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nv, err := Normalize(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = nv
		}
		return out, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	}
	return viaJSON(v)
}

func viaJSON(v any) (any, error) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonvalue: cannot marshal %T: %w", v, err)
	}
	return Decode(b)
}

// Decode parses a single JSON document into the canonical form.
func Decode(b []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("jsonvalue: unexpected data after top-level value")
	}
	return out, nil
}

// IsCanonical reports whether v is already in canonical form all the way
// down, so Normalize would only copy it.
func IsCanonical(v any) bool {
	switch t := v.(type) {
	case nil, bool, string:
		return true
	case json.Number:
		return ValidNumber(string(t))
	case []any:
		for _, e := range t {
			if !IsCanonical(e) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range t {
			if !IsCanonical(e) {
				return false
			}
		}
		return true
	}
	return false
}

package jsonskema

import (
	"strconv"

	eng "github.com/reoring/jsonskema/internal/engine"
	"github.com/reoring/jsonskema/internal/jsonvalue"
	"github.com/reoring/jsonskema/jsonschema"
)

func (w *walker) array(arr []any, s *jsonschema.Schema, path string, depth int, out Errors) Errors {
	n := len(arr)
	if s.MinItems != nil && n < *s.MinItems {
		out = w.fail(out, path, s, KeywordMinItems, KeywordMinItems, *s.MinItems, n, nil)
	}
	if s.MaxItems != nil && n > *s.MaxItems {
		out = w.fail(out, path, s, KeywordMaxItems, KeywordMaxItems, *s.MaxItems, n, nil)
	}
	if s.UniqueItems {
		if i, j, dup := firstDuplicate(arr); dup {
			out = w.fail(out, path, s, KeywordUniqueItems, KeywordUniqueItems, true, []int{i, j},
				map[string]string{"first": itoa(i), "second": itoa(j)})
		}
	}

	if it := s.Items; it != nil {
		if !it.IsTuple() {
			for i, el := range arr {
				out = w.validate(el, it.Schema, elemPath(path, i), depth+1, out)
			}
		} else {
			for i, sub := range it.Tuple {
				if i >= n {
					break
				}
				out = w.validate(arr[i], sub, elemPath(path, i), depth+1, out)
			}
			out = w.additionalItems(arr, s, path, depth, out)
		}
	}

	if s.Contains != nil {
		found := false
		for i, el := range arr {
			if len(w.validate(el, s.Contains, elemPath(path, i), depth+1, nil)) == 0 {
				found = true
				break
			}
		}
		if !found {
			out = w.fail(out, path, s, KeywordContains, KeywordContains, nil, nil, nil)
		}
	}
	return out
}

// additionalItems applies to the elements past a tuple. The false schema
// yields a single error at the array itself.
func (w *walker) additionalItems(arr []any, s *jsonschema.Schema, path string, depth int, out Errors) Errors {
	extra, tuple := s.AdditionalItems, len(s.Items.Tuple)
	if extra == nil || len(arr) <= tuple {
		return out
	}
	if b, ok := extra.IsBool(); ok {
		if !b {
			out = w.fail(out, path, s, KeywordAdditionalItems, KeywordAdditionalItems, tuple, len(arr), nil)
		}
		return out
	}
	for i := tuple; i < len(arr); i++ {
		out = w.validate(arr[i], extra, elemPath(path, i), depth+1, out)
	}
	return out
}

// firstDuplicate finds the first pair i < j of equal elements, scanning by i.
func firstDuplicate(arr []any) (int, int, bool) {
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if jsonvalue.Equal(arr[i], arr[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func elemPath(base string, i int) string { return base + "/" + strconv.Itoa(i) }

func propPath(base, name string) string { return eng.JoinPointer(base, name) }

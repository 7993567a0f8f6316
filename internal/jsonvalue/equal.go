package jsonvalue

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

var numberComparer = cmp.Comparer(func(a, b json.Number) bool {
	c, ok := Compare(a, b)
	if !ok {
		return a == b
	}
	return c == 0
})

// Equal reports structural equality of two values. Numbers compare by value,
// so 1, 1.0 and 1e0 are equal; a number never equals a string or a boolean.
// Non-canonical operands (an int from Go code, say) are normalized first; a
// value that cannot be normalized equals nothing.
func Equal(a, b any) bool {
	var ok bool
	if a, ok = canonical(a); !ok {
		return false
	}
	if b, ok = canonical(b); !ok {
		return false
	}
	if KindOf(a) != KindOf(b) {
		return false
	}
	return cmp.Equal(a, b, numberComparer)
}

func canonical(v any) (any, bool) {
	if IsCanonical(v) {
		return v, true
	}
	nv, err := Normalize(v)
	return nv, err == nil
}

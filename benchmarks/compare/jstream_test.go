//go:build jstream

package compare_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/bcicen/jstream"
)

// jstream emits array elements one at a time; each is validated against
// the item schema without building the whole slice.
func Benchmark_StreamValidate_jstream_HugeArray(b *testing.B) {
	v := newValidator(b, itemSchema)
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		dec := jstream.NewDecoder(bytes.NewReader(data), 1)
		for mv := range dec.Stream() {
			if res := v.Validate(mv.Value); !res.Valid {
				b.Fatal(res.Err())
			}
		}
		if err := dec.Err(); err != nil && err != io.EOF {
			b.Fatal(err)
		}
	}
}

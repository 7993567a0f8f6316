package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonskema/internal/jsonvalue"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// StrictYAMLReader decodes a multi-document YAML stream using yaml.Node to detect
// duplicate keys (with positions). Documents come back in the canonical JSON
// form: numbers as json.Number, mappings as map[string]any, or as ordered
// maps when Ordered is set.
type StrictYAMLReader struct {
	dec *yaml.Decoder
	// Ordered makes mappings decode into *orderedmap.OrderedMap[string, any]
	// so key order survives; FromDocument accepts both forms.
	Ordered bool
}

// NewStrictYAMLReader constructs a StrictYAMLReader.
func NewStrictYAMLReader(r io.Reader) *StrictYAMLReader {
	return &StrictYAMLReader{dec: yaml.NewDecoder(r)}
}

// Next returns the next YAML document converted into a JSON-compatible Go value.
// It returns (nil, io.EOF) when the stream is exhausted. Duplicate keys cause an error.
func (s *StrictYAMLReader) Next() (any, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return s.convert(root.Content[0])
}

// ReadAll reads all documents from the YAML stream.
func (s *StrictYAMLReader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// ParseYAML decodes a single-document YAML schema. Duplicate keys are
// rejected and declared property order is preserved.
func ParseYAML(b []byte) (*Schema, error) {
	r := NewStrictYAMLReader(bytes.NewReader(b))
	r.Ordered = true
	docs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("jsonschema: decode yaml: %w", err)
	}
	switch len(docs) {
	case 0:
		return nil, errors.New("jsonschema: empty YAML document")
	case 1:
		return FromDocument(docs[0])
	default:
		return nil, fmt.Errorf("jsonschema: expected one YAML document, found %d", len(docs))
	}
}

func (s *StrictYAMLReader) convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return s.convert(n.Content[0])
	case yaml.AliasNode:
		return s.convert(n.Alias)
	case yaml.MappingNode:
		var plain map[string]any
		var ordered *orderedmap.OrderedMap[string, any]
		if s.Ordered {
			ordered = orderedmap.New[string, any]()
		} else {
			plain = make(map[string]any, len(n.Content)/2)
		}
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("unsupported non-scalar YAML key at %d:%d", k.Line, k.Column)
			}
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := s.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if s.Ordered {
				ordered.Set(key, val)
			} else {
				plain[key] = val
			}
		}
		if s.Ordered {
			return ordered, nil
		}
		return plain, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := s.convert(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, nil
	}
}

func scalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return n.Value, nil
		}
		return b, nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return json.Number(strconv.FormatInt(i, 10)), nil
		}
		if bi, ok := new(big.Int).SetString(n.Value, 0); ok {
			return json.Number(bi.String()), nil
		}
		return n.Value, nil
	case "!!float":
		if jsonvalue.ValidNumber(n.Value) {
			return json.Number(n.Value), nil
		}
		switch strings.ToLower(strings.TrimLeft(n.Value, "+-")) {
		case ".inf", ".nan":
			return nil, fmt.Errorf("YAML value %s at %d:%d has no JSON representation", n.Value, n.Line, n.Column)
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return n.Value, nil
		}
		num, ok := jsonvalue.FromFloat(f)
		if !ok {
			return nil, fmt.Errorf("YAML value %s at %d:%d has no JSON representation", n.Value, n.Line, n.Column)
		}
		return num, nil
	default:
		// !!str, !!timestamp, !!binary and custom tags stay textual
		return n.Value, nil
	}
}

package kubeopenapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/reoring/jsonskema/jsonschema"
)

// ErrCRDNotFound is returned when no CRD in a bundle matches the lookup.
var ErrCRDNotFound = errors.New("kubeopenapi: CRD not found in YAML bundle")

// CRD summarizes one CustomResourceDefinition of a bundle.
type CRD struct {
	Name   string
	Group  string
	Kind   string
	Plural string
	// Versions lists spec.versions names; StorageVersion is the one marked
	// storage (the first when none is).
	Versions       []string
	StorageVersion string
}

// ImportYAMLForCRDKind scans a multi-document YAML (e.g., CRD bundle) and imports
// the first CustomResourceDefinition matching the given spec.names.kind.
// If no matching CRD is found, the error wraps ErrCRDNotFound.
func ImportYAMLForCRDKind(data []byte, kind string, opts Options) (*jsonschema.Schema, Diag, error) {
	return importFromBundle(data, opts, "kind "+kind, func(c CRD) bool { return c.Kind == kind })
}

// ImportYAMLForCRDName scans a multi-document YAML and imports the CRD
// with given metadata.name.
func ImportYAMLForCRDName(data []byte, name string, opts Options) (*jsonschema.Schema, Diag, error) {
	return importFromBundle(data, opts, "name "+name, func(c CRD) bool { return c.Name == name })
}

// ListCRDs returns the CRDs of a multi-document YAML bundle in document order.
func ListCRDs(data []byte) ([]CRD, error) {
	var out []CRD
	err := eachCRD(data, func(c CRD, _ *object) bool {
		out = append(out, c)
		return false
	})
	return out, err
}

func importFromBundle(data []byte, opts Options, what string, match func(CRD) bool) (*jsonschema.Schema, Diag, error) {
	var found *object
	err := eachCRD(data, func(c CRD, doc *object) bool {
		if match(c) {
			found = doc
			return true
		}
		return false
	})
	if err != nil {
		return nil, &simpleDiag{}, err
	}
	if found == nil {
		return nil, &simpleDiag{}, fmt.Errorf("%w: %s", ErrCRDNotFound, what)
	}
	return Import(found, opts)
}

// eachCRD calls fn for every CustomResourceDefinition document until fn
// returns true. Duplicate YAML keys abort the scan.
func eachCRD(data []byte, fn func(CRD, *object) bool) error {
	r := jsonschema.NewStrictYAMLReader(bytes.NewReader(data))
	r.Ordered = true
	for {
		v, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("kubeopenapi: %w", err)
		}
		doc := asObject(v)
		if doc == nil {
			continue
		}
		if k, _ := get(doc, "kind").(string); k != "CustomResourceDefinition" {
			continue
		}
		if fn(describe(doc), doc) {
			return nil
		}
	}
}

func describe(doc *object) CRD {
	spec := asObject(get(doc, "spec"))
	names := asObject(get(spec, "names"))
	c := CRD{}
	c.Name, _ = get(asObject(get(doc, "metadata")), "name").(string)
	c.Group, _ = get(spec, "group").(string)
	c.Kind, _ = get(names, "kind").(string)
	c.Plural, _ = get(names, "plural").(string)
	if vers, ok := get(spec, "versions").([]any); ok {
		for _, v := range vers {
			vm := asObject(v)
			n, ok := get(vm, "name").(string)
			if !ok {
				continue
			}
			c.Versions = append(c.Versions, n)
			if storage, _ := get(vm, "storage").(bool); storage && c.StorageVersion == "" {
				c.StorageVersion = n
			}
		}
	} else if v, ok := get(spec, "version").(string); ok {
		c.Versions = []string{v}
	}
	if c.StorageVersion == "" && len(c.Versions) > 0 {
		c.StorageVersion = c.Versions[0]
	}
	return c
}

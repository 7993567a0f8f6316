package kubeopenapi

import (
	"strings"

	eng "github.com/reoring/jsonskema/internal/engine"
)

// value keywords hold instance data, never sub-schemas
var skipRefScan = map[string]bool{
	"enum": true, "const": true, "default": true, "examples": true,
	"$defs": true, "definitions": true,
}

// expandRefs inlines local references to $defs and definitions of root.
// The referencing node keeps its own keywords; missing ones are copied from
// the target. Other references stay in place as annotations.
func expandRefs(root *object, d *simpleDiag) {
	defs := make(map[string]*object)
	for _, kw := range []string{"$defs", "definitions"} {
		m := asObject(get(root, kw))
		if m == nil {
			continue
		}
		for p := m.Oldest(); p != nil; p = p.Next() {
			if def := asObject(p.Value); def != nil {
				defs["#/"+kw+"/"+eng.EscapePointerToken(p.Key)] = def
			}
		}
	}
	resolveOne(root, defs, d, make(map[string]bool))
}

// resolveRefsInPlace expands local $refs in every sub-schema of node.
func resolveRefsInPlace(node *object, defs map[string]*object, d *simpleDiag, visited map[string]bool) {
	for p := node.Oldest(); p != nil; p = p.Next() {
		if skipRefScan[p.Key] {
			continue
		}
		switch v := p.Value.(type) {
		case *object:
			resolveOne(v, defs, d, visited)
		case []any:
			for _, el := range v {
				if m := asObject(el); m != nil {
					resolveOne(m, defs, d, visited)
				}
			}
		}
	}
}

// resolveOne expands a single schema map with local $ref, performing a shallow merge.
func resolveOne(s *object, defs map[string]*object, d *simpleDiag, visited map[string]bool) {
	ref, ok := get(s, "$ref").(string)
	if !ok {
		resolveRefsInPlace(s, defs, d, visited)
		return
	}
	base, known := defs[ref]
	switch {
	case !known && strings.HasPrefix(ref, "#/"):
		d.warnf("$ref to unknown definition %q", ref)
	case !known:
		d.warnf("$ref %q not supported (local $defs and definitions only)", ref)
	case visited[ref]:
		d.warnf("cyclic $ref detected at %s (skipping expansion)", ref)
		return
	}
	resolveRefsInPlace(s, defs, d, visited)
	if !known {
		return
	}

	visited[ref] = true
	cp := asObject(deepCopy(base))
	resolveRefsInPlace(cp, defs, d, visited)
	delete(visited, ref)

	s.Delete("$ref")
	for p := cp.Oldest(); p != nil; p = p.Next() {
		if _, exists := s.Get(p.Key); !exists {
			s.Set(p.Key, p.Value)
		}
	}
}

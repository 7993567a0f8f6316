package kubeopenapi

import "fmt"

// UnknownBehavior configures how unknown fields are treated when importing CRD schemas.
//
// Draft-07 has no pruning, so UnknownPrune and UnknownPreserve both leave
// objects open to validation.
type UnknownBehavior int

const (
	UnknownPrune UnknownBehavior = iota
	// UnknownStrict closes every object that declares properties with
	// additionalProperties: false, unless it carries
	// x-kubernetes-preserve-unknown-fields.
	UnknownStrict
	UnknownPreserve
)

// DefaultMode controls what happens to "default" values found in the schema.
// Validation never applies them.
type DefaultMode int

const (
	// DefaultAnnotate keeps defaults as annotations on the imported tree.
	DefaultAnnotate DefaultMode = iota
	// DefaultIgnore strips them.
	DefaultIgnore
)

// Profile selects a compatibility profile.
type Profile string

const (
	// ProfileStructuralV1 warns about nodes that break the Kubernetes
	// structural schema rules (missing type and similar).
	ProfileStructuralV1 Profile = "structural-v1"
	ProfileLoose        Profile = "loose"
)

// Options controls import behavior for Kubernetes OpenAPI v3 schemas.
type Options struct {
	Profile     Profile
	Unknown     UnknownBehavior
	DefaultMode DefaultMode
	// EnableEmbeddedChecks makes x-kubernetes-embedded-resource nodes require
	// apiVersion, kind and metadata.
	EnableEmbeddedChecks bool
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool  { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) {
	d.ws = append(d.ws, fmt.Sprintf(f, a...))
}

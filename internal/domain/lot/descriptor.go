// Package lot parses raw certificate lot tokens into structured descriptors.
package lot

// Kind classifies how a raw lot token expands into physical lots.
type Kind string

const (
	// KindSingle is one numeric lot code covering one physical unit.
	KindSingle Kind = "single"
	// KindExplicitMulti lists every lot code on the certificate
	// ("139912/139913", "139859-139860").
	KindExplicitMulti Kind = "explicit_multi"
	// KindImplicitMulti is the "139865/2" shorthand: one base lot printed
	// N times under the same internal code.
	KindImplicitMulti Kind = "implicit_multi"
	// KindAlphanumeric covers supplier-specific lot formats that carry
	// letters ("AB-1234C").
	KindAlphanumeric Kind = "alphanumeric"
)

// Descriptor is the parsed form of one raw lot token.
type Descriptor struct {
	// Raw is the original token, trimmed and stripped of stray quotes.
	Raw string

	Kind Kind

	// Members are the lot codes this token expands to, in certificate order.
	// Always len >= 1. For implicit multi it holds only the base lot; the
	// extra units share that code and are not resolved separately.
	Members []string

	// Base is the anchor lot code of an implicit multi, empty otherwise.
	Base string

	// Count is the number of physical units the token represents.
	Count int

	// AnnotationHint is the "+N" suffix rendered after an implicit multi's
	// internal lot, empty for every other kind.
	AnnotationHint string
}

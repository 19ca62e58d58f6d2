package segment

import "strings"

// Marker is the single-character suffix (or standalone token) that marks a
// capture boundary in source code, e.g. component$ or onClick$.
const Marker = "$"

// Kind discriminates the closed set of segment variants.
type Kind int

const (
	// Named is an ordinary scope identifier, not a capture boundary.
	Named Kind = iota
	// AnonymousCaptured is the bare marker token; it carries no name text.
	AnonymousCaptured
	// NamedCaptured is an identifier ending with the marker.
	NamedCaptured
)

func (k Kind) String() string {
	switch k {
	case Named:
		return "named"
	case AnonymousCaptured:
		return "anonymous-captured"
	case NamedCaptured:
		return "named-captured"
	default:
		return "unknown"
	}
}

// Segment is one lexical token along the path from an enclosing declaration
// to a capture boundary. Classification is a pure function of the token's
// textual form; identical tokens always classify identically.
type Segment struct {
	kind Kind
	name string
}

// Classify converts a raw lexical token into a typed Segment. Every string
// classifies to exactly one variant; there are no error conditions.
func Classify(token string) Segment {
	if token == Marker {
		return Segment{kind: AnonymousCaptured}
	}
	if name, ok := strings.CutSuffix(token, Marker); ok {
		return Segment{kind: NamedCaptured, name: name}
	}
	return Segment{kind: Named, name: token}
}

func (s Segment) Kind() Kind {
	return s.kind
}

// IsQwik reports whether the segment denotes a capture boundary.
func (s Segment) IsQwik() bool {
	switch s.kind {
	case Named:
		return false
	case AnonymousCaptured, NamedCaptured:
		return true
	default:
		return false
	}
}

// String renders the segment back to text: the name with the marker removed,
// or the empty string for an anonymous capture.
func (s Segment) String() string {
	switch s.kind {
	case Named, NamedCaptured:
		return s.name
	case AnonymousCaptured:
		return ""
	default:
		return ""
	}
}

// BindingName returns a syntactically valid parameter/variable name for the
// segment. Anonymous captures bind to the literal marker so the emitted
// placeholder stays valid while visually signaling anonymity.
func (s Segment) BindingName() string {
	switch s.kind {
	case Named, NamedCaptured:
		return s.name
	case AnonymousCaptured:
		return Marker
	default:
		return Marker
	}
}

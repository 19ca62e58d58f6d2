package ident

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/qrlgen-dev/qrlgen/internal/source"
)

// Target selects the symbol-name format for a compilation invocation.
type Target int

const (
	Prod Target = iota
	Lib
	Dev
	Test
)

func (t Target) String() string {
	switch t {
	case Prod:
		return "prod"
	case Lib:
		return "lib"
	case Dev:
		return "dev"
	case Test:
		return "test"
	default:
		return "unknown"
	}
}

// ParseTarget maps a target name from config or flags to its Target value.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod":
		return Prod, nil
	case "lib":
		return Lib, nil
	case "dev":
		return Dev, nil
	case "test":
		return Test, nil
	default:
		return Prod, fmt.Errorf("unknown target %q (want prod, lib, dev, or test)", s)
	}
}

// Id identifies one extracted capture boundary. All five fields participate
// in equality; Hash is a pure function of (scope, normalized path, display
// name), which is what keeps generated names stable across rebuilds.
type Id struct {
	DisplayName   string
	SymbolName    string
	LocalFileName string
	Hash          string
	Scope         string // empty means unscoped
}

// New synthesizes the identifier record for a capture boundary.
//
// Segments are the ordered scope names from the outermost enclosing
// declaration down to the boundary, already stripped of capture markers.
// For a component like
//
//	export const Counter = component$(() => (
//	  <button onClick$={() => store.count++}>+1</button>
//	));
//
// the segments for the click handler are [Counter, component, button, onClick].
//
// Dev and Test targets format the symbol name as {display}_{hash} to keep
// names readable; Prod and Lib emit s_{hash} only. The function is total:
// an empty segment sequence and arbitrary symbol characters are all valid.
func New(src source.Info, segments []string, target Target, scope string) Id {
	var displayName string
	for _, seg := range segments {
		switch {
		case displayName == "" && startsWithDigit(seg):
			// A name beginning with a digit is not a valid bare identifier.
			displayName = "_" + seg
		case displayName == "":
			displayName = seg
		default:
			displayName += "_" + seg
		}
	}
	displayName = sanitize(displayName)

	normalized := strings.TrimPrefix(src.RelPath, "./")
	hash := fingerprint(scope, normalized, displayName)

	var symbolName string
	switch target {
	case Dev, Test:
		symbolName = displayName + "_" + hash
	default: // Prod, Lib
		symbolName = "s_" + hash
	}

	return Id{
		DisplayName:   src.FileName + "_" + displayName,
		SymbolName:    symbolName,
		LocalFileName: src.RelPath + "_" + symbolName,
		Hash:          hash,
		Scope:         scope,
	}
}

// sanitize replaces every character that is not an ASCII letter or digit
// with an underscore, collapsing runs into a single one.
func sanitize(in string) string {
	var b strings.Builder
	b.Grow(len(in))
	pendingUnderscore := false
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
			pendingUnderscore = false
		case pendingUnderscore:
			// Never emit consecutive underscores.
		default:
			b.WriteByte('_')
			pendingUnderscore = true
		}
	}
	return b.String()
}

// fingerprint computes the 11-character URL-safe hash over scope (when
// present), the normalized path, and the sanitized display name, fed to a
// streaming 64-bit accumulator in that exact order. Scope and path are
// hashed verbatim; callers rely on no normalization happening here.
func fingerprint(scope, relPath, displayName string) string {
	d := xxhash.New()
	if scope != "" {
		d.WriteString(scope)
	}
	d.WriteString(relPath)
	d.WriteString(displayName)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], d.Sum64())
	encoded := base64.RawURLEncoding.EncodeToString(buf[:])
	// Drop the two non-alphanumeric base64 characters so the fingerprint can
	// embed in identifiers and file names without escaping.
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return '0'
		}
		return r
	}, encoded)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

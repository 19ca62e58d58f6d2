package ident

import (
	"regexp"
	"strings"
	"testing"

	"github.com/qrlgen-dev/qrlgen/internal/source"
)

func mustSource(t *testing.T, relPath string) source.Info {
	t.Helper()
	info, err := source.New(relPath)
	if err != nil {
		t.Fatalf("source.New(%q) failed: %v", relPath, err)
	}
	return info
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a'b-c", "a_b_c"},
		{"A123b_c-~45", "A123b_c_45"},
		{"", ""},
		{"already_clean", "already_clean"},
		{"--__--", "_"},
		{"a€b", "a_b"},
	}
	for _, tc := range cases {
		if got := sanitize(tc.in); got != tc.want {
			t.Errorf("sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeNeverEmitsDoubleUnderscore(t *testing.T) {
	for _, in := range []string{"a--b", "x~!@#$%^&*()y", "..", "a_ _b"} {
		got := sanitize(in)
		if strings.Contains(got, "__") {
			t.Errorf("sanitize(%q) = %q contains a double underscore", in, got)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, in := range []string{"a'b-c", "A123b_c-~45", "", "x__y", "1-2-3"} {
		once := sanitize(in)
		if twice := sanitize(once); twice != once {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestFingerprintShape(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9]{11}$`)
	for _, scope := range []string{"", "scope", "weird/scope?*"} {
		h := fingerprint(scope, "app.js", "a_b_c")
		if !valid.MatchString(h) {
			t.Errorf("fingerprint(%q, ...) = %q, want 11 URL-safe alphanumerics", scope, h)
		}
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	h0 := fingerprint("", "app.js", "a_b_c")
	h1 := fingerprint("", "app.js", "a_b_c")
	if h0 != h1 {
		t.Fatalf("fingerprint not deterministic: %q != %q", h0, h1)
	}
}

func TestFingerprintInputSensitivity(t *testing.T) {
	base := fingerprint("", "app.js", "a_b_c")
	variants := map[string]string{
		"scope added":          fingerprint("scope", "app.js", "a_b_c"),
		"path changed":         fingerprint("", "lib.js", "a_b_c"),
		"display name changed": fingerprint("", "app.js", "a_b_d"),
	}
	for name, h := range variants {
		if h == base {
			t.Errorf("%s: hash %q did not change", name, h)
		}
	}
}

func TestParseTarget(t *testing.T) {
	cases := map[string]Target{
		"prod": Prod,
		"lib":  Lib,
		"dev":  Dev,
		"Test": Test,
		" dev": Dev,
	}
	for in, want := range cases {
		got, err := ParseTarget(in)
		if err != nil {
			t.Fatalf("ParseTarget(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseTarget(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseTarget("release"); err == nil {
		t.Errorf("ParseTarget(\"release\") succeeded, want error")
	}
}

func TestNewDevTarget(t *testing.T) {
	src := mustSource(t, "app.js")
	id := New(src, []string{"a", "b", "c"}, Dev, "")

	wantHash := fingerprint("", "app.js", "a_b_c")
	want := Id{
		DisplayName:   "app.js_a_b_c",
		SymbolName:    "a_b_c_" + wantHash,
		LocalFileName: "app.js_a_b_c_" + wantHash,
		Hash:          wantHash,
		Scope:         "",
	}
	if id != want {
		t.Fatalf("New() = %+v, want %+v", id, want)
	}
}

func TestNewProdTargetWithScopeAndDigitSegment(t *testing.T) {
	src := mustSource(t, "app.js")
	id := New(src, []string{"1", "b", "c"}, Prod, "scope")

	// Leading segments that start with a digit get an extra underscore.
	wantHash := fingerprint("scope", "app.js", "_1_b_c")
	want := Id{
		DisplayName:   "app.js__1_b_c",
		SymbolName:    "s_" + wantHash,
		LocalFileName: "app.js_s_" + wantHash,
		Hash:          wantHash,
		Scope:         "scope",
	}
	if id != want {
		t.Fatalf("New() = %+v, want %+v", id, want)
	}
}

func TestNewIsDeterministic(t *testing.T) {
	src := mustSource(t, "./src/counter.tsx")
	segments := []string{"Counter", "component", "button", "onClick"}
	id0 := New(src, segments, Test, "ui")
	id1 := New(src, segments, Test, "ui")
	if id0 != id1 {
		t.Fatalf("New not deterministic: %+v != %+v", id0, id1)
	}
}

func TestNewStripsDotSlashOnlyForHashing(t *testing.T) {
	plain := New(mustSource(t, "app.js"), []string{"a"}, Dev, "")
	dotted := New(mustSource(t, "./app.js"), []string{"a"}, Dev, "")

	if plain.Hash != dotted.Hash {
		t.Errorf("hash differs across ./ prefix: %q != %q", plain.Hash, dotted.Hash)
	}
	if dotted.LocalFileName != "./app.js_"+dotted.SymbolName {
		t.Errorf("LocalFileName = %q, want the supplied path kept verbatim", dotted.LocalFileName)
	}
}

func TestNewEmptySegments(t *testing.T) {
	id := New(mustSource(t, "app.js"), nil, Dev, "")
	if id.DisplayName != "app.js_" {
		t.Errorf("DisplayName = %q, want %q", id.DisplayName, "app.js_")
	}
	if id.SymbolName != "_"+id.Hash {
		t.Errorf("SymbolName = %q, want %q", id.SymbolName, "_"+id.Hash)
	}
}

func TestTargetFamiliesDiverge(t *testing.T) {
	src := mustSource(t, "app.js")
	segments := []string{"a", "b", "c"}
	dev := New(src, segments, Dev, "")
	test := New(src, segments, Test, "")
	prod := New(src, segments, Prod, "")
	lib := New(src, segments, Lib, "")

	if dev.SymbolName != test.SymbolName {
		t.Errorf("Dev and Test symbol names differ: %q vs %q", dev.SymbolName, test.SymbolName)
	}
	if prod.SymbolName != lib.SymbolName {
		t.Errorf("Prod and Lib symbol names differ: %q vs %q", prod.SymbolName, lib.SymbolName)
	}
	if dev.SymbolName == prod.SymbolName {
		t.Errorf("Dev and Prod symbol names collide: %q", dev.SymbolName)
	}
	if !strings.HasPrefix(prod.SymbolName, "s_") {
		t.Errorf("Prod symbol name %q lacks s_ prefix", prod.SymbolName)
	}
	if dev.Hash != prod.Hash {
		t.Errorf("hash depends on target: %q != %q", dev.Hash, prod.Hash)
	}
}

func TestScopeHashedVerbatim(t *testing.T) {
	src := mustSource(t, "app.js")
	// Scope is caller metadata, not user-facing text: it is never sanitized
	// before hashing, so symbol-unsafe scopes are still distinct inputs.
	raw := New(src, []string{"a"}, Prod, "my-scope!")
	clean := New(src, []string{"a"}, Prod, "my_scope_")
	if raw.Hash == clean.Hash {
		t.Errorf("sanitized and raw scopes hashed identically: %q", raw.Hash)
	}
	if raw.Scope != "my-scope!" {
		t.Errorf("Scope = %q, want carried through unchanged", raw.Scope)
	}
}

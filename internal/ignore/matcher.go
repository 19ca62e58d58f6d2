package ignore

import (
	"regexp"
	"strings"
)

// defaultExcludes are prepended to user rules and can be re-included with a
// negation rule.
var defaultExcludes = []string{
	".git/",
	".qrlgen/",
	"node_modules/",
	"dist/",
	"build/",
	"vendor/",
}

type pattern struct {
	glob     string
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher applies gitignore-like rules with last-rule-wins semantics.
type Matcher struct {
	patterns []pattern
}

// NewMatcher builds a matcher from .qrlignore-style lines, layered over the
// default excludes.
func NewMatcher(userRules []string) *Matcher {
	lines := make([]string, 0, len(defaultExcludes)+len(userRules))
	lines = append(lines, defaultExcludes...)
	lines = append(lines, userRules...)

	patterns := make([]pattern, 0, len(lines))
	for _, line := range lines {
		if p, ok := parsePattern(line); ok {
			patterns = append(patterns, p)
		}
	}
	return &Matcher{patterns: patterns}
}

// ShouldIgnore reports whether relPath is excluded from scanning.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalize(relPath)
	ignored := false
	for _, p := range m.patterns {
		if p.matches(relPath, isDir) {
			ignored = !p.negated
		}
	}
	return ignored
}

func parsePattern(line string) (pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return pattern{}, false
	}

	var p pattern
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		p.negated = true
		line = rest
	}
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		p.anchored = true
		line = rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		p.dirOnly = true
		line = rest
	}

	line = normalize(line)
	if line == "" {
		return pattern{}, false
	}
	p.glob = line
	return p, true
}

func (p pattern) matches(relPath string, isDir bool) bool {
	if p.dirOnly {
		// A directory pattern excludes the matching directory itself and
		// everything beneath it.
		if p.anchored {
			return globMatch(p.glob, relPath) || globMatch(p.glob+"/**", relPath)
		}
		parts := strings.Split(relPath, "/")
		for i := range parts {
			tail := strings.Join(parts[i:], "/")
			if globMatch(p.glob, tail) || globMatch(p.glob+"/**", tail) {
				// The match must name a directory: either components follow
				// it in the path, or the path itself is one.
				if strings.Count(tail, "/") > strings.Count(p.glob, "/") || isDir {
					return true
				}
			}
		}
		return false
	}

	if p.anchored || strings.Contains(p.glob, "/") {
		if globMatch(p.glob, relPath) {
			return true
		}
		if p.anchored {
			return false
		}
		// Unanchored multi-segment patterns may match at any depth.
		parts := strings.Split(relPath, "/")
		for i := 1; i < len(parts); i++ {
			if globMatch(p.glob, strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	for _, part := range strings.Split(relPath, "/") {
		if globMatch(p.glob, part) {
			return true
		}
	}
	return false
}

func globMatch(glob, value string) bool {
	ok, err := regexp.MatchString("^"+globToRegexp(glob)+"$", value)
	return err == nil && ok
}

func globToRegexp(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			if strings.ContainsRune(`.+()|[]{}^$\`, rune(c)) {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	return p
}

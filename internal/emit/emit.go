// Package emit builds the import/export/binding descriptors for generated
// modules and renders them to JavaScript source text.
package emit

import (
	"fmt"
	"strings"

	"github.com/qrlgen-dev/qrlgen/internal/ident"
	"github.com/qrlgen-dev/qrlgen/internal/segment"
)

// CoreSource is the module specifier of the runtime every generated module
// may import from.
const CoreSource = "@qwik.dev/core"

// QRL is the runtime helper that re-links an extracted closure at load time.
const QRL = "qrl"

// QRLSuffix distinguishes the eager variant of a captured API.
const QRLSuffix = "Qrl"

// ImportKind discriminates the closed set of import specifier shapes.
type ImportKind int

const (
	// ImportNamed is `import { name }`.
	ImportNamed ImportKind = iota
	// ImportDefault is `import name`.
	ImportDefault
	// ImportNamespace is `import * as name`.
	ImportNamespace
)

// ImportName is a single specifier within an import statement.
type ImportName struct {
	Kind     ImportKind
	Imported string
	Local    string // empty means same as Imported
}

// Named imports a binding under its exported name.
func Named(name string) ImportName {
	return ImportName{Kind: ImportNamed, Imported: name}
}

// NamedWithAlias imports a binding under a different local name.
func NamedWithAlias(imported, local string) ImportName {
	if imported == local {
		local = ""
	}
	return ImportName{Kind: ImportNamed, Imported: imported, Local: local}
}

// Default imports a module's default export.
func Default(local string) ImportName {
	return ImportName{Kind: ImportDefault, Local: local}
}

// Namespace imports a whole module namespace.
func Namespace(local string) ImportName {
	return ImportName{Kind: ImportNamespace, Local: local}
}

func (n ImportName) specifier() string {
	switch n.Kind {
	case ImportNamed:
		if n.Local != "" {
			return n.Imported + " as " + n.Local
		}
		return n.Imported
	case ImportDefault:
		return n.Local
	case ImportNamespace:
		return "* as " + n.Local
	default:
		return n.Imported
	}
}

// Import describes one import statement of a generated module.
type Import struct {
	Names  []ImportName
	Source string
}

// CoreImport imports names from the runtime core.
func CoreImport(names ...string) Import {
	imp := Import{Source: CoreSource}
	for _, name := range names {
		imp.Names = append(imp.Names, Named(name))
	}
	return imp
}

// QRLImport is the core import every re-linked module needs.
func QRLImport() Import {
	return CoreImport(QRL)
}

// Statement renders the import as source text.
func (i Import) Statement() string {
	var named []string
	var bare []string
	for _, n := range i.Names {
		switch n.Kind {
		case ImportNamed:
			named = append(named, n.specifier())
		default:
			bare = append(bare, n.specifier())
		}
	}

	specifiers := make([]string, 0, len(bare)+1)
	specifiers = append(specifiers, bare...)
	if len(named) > 0 {
		specifiers = append(specifiers, "{ "+strings.Join(named, ", ")+" }")
	}
	if len(specifiers) == 0 {
		return fmt.Sprintf("import %q;", i.Source)
	}
	return fmt.Sprintf("import %s from %q;", strings.Join(specifiers, ", "), i.Source)
}

// Export re-exports a core binding from a generated module.
type Export struct {
	Name string
}

// Statement renders the re-export as source text.
func (e Export) Statement() string {
	return fmt.Sprintf("export { %s } from %q;", e.Name, CoreSource)
}

// Reference is a free variable an extracted closure captured from its
// original lexical scope.
type Reference struct {
	Name string
}

// ImportFrom converts the reference into an import of the same binding from
// the module it was extracted out of.
func (r Reference) ImportFrom(sourcePath string) Import {
	return Import{Names: []ImportName{Named(r.Name)}, Source: sourcePath}
}

// Module is a complete generated module: the extracted closure re-exported
// under its synthesized symbol name.
type Module struct {
	Id      ident.Id
	Params  []segment.Segment
	Body    string // closure expression text sliced from the source file
	Imports []Import
}

// Render produces the generated module's source text.
func (m Module) Render() string {
	var b strings.Builder
	for _, imp := range m.Imports {
		b.WriteString(imp.Statement())
		b.WriteString("\n")
	}
	if len(m.Imports) > 0 {
		b.WriteString("\n")
	}

	if len(m.Params) == 0 {
		fmt.Fprintf(&b, "export const %s = %s;\n", m.Id.SymbolName, m.Body)
		return b.String()
	}

	bindings := make([]string, len(m.Params))
	for i, p := range m.Params {
		bindings[i] = p.BindingName()
	}
	fmt.Fprintf(&b, "export const %s = (%s) => %s;\n",
		m.Id.SymbolName, strings.Join(bindings, ", "), m.Body)
	return b.String()
}

package walker

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/qrlgen-dev/qrlgen/internal/segment"
)

// Boundary is one discovered capture boundary: the ordered segment path from
// the outermost enclosing scope down to the boundary marker, plus the byte
// span of the closure expression to extract.
type Boundary struct {
	Segments  []segment.Segment
	Line      int
	StartByte uint32
	EndByte   uint32
}

// SegmentTexts renders the segment path with capture markers stripped, in
// the shape identifier synthesis consumes.
func (b Boundary) SegmentTexts() []string {
	texts := make([]string, len(b.Segments))
	for i, seg := range b.Segments {
		texts[i] = seg.String()
	}
	return texts
}

// Walker discovers capture boundaries in JavaScript/TypeScript sources.
// It is not a general AST traversal: it recognizes identifier-callee calls
// like component$(...) and $-suffixed JSX attributes like onClick$={...},
// and tracks only the enclosing names that contribute path segments.
type Walker struct {
	jsParser  *sitter.Parser
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
}

// New creates a walker with one parser per dialect.
func New() *Walker {
	js := sitter.NewParser()
	js.SetLanguage(javascript.GetLanguage())

	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())

	tsxP := sitter.NewParser()
	tsxP.SetLanguage(tsx.GetLanguage())

	return &Walker{
		jsParser:  js,
		tsParser:  ts,
		tsxParser: tsxP,
	}
}

// Extensions returns the file extensions the walker handles.
func (w *Walker) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}
}

func (w *Walker) parserFor(filename string) (*sitter.Parser, string) {
	switch {
	case strings.HasSuffix(filename, ".tsx"):
		return w.tsxParser, "tsx"
	case strings.HasSuffix(filename, ".ts"):
		return w.tsParser, "typescript"
	default:
		return w.jsParser, "javascript"
	}
}

// Scan parses content and returns every capture boundary it contains, in
// source order. Segment order is lexical: outermost enclosing scope first.
func (w *Walker) Scan(filename string, content []byte) ([]Boundary, error) {
	p, _ := w.parserFor(filename)

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	boundaries := make([]Boundary, 0)
	w.collect(tree.RootNode(), content, nil, &boundaries)
	return boundaries, nil
}

func (w *Walker) collect(node *sitter.Node, content []byte, stack []string, out *[]Boundary) {
	switch node.Type() {
	case "variable_declarator":
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil && nameNode.Type() == "identifier" {
			stack = push(stack, nameNode.Content(content))
		}

	case "function_declaration", "generator_function_declaration", "method_definition":
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil {
			stack = push(stack, nameNode.Content(content))
		}

	case "jsx_element":
		if opening := node.NamedChild(0); opening != nil && opening.Type() == "jsx_opening_element" {
			if nameNode := opening.ChildByFieldName("name"); nameNode != nil {
				stack = push(stack, nameNode.Content(content))
			}
		}

	case "jsx_self_closing_element":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			stack = push(stack, nameNode.Content(content))
		}

	case "call_expression":
		fnNode := node.ChildByFieldName("function")
		if fnNode != nil && fnNode.Type() == "identifier" {
			token := fnNode.Content(content)
			if segment.Classify(token).IsQwik() {
				if closure := firstArgument(node); closure != nil {
					*out = append(*out, boundaryAt(stack, token, closure))
				}
				// Nested boundaries inside the closure extend this path.
				stack = push(stack, token)
			}
		}

	case "jsx_attribute":
		nameNode := node.NamedChild(0)
		if nameNode != nil {
			token := nameNode.Content(content)
			if segment.Classify(token).IsQwik() {
				if closure := attributeExpression(node); closure != nil {
					*out = append(*out, boundaryAt(stack, token, closure))
				}
				stack = push(stack, token)
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.collect(node.Child(i), content, stack, out)
	}
}

// boundaryAt classifies the accumulated path plus the marker token itself.
func boundaryAt(stack []string, token string, closure *sitter.Node) Boundary {
	segments := make([]segment.Segment, 0, len(stack)+1)
	for _, tok := range stack {
		segments = append(segments, segment.Classify(tok))
	}
	segments = append(segments, segment.Classify(token))
	return Boundary{
		Segments:  segments,
		Line:      int(closure.StartPoint().Row) + 1,
		StartByte: closure.StartByte(),
		EndByte:   closure.EndByte(),
	}
}

// firstArgument returns the first argument of a call expression, the closure
// a captured call extracts. Calls with no arguments name nothing to extract.
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	return args.NamedChild(0)
}

// attributeExpression returns the expression inside a JSX attribute value,
// e.g. the arrow function in onClick$={() => ...}.
func attributeExpression(attr *sitter.Node) *sitter.Node {
	if attr.NamedChildCount() < 2 {
		return nil
	}
	value := attr.NamedChild(1)
	if value == nil || value.Type() != "jsx_expression" || value.NamedChildCount() == 0 {
		return nil
	}
	return value.NamedChild(0)
}

// push appends without aliasing the caller's backing array, since sibling
// subtrees recurse with the same prefix.
func push(stack []string, token string) []string {
	return append(stack[:len(stack):len(stack)], token)
}

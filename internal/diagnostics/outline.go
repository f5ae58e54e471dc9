package diagnostics

import (
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// FunctionSpan is a top-level function or method and its 1-based line range.
type FunctionSpan struct {
	Name      string `json:"name"`
	Receiver  string `json:"receiver,omitempty"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

var goLanguage = tree_sitter.NewLanguage(tree_sitter_go.Language())

// Outline lists the functions and methods declared in src using tree-sitter-go. It works on
// source that does not type-check, which is the point: the fixtures never do.
func Outline(src []byte) ([]FunctionSpan, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(goLanguage); err != nil {
		return nil, fmt.Errorf("set language go: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, errors.New("tree-sitter returned nil tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	spans := make([]FunctionSpan, 0)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		kind := node.Kind()
		if kind != "function_declaration" && kind != "method_declaration" {
			continue
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		span := FunctionSpan{
			Name:      nameNode.Utf8Text(src),
			StartLine: int(node.StartPosition().Row) + 1,
			EndLine:   int(node.EndPosition().Row) + 1,
		}
		if kind == "method_declaration" {
			if recv := node.ChildByFieldName("receiver"); recv != nil {
				span.Receiver = recv.Utf8Text(src)
			}
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// EnclosingFunction returns the span containing line.
func EnclosingFunction(spans []FunctionSpan, line int) (FunctionSpan, bool) {
	for _, s := range spans {
		if line >= s.StartLine && line <= s.EndLine {
			return s, true
		}
	}
	return FunctionSpan{}, false
}

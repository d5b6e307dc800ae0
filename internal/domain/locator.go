package domain

import (
	"fmt"
	"go/ast"
	"strings"

	m "expect.dev/pkg/expect/internal/model"
)

// Functions returns every function declaration of src in source order.
func Functions(src *SourceFile) []m.FunctionNode {
	var nodes []m.FunctionNode

	ast.Inspect(src.File, func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		if !ok {
			return true
		}

		nodes = append(nodes, newFunctionNode(src, fd))

		// Function declarations cannot nest.
		return false
	})

	return nodes
}

func newFunctionNode(src *SourceFile, fd *ast.FuncDecl) m.FunctionNode {
	node := m.FunctionNode{
		Name:     fd.Name.Name,
		Decl:     fd,
		FuncLine: src.LineOf(fd.Pos()),
	}

	if fd.Doc != nil {
		for i, c := range fd.Doc.List {
			annotation, ok := ParseAnnotation(c, src.LineOf(c.Slash), i)
			if ok {
				node.Annotations = append(node.Annotations, annotation)
			}
		}
	}

	node.DeclarationLine = node.FuncLine
	if len(node.Annotations) > 0 {
		node.DeclarationLine = node.Annotations[0].Line
	}

	if ret := firstReturn(fd.Body); ret != nil {
		node.Return = ret
		node.ReturnLine = src.LineOf(ret.End())
	}

	return node
}

// firstReturn finds the first top-level return statement. Anything after it
// is unreachable.
func firstReturn(body *ast.BlockStmt) *ast.ReturnStmt {
	if body == nil {
		return nil
	}

	for _, stmt := range body.List {
		if ret, ok := stmt.(*ast.ReturnStmt); ok {
			return ret
		}
	}

	return nil
}

// Locate returns the single function whose declaration line is targetLine.
func Locate(src *SourceFile, targetLine int) (m.FunctionNode, error) {
	var matches []m.FunctionNode

	for _, node := range Functions(src) {
		if node.DeclarationLine == targetLine {
			matches = append(matches, node)
		}
	}

	return singleMatch(src.Path, targetLine, matches, "declared on this line")
}

// LocateByName returns the package-level function (no receiver) called name.
func LocateByName(src *SourceFile, name string) (m.FunctionNode, error) {
	var matches []m.FunctionNode

	for _, node := range Functions(src) {
		if node.Name == name && node.Decl.Recv == nil {
			matches = append(matches, node)
		}
	}

	return singleMatch(src.Path, 0, matches, fmt.Sprintf("named %s", name))
}

func singleMatch(path m.Path, line int, matches []m.FunctionNode, what string) (m.FunctionNode, error) {
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return m.FunctionNode{}, newPromotionError(ErrTargetNotFound, path, line, "no function "+what, nil)
	default:
		names := make([]string, 0, len(matches))
		for _, node := range matches {
			names = append(names, fmt.Sprintf("%s (line %d)", node.Name, node.FuncLine))
		}

		detail := fmt.Sprintf("%d functions %s: %s", len(matches), what, strings.Join(names, ", "))

		return m.FunctionNode{}, newPromotionError(ErrAmbiguousTarget, path, line, detail, nil)
	}
}

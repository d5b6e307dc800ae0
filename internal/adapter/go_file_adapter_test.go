package adapter

import (
	"context"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
	"testing"
)

const goldenSource = `package golden

//expect:golden("x")
func goldenX() string {
	// inner
	return   "x"
}
`

func TestLocalGoFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	file, err := adapter.Parse(context.Background(), fset, "golden_test.go", []byte(goldenSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if file.Name.Name != "golden" {
		t.Fatalf("Parse() package = %s, want golden", file.Name.Name)
	}

	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Doc == nil || len(fn.Doc.List) != 1 {
		t.Fatalf("Parse() did not keep doc comments")
	}
}

func TestLocalGoFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	if _, err := adapter.Parse(context.Background(), fset, "broken.go", []byte("package foo\n func")); err == nil {
		t.Fatalf("Parse() expected error for invalid source")
	}
}

func TestLocalGoFileAdapter_Parse_ContextCancellation(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	if _, err := adapter.Parse(ctx, fset, "example.go", []byte("package main\n func main() {}")); err == nil {
		t.Fatalf("Parse() expected error due to context cancellation")
	}
}

func TestLocalGoFileAdapter_Print(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	fset := token.NewFileSet()

	file, err := adapter.Parse(context.Background(), fset, "golden_test.go", []byte(goldenSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := adapter.Print(context.Background(), fset, &printer.CommentedNode{Node: file.Decls[0], Comments: file.Comments})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "//expect:golden(\"x\")\nfunc goldenX() string {\n\t// inner\n\treturn \"x\"\n}"
	if got := strings.TrimRight(string(out), "\n"); got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

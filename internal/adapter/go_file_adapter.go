package adapter

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
)

// GoFileAdapter encapsulates Go-specific parsing and printing so the domain
// layer can reason about declarations without touching go/parser directly.
type GoFileAdapter interface {
	// Parse builds an AST (comments included) using the provided file set and
	// source bytes.
	Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Print renders a node in gofmt style. Pass a *printer.CommentedNode to
	// keep comments.
	Print(ctx context.Context, fileSet *token.FileSet, node any) ([]byte, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser and
// go/printer.
type LocalGoFileAdapter struct {
	config printer.Config
}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter using gofmt's printer
// settings.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{
		config: printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8},
	}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// Print renders node with the adapter's printer configuration.
func (a *LocalGoFileAdapter) Print(ctx context.Context, fileSet *token.FileSet, node any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.config.Fprint(&buf, fileSet, node); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

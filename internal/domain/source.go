// Package domain contains the promotion engine and the workflows built on it.
package domain

import (
	"context"
	"go/ast"
	"go/token"
	"log/slog"
	"os"
	"strings"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// SourceFile is one freshly loaded Go file. Lines is the only text that is
// ever written back; the AST is used to find and describe changes.
type SourceFile struct {
	Path  m.Path
	Raw   []byte
	Lines []string
	Mode  os.FileMode
	Fset  *token.FileSet
	File  *ast.File
}

// LoadSource reads and parses path. Nothing is cached between calls.
func LoadSource(ctx context.Context, fsAdapter adapter.SourceFSAdapter, goFileAdapter adapter.GoFileAdapter, path m.Path) (*SourceFile, error) {
	info, err := fsAdapter.FileInfo(ctx, path)
	if err != nil {
		slog.Error("Failed to stat source", "path", path, "error", err)
		return nil, newPromotionError(ErrIO, path, 0, "stat source", err)
	}

	raw, err := fsAdapter.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read source", "path", path, "error", err)
		return nil, newPromotionError(ErrIO, path, 0, "read source", err)
	}

	fset := token.NewFileSet()

	file, err := goFileAdapter.Parse(ctx, fset, string(path), raw)
	if err != nil {
		slog.Error("Failed to parse source", "path", path, "error", err)
		return nil, newPromotionError(ErrParse, path, 0, "", err)
	}

	return &SourceFile{
		Path:  path,
		Raw:   raw,
		Lines: strings.Split(string(raw), "\n"),
		Mode:  info.Mode().Perm(),
		Fset:  fset,
		File:  file,
	}, nil
}

// Line returns the 1-based line n, or "" when n is out of range.
func (s *SourceFile) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}

	return s.Lines[n-1]
}

// LineOf returns the line holding pos.
func (s *SourceFile) LineOf(pos token.Pos) int {
	return s.Fset.PositionFor(pos, false).Line
}

// Package controller provides output adapters for reporting golden mismatches,
// promotions and expectation catalogs.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "expect.dev/pkg/expect/internal/model"
)

// Catalog output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// UI defines how workflow results reach the user.
// Implementations can use different output methods (plain text, colored text).
type UI interface {
	DisplayMismatch(ctx context.Context, mismatch m.Mismatch) error
	DisplayPlan(ctx context.Context, path m.Path, before, after []byte) error
	DisplayPromotion(ctx context.Context, result m.PromotionResult) error
	DisplayRestore(ctx context.Context, path, backup m.Path) error
	DisplayCatalog(ctx context.Context, entries []m.CatalogEntry, format string) error
}

// NewUI creates a SimpleUI writing to the command output. Color is used only
// when useTTY is true.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	return NewSimpleUI(cmd, useTTY)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "expect.dev/pkg/expect/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplayMismatch prints the mismatch report.
func (s *SimpleUI) DisplayMismatch(ctx context.Context, mismatch m.Mismatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", RenderMismatch(mismatch, s.color))

	return nil
}

// DisplayPlan prints the change a promotion would make.
func (s *SimpleUI) DisplayPlan(ctx context.Context, path m.Path, before, after []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diff, err := RenderUnifiedDiff(path, before, after)
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	if diff == "" {
		s.printf("%s: no changes\n", path)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplayPromotion confirms a completed promotion.
func (s *SimpleUI) DisplayPromotion(ctx context.Context, result m.PromotionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("promoted successfully: %s at %s:%d\n", result.Name, result.Path, result.Line)
	s.printf("backup: %s\n", result.Backup)

	return nil
}

// DisplayRestore confirms that a file was restored from its backup.
func (s *SimpleUI) DisplayRestore(ctx context.Context, path, backup m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("restored %s from %s\n", path, backup)

	return nil
}

// DisplayCatalog prints the golden functions found while scanning.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, entries []m.CatalogEntry, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case "", FormatTable:
		s.printf("%s", renderCatalogTable(entries))
	case FormatYAML:
		out, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}

		s.printf("%s", out)
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatTable, FormatYAML)
	}

	return nil
}

func renderCatalogTable(entries []m.CatalogEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Function", "Expected", "Promote", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	problems := 0

	for _, entry := range entries {
		status := "ok"
		if entry.Problem != "" {
			status = entry.Problem
			problems++
		}

		table.Append([]string{
			string(entry.Path),
			strconv.Itoa(entry.Line),
			entry.Name,
			strconv.Quote(entry.Expected),
			entry.Trigger,
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(entries)),
		"", "", "", "",
		fmt.Sprintf("Invalid %d", problems),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

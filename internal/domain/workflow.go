package domain

import (
	"context"
	"fmt"
	"log/slog"

	"expect.dev/pkg/expect/internal/adapter"
	"expect.dev/pkg/expect/internal/controller"
	m "expect.dev/pkg/expect/internal/model"
)

// PromoteArgs contains the arguments for promoting one golden function.
type PromoteArgs struct {
	Path   m.Path
	Line   int
	Actual string
	DryRun bool
}

// RestoreArgs contains the arguments for restoring a file from its backup.
type RestoreArgs struct {
	Path m.Path
}

// ListArgs contains the arguments for listing golden functions.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	Format  string
}

// Workflow defines the operations exposed by the expect CLI.
type Workflow interface {
	Promote(ctx context.Context, args PromoteArgs) error
	Restore(ctx context.Context, args RestoreArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.GoFileAdapter
	controller.UI
	promoter Promoter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goFileAdapter adapter.GoFileAdapter,
	ui controller.UI,
	promoter Promoter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		GoFileAdapter:   goFileAdapter,
		UI:              ui,
		promoter:        promoter,
	}
}

// Promote rewrites the golden function declared at args.Line, or only shows
// the resulting diff when args.DryRun is set.
func (w *workflow) Promote(ctx context.Context, args PromoteArgs) error {
	record := m.ExpectationRecord{Line: args.Line, Actual: args.Actual}

	if args.DryRun {
		plan, err := w.promoter.Plan(ctx, args.Path, record)
		if err != nil {
			return err
		}

		return w.DisplayPlan(ctx, args.Path, plan.Source.Raw, plan.Content)
	}

	result, err := w.promoter.Promote(ctx, args.Path, record)
	if err != nil {
		return err
	}

	return w.DisplayPromotion(ctx, result)
}

// Restore puts the content saved by the last promotion of args.Path back.
func (w *workflow) Restore(ctx context.Context, args RestoreArgs) error {
	backup, err := restore(ctx, w.SourceFSAdapter, args.Path)
	if err != nil {
		return err
	}

	return w.DisplayRestore(ctx, args.Path, backup)
}

// List scans args.Paths for golden functions and displays them.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	entries, err := catalog(ctx, w.SourceFSAdapter, w.GoFileAdapter, args)
	if err != nil {
		slog.Error("Failed to list golden functions", "error", err)
		return fmt.Errorf("list: %w", err)
	}

	return w.DisplayCatalog(ctx, entries, args.Format)
}

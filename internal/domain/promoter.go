package domain

import (
	"context"
	"fmt"
	"log/slog"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// Promoter overwrites the expected value of a golden function with a freshly
// computed actual value. Each call loads the file anew; callers must not
// promote the same file concurrently.
type Promoter interface {
	// Plan computes the promoted file content without writing anything.
	Plan(ctx context.Context, path m.Path, record m.ExpectationRecord) (Plan, error)
	// Promote computes the plan, writes the backup and replaces the file.
	Promote(ctx context.Context, path m.Path, record m.ExpectationRecord) (m.PromotionResult, error)
}

// Plan is a computed but not yet persisted promotion.
type Plan struct {
	Source  *SourceFile
	Target  ValidatedTarget
	Patch   m.Patch
	Content []byte
}

type promoter struct {
	adapter.GoFileAdapter
	adapter.SourceFSAdapter
}

// NewPromoter creates a Promoter backed by the given adapters.
func NewPromoter(goFileAdapter adapter.GoFileAdapter, sourceFSAdapter adapter.SourceFSAdapter) Promoter {
	return &promoter{
		GoFileAdapter:   goFileAdapter,
		SourceFSAdapter: sourceFSAdapter,
	}
}

func (p *promoter) Plan(ctx context.Context, path m.Path, record m.ExpectationRecord) (Plan, error) {
	if p.GoFileAdapter == nil || p.SourceFSAdapter == nil {
		return Plan{}, fmt.Errorf("missing adapters")
	}

	src, err := LoadSource(ctx, p.SourceFSAdapter, p.GoFileAdapter, path)
	if err != nil {
		return Plan{}, err
	}

	node, err := Locate(src, record.Line)
	if err != nil {
		return Plan{}, err
	}

	target, err := Validate(path, node)
	if err != nil {
		return Plan{}, err
	}

	span, err := Span(path, node)
	if err != nil {
		return Plan{}, err
	}

	patch, err := Rewrite(ctx, p.GoFileAdapter, src, target, span, record.Actual)
	if err != nil {
		return Plan{}, err
	}

	lines, err := Apply(src.Lines, patch)
	if err != nil {
		return Plan{}, newPromotionError(ErrUnresolvableSpan, path, span.Start, "", err)
	}

	slog.Debug("Planned promotion", "path", path, "function", node.Name, "start", span.Start, "end", span.End, "lines", len(patch.Lines))

	return Plan{
		Source:  src,
		Target:  target,
		Patch:   patch,
		Content: Join(lines),
	}, nil
}

func (p *promoter) Promote(ctx context.Context, path m.Path, record m.ExpectationRecord) (m.PromotionResult, error) {
	plan, err := p.Plan(ctx, path, record)
	if err != nil {
		return m.PromotionResult{}, err
	}

	if err := Persist(ctx, p.SourceFSAdapter, plan.Source, plan.Content); err != nil {
		return m.PromotionResult{}, err
	}

	result := m.PromotionResult{
		Path:   path,
		Backup: BackupPath(path),
		Name:   plan.Target.Node.Name,
		Span:   plan.Patch.Span,
		Value:  record.Actual,
		Line:   plan.Patch.Span.Start + declarationOffset(plan.Patch.Lines),
	}

	slog.Info("Promoted expectation", "path", path, "function", result.Name, "line", result.Line, "backup", result.Backup)

	return result, nil
}

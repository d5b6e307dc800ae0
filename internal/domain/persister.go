package domain

import (
	"context"
	"log/slog"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// BackupSuffix is appended to a source path to name its backup.
const BackupSuffix = ".expect.bak"

// BackupPath returns the sibling path holding the pre-promotion content.
func BackupPath(path m.Path) m.Path {
	return path + BackupSuffix
}

// Persist writes the untouched source to its backup path and then atomically
// replaces the source with content. The backup is always written first.
func Persist(ctx context.Context, fsAdapter adapter.SourceFSAdapter, src *SourceFile, content []byte) error {
	backup := BackupPath(src.Path)

	if err := fsAdapter.WriteFile(ctx, backup, src.Raw, src.Mode); err != nil {
		slog.Error("Failed to write backup", "path", backup, "error", err)
		return newPromotionError(ErrIO, backup, 0, "write backup", err)
	}

	slog.Debug("Wrote backup", "path", backup, "bytes", len(src.Raw))

	if err := fsAdapter.ReplaceFile(ctx, src.Path, content, src.Mode); err != nil {
		slog.Error("Failed to replace source", "path", src.Path, "error", err)
		return newPromotionError(ErrIO, src.Path, 0, "replace source", err)
	}

	return nil
}

package domain

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// restore atomically replaces path with the content of its backup and
// returns the backup path. The backup is kept.
func restore(ctx context.Context, fsAdapter adapter.SourceFSAdapter, path m.Path) (m.Path, error) {
	backup := BackupPath(path)

	content, err := fsAdapter.ReadFile(ctx, backup)
	if err != nil {
		slog.Error("Failed to read backup", "path", backup, "error", err)
		return "", newPromotionError(ErrIO, backup, 0, "read backup", err)
	}

	info, err := fsAdapter.FileInfo(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		info, err = fsAdapter.FileInfo(ctx, backup)
	}

	if err != nil {
		return "", newPromotionError(ErrIO, path, 0, "stat source", err)
	}

	if err := fsAdapter.ReplaceFile(ctx, path, content, info.Mode().Perm()); err != nil {
		slog.Error("Failed to restore source", "path", path, "error", err)
		return "", newPromotionError(ErrIO, path, 0, "restore source", err)
	}

	slog.Info("Restored source from backup", "path", path, "backup", backup)

	return backup, nil
}

package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

func TestRestore(t *testing.T) {
	t.Run("undoes a promotion", func(t *testing.T) {
		path, _ := promoteSource(t, twoFunctionSource, 10, "new")
		require.NotEqual(t, twoFunctionSource, readSource(t, path))

		backup, err := restore(context.Background(), adapter.NewLocalSourceFSAdapter(), path)
		require.NoError(t, err)

		assert.Equal(t, BackupPath(path), backup)
		assert.Equal(t, twoFunctionSource, readSource(t, path))
		assert.FileExists(t, string(backup))
	})

	t.Run("recreates a deleted source", func(t *testing.T) {
		path := m.Path(filepath.Join(t.TempDir(), "golden_test.go"))
		require.NoError(t, os.WriteFile(string(BackupPath(path)), []byte("package sample\n"), 0o640))

		_, err := restore(context.Background(), adapter.NewLocalSourceFSAdapter(), path)
		require.NoError(t, err)

		assert.Equal(t, "package sample\n", readSource(t, path))

		info, err := os.Stat(string(path))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("missing backup", func(t *testing.T) {
		path := writeSource(t, "golden_test.go", "package sample\n")

		_, err := restore(context.Background(), adapter.NewLocalSourceFSAdapter(), path)
		require.ErrorIs(t, err, ErrIO)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, "package sample\n", readSource(t, path))
	})
}

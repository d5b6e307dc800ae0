package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// writeSource writes content to name inside a fresh temp dir.
func writeSource(t *testing.T, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func loadTestSource(t *testing.T, content string) *SourceFile {
	t.Helper()

	path := writeSource(t, "golden_test.go", content)

	src, err := LoadSource(context.Background(), adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), path)
	require.NoError(t, err)

	return src
}

func readSource(t *testing.T, path m.Path) string {
	t.Helper()

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return string(content)
}

func TestLoadSource(t *testing.T) {
	t.Run("keeps raw content and lines", func(t *testing.T) {
		content := "package sample\n\nfunc a() string {\n\treturn \"a\"\n}\n"
		src := loadTestSource(t, content)

		assert.Equal(t, content, string(src.Raw))
		assert.Equal(t, content, string(Join(src.Lines)))
		assert.Len(t, src.Lines, 6)
		assert.Equal(t, "func a() string {", src.Line(3))
		assert.Equal(t, "", src.Line(0))
		assert.Equal(t, "", src.Line(42))
		assert.Equal(t, os.FileMode(0o644), src.Mode)
		require.NotNil(t, src.File)
		assert.Equal(t, "sample", src.File.Name.Name)
	})

	t.Run("keeps CRLF line endings in lines", func(t *testing.T) {
		src := loadTestSource(t, "package sample\r\n\r\nfunc a() {}\r\n")

		assert.Equal(t, "func a() {}\r", src.Line(3))
	})

	t.Run("missing file is an io error", func(t *testing.T) {
		path := m.Path(filepath.Join(t.TempDir(), "missing.go"))

		_, err := LoadSource(context.Background(), adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), path)
		require.ErrorIs(t, err, ErrIO)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid source is a parse error", func(t *testing.T) {
		path := writeSource(t, "broken.go", "package sample\n\nfunc {\n")

		_, err := LoadSource(context.Background(), adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), path)
		require.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "broken.go")
	})
}

func TestPromotionError(t *testing.T) {
	t.Run("formats path line and detail", func(t *testing.T) {
		err := newPromotionError(ErrTargetNotFound, "a.go", 7, "no function declared at line 7", nil)

		assert.Equal(t, "target not found in a.go:7: no function declared at line 7", err.Error())
		assert.ErrorIs(t, err, ErrTargetNotFound)
		assert.NotErrorIs(t, err, ErrIO)
	})

	t.Run("wraps the cause", func(t *testing.T) {
		err := newPromotionError(ErrIO, "a.go", 0, "read source", os.ErrPermission)

		assert.ErrorIs(t, err, ErrIO)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.True(t, strings.HasPrefix(err.Error(), "io error in a.go: read source: "))
	})

	t.Run("malformed errors carry usage", func(t *testing.T) {
		err := newPromotionError(ErrMalformedPromotion, "a.go", 3, "incompatible annotation", nil)

		assert.Contains(t, err.Error(), "incompatible annotation")
		assert.Contains(t, err.Error(), "//expect:golden(\"expected value\", promote=true)")
	})
	t.Run("summary drops location and usage", func(t *testing.T) {
		err := newPromotionError(ErrMalformedPromotion, "a.go", 3, "incompatible annotation", errors.New("line one\nline two"))

		assert.Equal(t, "malformed promotion: incompatible annotation: line one line two", err.Summary())
	})
}

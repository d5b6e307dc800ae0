package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"expect.dev/pkg/expect/internal/domain"
	domainmocks "expect.dev/pkg/expect/internal/domain/mocks"
	m "expect.dev/pkg/expect/internal/model"
)

func newTestPromoteCmd(t *testing.T) (*domainmocks.MockWorkflow, func(args ...string) error) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	run := func(args ...string) error {
		cmd := newRootCmd()
		cmd.AddCommand(newPromoteCmd())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader("from stdin\n"))
		cmd.SetArgs(append([]string{"promote"}, args...))

		return cmd.Execute()
	}

	return mockWorkflow, run
}

func TestPromoteCmd_ActualFlag(t *testing.T) {
	mockWorkflow, run := newTestPromoteCmd(t)

	mockWorkflow.On("Promote", mock.Anything, domain.PromoteArgs{
		Path:   m.Path("golden_test.go"),
		Line:   12,
		Actual: "Some result",
	}).Return(nil)

	err := run("golden_test.go", "--line", "12", "--actual", "Some result")
	require.NoError(t, err)
}

func TestPromoteCmd_EmptyActualFlag(t *testing.T) {
	mockWorkflow, run := newTestPromoteCmd(t)

	mockWorkflow.On("Promote", mock.Anything, mock.MatchedBy(func(args domain.PromoteArgs) bool {
		return args.Actual == ""
	})).Return(nil)

	err := run("golden_test.go", "-l", "3", "--actual", "")
	require.NoError(t, err)
}

func TestPromoteCmd_ActualFile(t *testing.T) {
	mockWorkflow, run := newTestPromoteCmd(t)

	actualPath := filepath.Join(t.TempDir(), "actual.txt")
	require.NoError(t, os.WriteFile(actualPath, []byte("line one\nline two"), 0o600))

	mockWorkflow.On("Promote", mock.Anything, mock.MatchedBy(func(args domain.PromoteArgs) bool {
		return args.Actual == "line one\nline two" && args.Line == 7
	})).Return(nil)

	err := run("golden_test.go", "--line", "7", "--actual-file", actualPath)
	require.NoError(t, err)
}

func TestPromoteCmd_Stdin(t *testing.T) {
	mockWorkflow, run := newTestPromoteCmd(t)

	mockWorkflow.On("Promote", mock.Anything, mock.MatchedBy(func(args domain.PromoteArgs) bool {
		return args.Actual == "from stdin\n"
	})).Return(nil)

	err := run("golden_test.go", "--line", "7")
	require.NoError(t, err)
}

func TestPromoteCmd_DryRun(t *testing.T) {
	mockWorkflow, run := newTestPromoteCmd(t)

	mockWorkflow.On("Promote", mock.Anything, mock.MatchedBy(func(args domain.PromoteArgs) bool {
		return args.DryRun
	})).Return(nil)

	err := run("golden_test.go", "--line", "7", "--actual", "x", "--dry-run")
	require.NoError(t, err)
}

func TestPromoteCmd_Errors(t *testing.T) {
	t.Run("missing line", func(t *testing.T) {
		_, run := newTestPromoteCmd(t)
		require.Error(t, run("golden_test.go", "--actual", "x"))
	})

	t.Run("non-positive line", func(t *testing.T) {
		_, run := newTestPromoteCmd(t)
		require.Error(t, run("golden_test.go", "--line", "0", "--actual", "x"))
	})

	t.Run("missing file argument", func(t *testing.T) {
		_, run := newTestPromoteCmd(t)
		require.Error(t, run("--line", "3", "--actual", "x"))
	})

	t.Run("exclusive value flags", func(t *testing.T) {
		_, run := newTestPromoteCmd(t)
		require.Error(t, run("golden_test.go", "--line", "3", "--actual", "x", "--actual-file", "y"))
	})

	t.Run("unreadable actual file", func(t *testing.T) {
		_, run := newTestPromoteCmd(t)
		err := run("golden_test.go", "--line", "3", "--actual-file", filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read actual value")
	})

	t.Run("workflow failure", func(t *testing.T) {
		mockWorkflow, run := newTestPromoteCmd(t)
		mockWorkflow.On("Promote", mock.Anything, mock.Anything).Return(domain.ErrMalformedPromotion)

		err := run("golden_test.go", "--line", "3", "--actual", "x")
		require.ErrorIs(t, err, domain.ErrMalformedPromotion)
	})
}

func TestPromoteCmd_Registered(t *testing.T) {
	cmd := newPromoteCmd()
	assert.Equal(t, "promote FILE", cmd.Use)
	assert.Contains(t, cmd.Long, domain.BackupSuffix)
	assert.NotNil(t, cmd.Flags().Lookup(dryRunFlagName))
}

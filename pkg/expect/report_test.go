package expect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTB struct {
	errors []string
	fatals []string
	logs   []string
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

const markedSource = `package sample

//expect:golden("old")
//expect:promote
func goldenValue() string {
	return "new"
}
`

func TestReport_Promotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_test.go")
	require.NoError(t, os.WriteFile(path, []byte(markedSource), 0o644))

	tb := &fakeTB{}
	record := report(tb, Record{
		Path:     path,
		Name:     "goldenValue",
		Line:     3,
		Expected: "old",
		Actual:   "new",
		Promote:  true,
	}, false, Promote)

	assert.True(t, record.Promoted)
	assert.Empty(t, tb.errors)
	assert.Empty(t, tb.fatals)

	require.Len(t, tb.logs, 2)
	assert.Contains(t, tb.logs[0], "goldenValue at "+path+":3 does not match its golden value")
	assert.Equal(t, fmt.Sprintf("goldenValue promoted successfully at %s:3 (backup %s.expect.bak)", path, path), tb.logs[1])

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package sample\n\n//expect:golden(\"new\")\nfunc goldenValue() string {\n\treturn \"new\"\n}\n", string(content))
}

func TestReport_PromotesMatchingValueQuietly(t *testing.T) {
	tb := &fakeTB{}
	calls := 0

	record := report(tb, Record{Name: "goldenSame", Expected: "v", Actual: "v", Promote: true}, false,
		func(context.Context, Record) (Promotion, error) {
			calls++
			return Promotion{Path: "same_test.go", Backup: "same_test.go.expect.bak", Line: 7}, nil
		})

	assert.Equal(t, 1, calls)
	assert.True(t, record.Promoted)
	assert.Equal(t, []string{"goldenSame promoted successfully at same_test.go:7 (backup same_test.go.expect.bak)"}, tb.logs)
}

func TestReport_FailedPromotionIsFatal(t *testing.T) {
	tb := &fakeTB{}

	record := report(tb, Record{Name: "goldenX", Expected: "a", Actual: "b", Promote: true}, false,
		func(context.Context, Record) (Promotion, error) {
			return Promotion{}, errors.New("disk full")
		})

	assert.False(t, record.Promoted)
	assert.Equal(t, []string{"expect: disk full"}, tb.fatals)
	assert.Empty(t, tb.errors)
}

func TestReport_MismatchWithoutPromotion(t *testing.T) {
	tb := &fakeTB{}

	record := report(tb, Record{Name: "goldenX", Expected: "a", Actual: "b"}, false,
		func(context.Context, Record) (Promotion, error) {
			t.Fatal("promote must not be called")
			return Promotion{}, nil
		})

	assert.False(t, record.Promoted)
	require.Len(t, tb.errors, 1)
	assert.Contains(t, tb.errors[0], "diff:     [-a-]{+b+}")
	assert.Empty(t, tb.logs)
}

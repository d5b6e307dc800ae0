// Package expect runs golden functions: package-level functions whose expected
// result is written in a directive comment above them.
//
//	//expect:golden("Some result")
//	func goldenSomeResult() string {
//		return someFunctionThatReturnsSomeResult()
//	}
//
//	func TestGolden(t *testing.T) {
//		expect.Golden(t, goldenSomeResult)
//	}
//
// Adding promote=true to the directive, or a //expect:promote line above it,
// rewrites the expected value in the source file with the actual result the
// next time the test runs. The previous content is kept in <file>.expect.bak.
package expect

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"

	"expect.dev/pkg/expect/internal/adapter"
	"expect.dev/pkg/expect/internal/controller"
	"expect.dev/pkg/expect/internal/domain"
	m "expect.dev/pkg/expect/internal/model"
)

// Failure kinds returned by Evaluate and Promote. Match them with errors.Is.
var (
	ErrIO                 = domain.ErrIO
	ErrParse              = domain.ErrParse
	ErrTargetNotFound     = domain.ErrTargetNotFound
	ErrAmbiguousTarget    = domain.ErrAmbiguousTarget
	ErrMalformedPromotion = domain.ErrMalformedPromotion
	ErrUnresolvableSpan   = domain.ErrUnresolvableSpan
)

// TB is the subset of testing.TB used by Golden.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// Record is the outcome of evaluating one golden function.
type Record struct {
	Path     string
	Name     string
	Line     int
	Expected string
	Actual   string
	Warnings []string
	// Promote is set when the source requests promotion.
	Promote bool
	// Promoted is set once the actual value has been written to the source.
	Promoted bool

	source []string
}

// Matched reports whether the actual value equals the expected one.
func (r Record) Matched() bool {
	return r.Expected == r.Actual
}

// Mismatch renders the failure report for r.
func (r Record) Mismatch(color bool) string {
	return controller.RenderMismatch(m.Mismatch{
		Path:     m.Path(r.Path),
		Name:     r.Name,
		Line:     r.Line,
		Expected: r.Expected,
		Actual:   r.Actual,
		Warnings: r.Warnings,
		Source:   r.source,
	}, color)
}

// Promotion describes a rewritten golden function.
type Promotion struct {
	Path   string
	Backup string
	// Line is the declaration line of the function after the rewrite.
	Line int
}

// Golden evaluates fn and fails t when its result differs from the golden
// value. When the source requests promotion the result is written back
// instead and the test passes.
func Golden[T any](t TB, fn func() T) Record {
	t.Helper()

	record, err := Evaluate(fn)
	if err != nil {
		t.Fatalf("expect: %v", err)
		return record
	}

	return report(t, record, controller.IsTTY(os.Stdout), Promote)
}

// report fails t on a mismatch, or promotes the record when its source
// asks for it.
func report(t TB, record Record, color bool, promote func(context.Context, Record) (Promotion, error)) Record {
	t.Helper()

	if record.Promote {
		if !record.Matched() {
			t.Logf("\n%s", record.Mismatch(color))
		}

		promotion, err := promote(context.Background(), record)
		if err != nil {
			t.Fatalf("expect: %v", err)
			return record
		}

		record.Promoted = true
		t.Logf("%s promoted successfully at %s:%d (backup %s)", record.Name, promotion.Path, promotion.Line, promotion.Backup)

		return record
	}

	if !record.Matched() {
		t.Errorf("\n%s", record.Mismatch(color))
	}

	return record
}

// Evaluate locates the golden directive of fn in its source file, calls fn
// and records the expected and actual values. It writes nothing.
func Evaluate[T any](fn func() T) (Record, error) {
	path, name, err := resolveFunc(fn)
	if err != nil {
		return Record{}, err
	}

	ctx := context.Background()

	src, err := domain.LoadSource(ctx, adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), m.Path(path))
	if err != nil {
		return Record{}, err
	}

	node, err := domain.LocateByName(src, name)
	if err != nil {
		return Record{}, err
	}

	target, err := domain.Validate(src.Path, node)
	if err != nil {
		return Record{}, err
	}

	actual, warnings := stringify(fn())

	return Record{
		Path:     path,
		Name:     name,
		Line:     node.DeclarationLine,
		Expected: target.Expected,
		Actual:   actual,
		Warnings: warnings,
		Promote:  target.Promote(),
		source:   functionSource(src, node),
	}, nil
}

// Promote writes record.Actual into the golden directive declared at
// record.Line of record.Path.
func Promote(ctx context.Context, record Record) (Promotion, error) {
	promoter := domain.NewPromoter(adapter.NewLocalGoFileAdapter(), adapter.NewLocalSourceFSAdapter())

	result, err := promoter.Promote(ctx, m.Path(record.Path), m.ExpectationRecord{
		Line:   record.Line,
		Actual: record.Actual,
	})
	if err != nil {
		return Promotion{}, err
	}

	return Promotion{
		Path:   string(result.Path),
		Backup: string(result.Backup),
		Line:   result.Line,
	}, nil
}

// resolveFunc returns the file and the declared name of fn. Only
// package-level functions carry doc comments, so closures, methods and
// generic instantiations are rejected.
func resolveFunc(fn any) (string, string, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", "", fmt.Errorf("expect: %T is not a function", fn)
	}

	pc := v.Pointer()

	f := runtime.FuncForPC(pc)
	if f == nil {
		return "", "", fmt.Errorf("expect: cannot resolve function at %#x", pc)
	}

	symbol := f.Name()
	name := symbol[strings.LastIndex(symbol, "/")+1:]

	_, name, found := strings.Cut(name, ".")
	if !found || name == "" || strings.ContainsAny(name, ".()[]") {
		return "", "", fmt.Errorf("expect: %s is not a package-level function", symbol)
	}

	file, _ := f.FileLine(pc)

	return file, name, nil
}

func stringify(v any) (string, []string) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	warning := fmt.Sprintf("golden functions compare strings; the %T result is compared as its Go syntax representation", v)

	return fmt.Sprintf("%#v", v), []string{warning}
}

func functionSource(src *domain.SourceFile, node m.FunctionNode) []string {
	end := src.LineOf(node.Decl.End())
	if node.FuncLine < 1 || end > len(src.Lines) || end < node.FuncLine {
		return nil
	}

	return src.Lines[node.FuncLine-1 : end]
}

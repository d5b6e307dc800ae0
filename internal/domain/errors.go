package domain

import (
	"errors"
	"fmt"
	"strings"

	m "expect.dev/pkg/expect/internal/model"
)

// Promotion failure kinds. Match them with errors.Is.
var (
	ErrIO                 = errors.New("io error")
	ErrParse              = errors.New("parse error")
	ErrTargetNotFound     = errors.New("target not found")
	ErrAmbiguousTarget    = errors.New("ambiguous target")
	ErrMalformedPromotion = errors.New("malformed promotion")
	ErrUnresolvableSpan   = errors.New("unresolvable span")
)

const promotionUsage = `The correct way to declare a golden function is

	//expect:golden("expected value")
	func goldenName() string {
		return codeUnderTest()
	}

and to promote the actual value into the source, either

	//expect:promote
	//expect:golden("expected value")
	func goldenName() string { ... }

or

	//expect:golden("expected value", promote=true)
	func goldenName() string { ... }

No other directive comments are allowed on a golden function,
and //expect:promote cannot be combined with the promote option.`

// PromotionError is returned by every step of the promotion engine.
type PromotionError struct {
	Kind   error
	Path   m.Path
	Line   int
	Detail string
	Err    error
}

func newPromotionError(kind error, path m.Path, line int, detail string, err error) *PromotionError {
	return &PromotionError{Kind: kind, Path: path, Line: line, Detail: detail, Err: err}
}

// Summary is Error without the location and the usage guidance, on one line.
func (e *PromotionError) Summary() string {
	summary := e.Kind.Error()

	if e.Detail != "" {
		summary += ": " + e.Detail
	}

	if e.Err != nil {
		summary += ": " + e.Err.Error()
	}

	return strings.Join(strings.Fields(summary), " ")
}

func (e *PromotionError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)

		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	if errors.Is(e.Kind, ErrMalformedPromotion) {
		b.WriteString("\n\n")
		b.WriteString(promotionUsage)
	}

	return b.String()
}

// Unwrap exposes both the failure kind and the underlying cause.
func (e *PromotionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

package model

import (
	"go/ast"
	"go/token"
)

// AnnotationKind distinguishes bare directives from call-shaped directives.
type AnnotationKind int

const (
	// NameOnly is a directive without an argument list, e.g. //expect:promote.
	NameOnly AnnotationKind = iota
	// Call is a directive followed by a parenthesized argument list,
	// e.g. //expect:golden("value").
	Call
)

func (k AnnotationKind) String() string {
	if k == Call {
		return "call"
	}

	return "name"
}

// Argument is one entry of a Call annotation's argument list.
type Argument struct {
	// Name is set for options (name=value) and empty for positional arguments.
	Name string
	Kind token.Token
	// Literal is the argument text as written in the source.
	Literal string
}

// Annotation is a directive comment attached to a function declaration.
type Annotation struct {
	// Name is the directive name including its namespace, e.g. "expect:golden".
	Name string
	Kind AnnotationKind
	Args []Argument
	Text string
	Line int
	// Index is the position of the comment within the function's doc group.
	Index int
	// Malformed is set when the directive belongs to the expect namespace
	// but its argument list could not be scanned.
	Malformed string
}

// FunctionNode is the promotion engine's view of a function declaration.
type FunctionNode struct {
	Name        string
	Annotations []Annotation
	// DeclarationLine is the line of the first annotation, or FuncLine when
	// the function has no annotations.
	DeclarationLine int
	FuncLine        int
	// ReturnLine is the last line of the first top-level return statement,
	// zero when the body has none.
	ReturnLine int
	Decl       *ast.FuncDecl
	Return     *ast.ReturnStmt
}

// Patch is the textual replacement produced for one promotion.
type Patch struct {
	Span  LineRange
	Lines []string
	// Removed lists annotations that the rewrite dropped entirely.
	Removed []Annotation
}

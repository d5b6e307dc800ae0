package domain

import (
	"context"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	"expect.dev/pkg/expect/internal/adapter"
	m "expect.dev/pkg/expect/internal/model"
)

// Rewrite produces the replacement text for span: the expectation annotation
// holds newValue, the promote option and the promotion marker are gone, and
// the function is printed in gofmt style up to its return statement. Neither
// src nor the parsed tree is modified.
func Rewrite(
	ctx context.Context,
	goFileAdapter adapter.GoFileAdapter,
	src *SourceFile,
	target ValidatedTarget,
	span m.LineRange,
	newValue string,
) (m.Patch, error) {
	decl := target.Node.Decl

	retIndex := returnIndex(decl.Body, target.Node.Return)
	if retIndex < 0 {
		return m.Patch{}, newPromotionError(ErrUnresolvableSpan, src.Path, span.Start, "return statement is not part of the body", nil)
	}

	doc, removed := rewriteDoc(target, newValue)

	body := *decl.Body
	body.List = body.List[:retIndex+1]

	rewritten := *decl
	rewritten.Doc = doc
	rewritten.Body = &body

	printed, err := goFileAdapter.Print(ctx, src.Fset, &printer.CommentedNode{
		Node:     &rewritten,
		Comments: spanComments(src, decl.Doc, doc, span),
	})
	if err != nil {
		return m.Patch{}, newPromotionError(ErrParse, src.Path, span.Start, "print rewritten function", err)
	}

	lines := strings.Split(strings.TrimRight(string(printed), "\n"), "\n")

	lines, err = closeBody(src, decl, span, lines)
	if err != nil {
		return m.Patch{}, err
	}

	return m.Patch{
		Span:    span,
		Lines:   reindent(src, span, lines),
		Removed: removed,
	}, nil
}

func returnIndex(body *ast.BlockStmt, ret *ast.ReturnStmt) int {
	if body == nil || ret == nil {
		return -1
	}

	for i, stmt := range body.List {
		if stmt == ret {
			return i
		}
	}

	return -1
}

// rewriteDoc builds the doc group printed in place of the span's comments:
// everything from the first annotation on, with the expectation rewritten
// and the promotion marker dropped.
func rewriteDoc(target ValidatedTarget, newValue string) (*ast.CommentGroup, []m.Annotation) {
	var removed []m.Annotation

	expectation := target.Expectation
	expectation.Kind = m.Call
	expectation.Args = []m.Argument{{Kind: token.STRING, Literal: strconv.Quote(newValue)}}

	list := target.Node.Decl.Doc.List
	first := target.Node.Annotations[0].Index
	slots := list[first:]

	var texts []string

	for i := first; i < len(list); i++ {
		switch {
		case i == target.Expectation.Index:
			texts = append(texts, FormatAnnotation(expectation))
		case target.HasMarker && i == target.Marker.Index:
			removed = append(removed, target.Marker)
		default:
			texts = append(texts, list[i].Text)
		}
	}

	// Kept comments take the lowest slots so the group still ends directly
	// above the func keyword; the printer turns any gap into a blank line.
	doc := &ast.CommentGroup{}
	offset := len(slots) - len(texts)

	for i, text := range texts {
		doc.List = append(doc.List, &ast.Comment{Slash: slots[offset+i].Slash, Text: text})
	}

	return doc, removed
}

// spanComments restricts the file's comments to those inside span, with the
// original doc group swapped for the rewritten one. Comments outside the span
// stay in the file untouched and must not be printed twice.
func spanComments(src *SourceFile, original, rewritten *ast.CommentGroup, span m.LineRange) []*ast.CommentGroup {
	comments := []*ast.CommentGroup{rewritten}

	for _, group := range src.File.Comments {
		if group == original {
			continue
		}

		line := src.LineOf(group.Pos())
		if line > span.End {
			break
		}

		if line >= span.Start && group.Pos() > original.End() {
			comments = append(comments, group)
		}
	}

	return comments
}

// closeBody reconciles the printed closing brace with the original layout.
// When the brace sits on a later line it stays in the file and the printed
// one is dropped; when it shares the return line, whatever followed it on
// that line is carried over.
func closeBody(src *SourceFile, decl *ast.FuncDecl, span m.LineRange, lines []string) ([]string, error) {
	rbrace := src.Fset.PositionFor(decl.Body.Rbrace, false)

	if rbrace.Line > span.End {
		last := len(lines) - 1
		if last < 1 || strings.TrimSpace(lines[last]) != "}" {
			return nil, newPromotionError(ErrUnresolvableSpan, src.Path, span.Start,
				fmt.Sprintf("cannot separate the body of %s from its closing brace", decl.Name.Name), nil)
		}

		lines = lines[:last]

		// The printer keeps the gap before the original brace.
		for len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}

		return lines, nil
	}

	original := strings.TrimSuffix(src.Line(rbrace.Line), "\r")
	if rbrace.Column <= len(original) {
		lines[len(lines)-1] += original[rbrace.Column:]
	}

	return lines, nil
}

// reindent prefixes every printed line with the indentation of the span's
// first line and keeps CRLF line endings when the file uses them.
func reindent(src *SourceFile, span m.LineRange, lines []string) []string {
	first := src.Line(span.Start)
	indent := first[:len(first)-len(strings.TrimLeft(first, " \t"))]
	eol := ""

	if strings.HasSuffix(src.Line(span.End), "\r") {
		eol = "\r"
	}

	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if line == "" {
			out = append(out, eol)
			continue
		}

		out = append(out, indent+line+eol)
	}

	return out
}

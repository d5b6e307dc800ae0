package domain

import (
	"fmt"
	"go/ast"
	"go/scanner"
	"go/token"
	"strings"

	m "expect.dev/pkg/expect/internal/model"
)

const (
	annotationNamespace = "expect"

	// ExpectationName is the directive holding the expected value.
	ExpectationName = annotationNamespace + ":golden"
	// PromotionMarkerName is the bare directive requesting promotion.
	PromotionMarkerName = annotationNamespace + ":promote"
	// PromoteOption is the inline spelling of the promotion request.
	PromoteOption = "promote"
)

// isDirective follows the go/ast convention for directive comments: //line,
// //extern, //export and //[a-z0-9]+:[a-z0-9].
func isDirective(text string) bool {
	if strings.HasPrefix(text, "line ") || strings.HasPrefix(text, "extern ") || strings.HasPrefix(text, "export ") {
		return true
	}

	colon := strings.Index(text, ":")
	if colon <= 0 || colon+1 >= len(text) {
		return false
	}

	for i := 0; i <= colon+1; i++ {
		if i == colon {
			continue
		}

		c := text[i]
		if !('a' <= c && c <= 'z' || '0' <= c && c <= '9') {
			return false
		}
	}

	return true
}

// directiveName returns the leading namespace:name (or line/extern/export)
// of a directive and the remaining text.
func directiveName(text string) (string, string) {
	if i := strings.IndexByte(text, ' '); i > 0 && !strings.Contains(text[:i], ":") {
		return text[:i], text[i:]
	}

	colon := strings.IndexByte(text, ':')

	end := colon + 1
	for end < len(text) && isNameByte(text[end]) {
		end++
	}

	return text[:end], text[end:]
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

// ParseAnnotation classifies a doc comment. ok is false for prose and block
// comments. Directives of other namespaces are returned with their name and
// shape only; expect directives get their argument list scanned.
func ParseAnnotation(c *ast.Comment, line, index int) (m.Annotation, bool) {
	text, found := strings.CutPrefix(c.Text, "//")
	if !found || !isDirective(text) {
		return m.Annotation{}, false
	}

	name, rest := directiveName(text)
	annotation := m.Annotation{
		Name:  name,
		Kind:  m.NameOnly,
		Text:  c.Text,
		Line:  line,
		Index: index,
	}

	if strings.HasPrefix(strings.TrimSpace(rest), "(") {
		annotation.Kind = m.Call
	}

	if !strings.HasPrefix(name, annotationNamespace+":") {
		return annotation, true
	}

	args, err := scanArguments(rest)
	if err != nil {
		annotation.Malformed = err.Error()
		return annotation, true
	}

	annotation.Args = args

	return annotation, true
}

// argScanner walks the argument list of an expect directive with go/scanner.
type argScanner struct {
	s    scanner.Scanner
	errs scanner.ErrorList
	pos  token.Pos
	tok  token.Token
	lit  string
}

func (as *argScanner) next() {
	as.pos, as.tok, as.lit = as.s.Scan()
	// The scanner inserts a semicolon at end of input after literals and
	// closing parentheses.
	if as.tok == token.SEMICOLON && as.lit == "\n" {
		as.tok = token.EOF
	}
}

func scanArguments(rest string) ([]m.Argument, error) {
	src := []byte(rest)
	fset := token.NewFileSet()
	file := fset.AddFile("", -1, len(src))

	var as argScanner
	as.s.Init(file, src, func(pos token.Position, msg string) { as.errs.Add(pos, msg) }, 0)
	as.next()

	if as.tok == token.EOF {
		return nil, nil
	}

	if as.tok != token.LPAREN {
		return nil, fmt.Errorf("unexpected %q after directive name", strings.TrimSpace(rest))
	}

	args, err := as.arguments()
	if len(as.errs) > 0 {
		return nil, as.errs.Err()
	}

	if err != nil {
		return nil, err
	}

	return args, nil
}

func (as *argScanner) arguments() ([]m.Argument, error) {
	var args []m.Argument

	as.next()

	for as.tok != token.RPAREN {
		arg, err := as.argument()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		switch as.tok {
		case token.COMMA:
			as.next()
		case token.RPAREN:
		default:
			return nil, fmt.Errorf("expected ',' or ')', found %s", as.describe())
		}
	}

	as.next()

	if as.tok != token.EOF {
		return nil, fmt.Errorf("unexpected %s after ')'", as.describe())
	}

	return args, nil
}

func (as *argScanner) argument() (m.Argument, error) {
	switch as.tok {
	case token.STRING, token.INT, token.FLOAT, token.CHAR, token.IMAG:
		arg := m.Argument{Kind: as.tok, Literal: as.lit}
		as.next()

		return arg, nil
	case token.IDENT:
		name := as.lit
		as.next()

		if as.tok != token.ASSIGN {
			return m.Argument{Kind: token.IDENT, Literal: name}, nil
		}

		as.next()

		switch as.tok {
		case token.IDENT, token.STRING, token.INT, token.FLOAT, token.CHAR:
			arg := m.Argument{Name: name, Kind: as.tok, Literal: as.lit}
			as.next()

			return arg, nil
		default:
			return m.Argument{}, fmt.Errorf("missing value for option %s", name)
		}
	default:
		return m.Argument{}, fmt.Errorf("unexpected %s in argument list", as.describe())
	}
}

func (as *argScanner) describe() string {
	if as.tok == token.EOF {
		return "end of comment"
	}

	if as.lit != "" {
		return fmt.Sprintf("%q", as.lit)
	}

	return fmt.Sprintf("%q", as.tok.String())
}

// FormatAnnotation renders an annotation in its canonical comment form.
func FormatAnnotation(a m.Annotation) string {
	if a.Kind == m.NameOnly {
		return "//" + a.Name
	}

	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		if arg.Name != "" {
			parts = append(parts, arg.Name+"="+arg.Literal)
			continue
		}

		parts = append(parts, arg.Literal)
	}

	return "//" + a.Name + "(" + strings.Join(parts, ", ") + ")"
}

package domain

import (
	"fmt"

	m "expect.dev/pkg/expect/internal/model"
)

// Span returns the lines a promotion may rewrite: from the declaration line
// through the last line of the first top-level return statement.
func Span(path m.Path, node m.FunctionNode) (m.LineRange, error) {
	if node.Return == nil || node.ReturnLine == 0 {
		return m.LineRange{}, newPromotionError(ErrUnresolvableSpan, path, node.DeclarationLine,
			fmt.Sprintf("%s has no top-level return statement", node.Name), nil)
	}

	return m.LineRange{Start: node.DeclarationLine, End: node.ReturnLine}, nil
}

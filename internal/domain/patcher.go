package domain

import (
	"fmt"
	"strings"

	m "expect.dev/pkg/expect/internal/model"
)

// Apply returns a copy of lines with patch.Lines spliced over patch.Span.
// Lines outside the span are carried over unchanged.
func Apply(lines []string, patch m.Patch) ([]string, error) {
	start := patch.Span.Start - 1
	end := patch.Span.End

	if start < 0 || end > len(lines) || start >= end {
		return nil, fmt.Errorf("span %d-%d outside of %d lines", patch.Span.Start, patch.Span.End, len(lines))
	}

	out := make([]string, 0, len(lines)-patch.Span.Len()+len(patch.Lines))
	out = append(out, lines[:start]...)
	out = append(out, patch.Lines...)
	out = append(out, lines[end:]...)

	return out, nil
}

// Join renders lines as file content.
func Join(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// declarationOffset returns the index of the first directive among the
// patched lines, which becomes the function's new declaration line.
func declarationOffset(lines []string) int {
	for i, line := range lines {
		text, found := strings.CutPrefix(strings.TrimSpace(line), "//")
		if found && isDirective(text) {
			return i
		}
	}

	return 0
}

package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"

	m "expect.dev/pkg/expect/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	deleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true)
	insertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sourceStyle  = lipgloss.NewStyle().Faint(true)
)

// RenderMismatch formats a golden mismatch: the function, its warnings, a
// character diff from expected to actual and the function source.
func RenderMismatch(mismatch m.Mismatch, color bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s at %s:%d does not match its golden value", mismatch.Name, mismatch.Path, mismatch.Line)
	b.WriteString(style(titleStyle, color, title))
	b.WriteString("\n")

	for _, warning := range mismatch.Warnings {
		b.WriteString(style(warningStyle, color, "warning: "+warning))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "expected: %q\n", mismatch.Expected)
	fmt.Fprintf(&b, "actual:   %q\n", mismatch.Actual)
	b.WriteString("diff:     ")
	b.WriteString(RenderCharDiff(mismatch.Expected, mismatch.Actual, color))
	b.WriteString("\n")

	if len(mismatch.Source) > 0 {
		b.WriteString("source:\n")

		for _, line := range mismatch.Source {
			b.WriteString(style(sourceStyle, color, "    "+strings.TrimRight(line, "\r")))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderCharDiff renders the edit from expected to actual one character at a
// time. Without color, deletions are wrapped in [-...-] and insertions in
// {+...+}.
func RenderCharDiff(expected, actual string, color bool) string {
	a := splitChars(expected)
	b := splitChars(actual)

	var out strings.Builder

	matcher := difflib.NewMatcher(a, b)
	for _, op := range matcher.GetOpCodes() {
		removed := strings.Join(a[op.I1:op.I2], "")
		added := strings.Join(b[op.J1:op.J2], "")

		switch op.Tag {
		case 'e':
			out.WriteString(removed)
		case 'd':
			out.WriteString(deletion(removed, color))
		case 'i':
			out.WriteString(insertion(added, color))
		case 'r':
			out.WriteString(deletion(removed, color))
			out.WriteString(insertion(added, color))
		}
	}

	return out.String()
}

// RenderUnifiedDiff renders a unified line diff between two versions of path.
func RenderUnifiedDiff(path m.Path, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: string(path),
		ToFile:   string(path) + " (promoted)",
		Context:  3,
	})
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}

	return chars
}

func deletion(s string, color bool) string {
	if color {
		return deleteStyle.Render(s)
	}

	return "[-" + s + "-]"
}

func insertion(s string, color bool) string {
	if color {
		return insertStyle.Render(s)
	}

	return "{+" + s + "+}"
}

func style(s lipgloss.Style, color bool, text string) string {
	if !color {
		return text
	}

	return s.Render(text)
}

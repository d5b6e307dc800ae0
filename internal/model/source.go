// Package model defines the data structures shared by the promotion engine.
package model

// Path represents a file system path.
type Path string

// LineRange is an inclusive range of 1-based source lines.
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the range.
func (r LineRange) Len() int {
	if r.End < r.Start {
		return 0
	}

	return r.End - r.Start + 1
}

// Contains reports whether line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

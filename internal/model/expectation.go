package model

// ExpectationRecord is produced once per evaluated golden function and is the
// only input the promotion engine needs besides the file path.
type ExpectationRecord struct {
	// Line is the declaration line of the function: its first annotation, or
	// the func keyword when it has none.
	Line   int
	Actual string
}

// Mismatch describes a golden function whose actual value differs from the
// value stored in its expectation annotation.
type Mismatch struct {
	Path     Path
	Name     string
	Line     int
	Expected string
	Actual   string
	Warnings []string
	// Source holds the function text from the func keyword down.
	Source []string
}

// PromotionResult describes a completed promotion.
type PromotionResult struct {
	Path   Path
	Backup Path
	Name   string
	Span   LineRange
	Value  string
	// Line is the declaration line of the function after the rewrite.
	Line int
}

// CatalogEntry describes one golden function found while scanning sources.
type CatalogEntry struct {
	Path     Path   `yaml:"path"`
	Line     int    `yaml:"line"`
	Name     string `yaml:"name"`
	Expected string `yaml:"expected"`
	Trigger  string `yaml:"promote,omitempty"`
	Problem  string `yaml:"problem,omitempty"`
}

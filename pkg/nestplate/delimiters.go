package nestplate

import (
	"fmt"
	"strings"
)

// Default delimiter values.
const (
	DefaultEnclosureBegin = "{:"
	DefaultEnclosureEnd   = "}"
	DefaultNameSeparator  = ":"
)

// Delimiters is the immutable syntax configuration of a template.
// A placeholder is Begin + name + End, and name is a Separator-joined list
// of candidate keys tried in order.
type Delimiters struct {
	Begin     string
	End       string
	Separator string
}

// DefaultDelimiters returns {: } with ":" separating candidate keys.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Begin:     DefaultEnclosureBegin,
		End:       DefaultEnclosureEnd,
		Separator: DefaultNameSeparator,
	}
}

// Validate reports whether the delimiters can be scanned.
// Begin and End must be non-empty. An empty Separator disables fallback
// keys: the whole name is the only candidate.
func (d Delimiters) Validate() error {
	if d.Begin == "" {
		return fmt.Errorf("begin: %w", ErrEmptyEnclosure)
	}
	if d.End == "" {
		return fmt.Errorf("end: %w", ErrEmptyEnclosure)
	}
	return nil
}

// Token builds a placeholder for the given candidate keys.
//
//	DefaultDelimiters().Token("title", "name") // "{:title:name}"
func (d Delimiters) Token(candidates ...string) string {
	return d.Begin + strings.Join(candidates, d.Separator) + d.End
}

// Candidates splits a placeholder name into its candidate keys.
func (d Delimiters) Candidates(name string) []string {
	if d.Separator == "" {
		return []string{name}
	}
	return strings.Split(name, d.Separator)
}

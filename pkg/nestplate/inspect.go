package nestplate

import (
	"slices"
	"strings"
)

// Placeholder is a well-formed token found in a message.
type Placeholder struct {
	// Token is the full placeholder text, delimiters included.
	Token string

	// Name is the text between the delimiters.
	Name string

	// Candidates are the fallback keys of a leaf placeholder, in order.
	// Nil when the name contains a nested placeholder.
	Candidates []string

	// Offset is the byte index of the token in the message.
	Offset int

	// Depth is 0 for top-level placeholders and grows by one per
	// enclosing placeholder.
	Depth int

	// Leaf is true when the name contains no nested opener.
	Leaf bool
}

// Placeholders lists the placeholders in the template's message without
// resolving anything. Unclosed openers and stray closers are skipped.
func (t *Template) Placeholders() []Placeholder {
	return Scan(t.message, t.delims)
}

// Keys returns the distinct candidate keys referenced by the template's
// leaf placeholders, in order of first appearance.
//
// Keys of placeholders that only appear after a nested name is resolved
// cannot be known in advance and are not included.
func (t *Template) Keys() []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, p := range t.Placeholders() {
		for _, k := range p.Candidates {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// Scan finds the balanced placeholders of message in document order.
//
// Example:
//
//	nestplate.Scan("{:a{:b}} {:c:d}", nestplate.DefaultDelimiters())
//	// {:a{:b}} (depth 0), {:b} (depth 1), {:c:d} (depth 0)
func Scan(message string, d Delimiters) []Placeholder {
	if d.Validate() != nil {
		return nil
	}

	var (
		found []Placeholder
		open  []int
	)
	for i := 0; i < len(message); {
		switch {
		case strings.HasPrefix(message[i:], d.Begin):
			open = append(open, i)
			i += len(d.Begin)
		case len(open) > 0 && strings.HasPrefix(message[i:], d.End):
			start := open[len(open)-1]
			open = open[:len(open)-1]
			name := message[start+len(d.Begin) : i]
			p := Placeholder{
				Token:  message[start : i+len(d.End)],
				Name:   name,
				Offset: start,
				Depth:  len(open),
				Leaf:   !strings.Contains(name, d.Begin),
			}
			if p.Leaf {
				p.Candidates = d.Candidates(name)
			}
			found = append(found, p)
			i += len(d.End)
		default:
			i++
		}
	}

	slices.SortFunc(found, func(a, b Placeholder) int {
		return a.Offset - b.Offset
	})
	return found
}

package validate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rule is one validation rule.
//
// Option values are looked up in order: the dedicated field (Min, Max,
// Pattern, Title) when set, then Options, then the element attributes
// passed to Check.
type Rule struct {
	Kind    Kind           `yaml:"kind" json:"kind"`
	Min     any            `yaml:"min,omitempty" json:"min,omitempty"`
	Max     any            `yaml:"max,omitempty" json:"max,omitempty"`
	Pattern string         `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Title   string         `yaml:"title,omitempty" json:"title,omitempty"`
	Message string         `yaml:"message,omitempty" json:"message,omitempty"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// option returns the named option and whether it was found.
func (r Rule) option(name string, attrs map[string]any) (any, bool) {
	switch name {
	case "min":
		if r.Min != nil {
			return r.Min, true
		}
	case "max":
		if r.Max != nil {
			return r.Max, true
		}
	case "pattern":
		if r.Pattern != "" {
			return r.Pattern, true
		}
	case "title":
		if r.Title != "" {
			return r.Title, true
		}
	}
	if v, ok := r.Options[name]; ok {
		return v, true
	}
	if v, ok := attrs[name]; ok {
		return v, true
	}
	return nil, false
}

// messageValues returns the values a failure message is resolved with:
// the rule's options plus every dedicated option found for it.
func (r Rule) messageValues(attrs map[string]any) map[string]any {
	vals := make(map[string]any, len(r.Options)+4)
	for k, v := range r.Options {
		vals[k] = v
	}
	for _, name := range []string{"min", "max", "pattern", "title"} {
		if v, ok := r.option(name, attrs); ok {
			vals[name] = v
		}
	}
	return vals
}

// ParseRules decodes a YAML mapping of named rules:
//
//	age:
//	  kind: range
//	  min: 0
//	  max: 150
//	  title: Age
func ParseRules(data []byte) (map[string]Rule, error) {
	var rules map[string]Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	for name, r := range rules {
		if r.Kind == KindUnknown {
			return nil, fmt.Errorf("rule %q: %w: missing kind", name, ErrUnknownKind)
		}
	}
	return rules, nil
}

package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of validation rules.
type Kind int

const (
	// KindUnknown is the zero Kind and never valid in a Rule.
	KindUnknown Kind = iota

	// KindRange checks min <= value <= max numerically.
	KindRange

	// KindRegex checks that the value matches a pattern.
	KindRegex

	// KindDatetimeRange checks min <= value <= max as points in time.
	KindDatetimeRange
)

// ErrUnknownKind indicates a rule kind name that is not recognized.
var ErrUnknownKind = errors.New("unknown rule kind")

var kindNames = map[Kind]string{
	KindRange:         "range",
	KindRegex:         "regex",
	KindDatetimeRange: "datetime_range",
}

// Kinds returns every valid Kind.
func Kinds() []Kind {
	return []Kind{KindRange, KindRegex, KindDatetimeRange}
}

// String returns the rule name used in catalogs and config ("range",
// "regex", "datetime_range").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a rule name into a Kind. Matching ignores case and
// accepts "-" in place of "_".
func ParseKind(s string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so rule files can
// spell kinds by name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

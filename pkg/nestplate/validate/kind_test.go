package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"range", KindRange},
		{"regex", KindRegex},
		{"datetime_range", KindDatetimeRange},
		{"Datetime-Range", KindDatetimeRange},
		{" REGEX ", KindRegex},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}

	_, err := ParseKind("email")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_String(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "Kind(0)", KindUnknown.String())
}

func TestKind_Text(t *testing.T) {
	text, err := KindDatetimeRange.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "datetime_range", string(text))

	_, err = KindUnknown.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownKind)

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("regex")))
	assert.Equal(t, KindRegex, k)
	assert.Error(t, k.UnmarshalText([]byte("nope")))
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(`
age:
  kind: range
  min: 0
  max: 150
  title: Age
zip:
  kind: regex
  pattern: '^\d{3}-\d{4}$'
  message: "{:title:name} is not a zip code"
  options:
    title: Zip
`))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	age := rules["age"]
	assert.Equal(t, KindRange, age.Kind)
	assert.Equal(t, 0, age.Min)
	assert.Equal(t, 150, age.Max)
	assert.Equal(t, "Age", age.Title)

	zip := rules["zip"]
	assert.Equal(t, KindRegex, zip.Kind)
	assert.Equal(t, `^\d{3}-\d{4}$`, zip.Pattern)
	assert.Equal(t, "Zip", zip.Options["title"])
}

func TestParseRules_Errors(t *testing.T) {
	_, err := ParseRules([]byte("a:\n  kind: email\n"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseRules([]byte("a:\n  min: 1\n"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseRules([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func TestRule_OptionOrder(t *testing.T) {
	rule := Rule{Pattern: "field", Options: map[string]any{"pattern": "opt", "min": 1}}
	attrs := map[string]any{"pattern": "attr", "min": 2, "max": 3}

	v, ok := rule.option("pattern", attrs)
	assert.True(t, ok)
	assert.Equal(t, "field", v)

	v, _ = rule.option("min", attrs)
	assert.Equal(t, 1, v)

	v, _ = rule.option("max", attrs)
	assert.Equal(t, 3, v)

	_, ok = rule.option("title", attrs)
	assert.False(t, ok)
}

/*
Package validate checks form values against range, regex and datetime
range rules and formats failure messages with nestplate.

# Rules

A Rule names its Kind and options:

	rule := validate.Rule{Kind: validate.KindRange, Min: 1, Max: 10, Title: "Quantity"}

Options are looked up in the rule's dedicated fields, then Rule.Options,
then the attributes of the element being validated, so a rule can take
its bounds from the element:

	attrs := map[string]any{"name": "qty", "min": 1, "max": 10}
	res := v.Check(ctx, 12, validate.Rule{Kind: validate.KindRange}, attrs)

ParseRules reads named rules from YAML, and CheckAll applies several rules
to one value.

# Messages

A failure message is Rule.Message when set, otherwise the catalog format
for the rule kind in the validator's locale, otherwise a built-in English
format. It is resolved as a nestplate message with the rule options (min,
max, pattern, title and everything in Rule.Options) plus the checked value
and the element name:

	v, _ := validate.New()
	res := v.Check(ctx, "abc", validate.Rule{
	    Kind:    validate.KindRegex,
	    Pattern: `^\d+$`,
	    Title:   "Zip code",
	}, nil)
	// res.Message: `Zip code must match the format ^\d+$.`

# Errors

A rule that cannot be evaluated (non-numeric value for a range, invalid
pattern, unparsable date) is reported in Result.Err, wrapping
ErrInvalidValue or ErrInvalidOption, and is never valid.
*/
package validate

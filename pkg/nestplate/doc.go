/*
Package nestplate resolves nested placeholder templates.

# Overview

A template is a message containing placeholders of the form {:name}. The
name may list fallback keys separated by ":" and may itself contain
placeholders, which are resolved first:

	tmpl := nestplate.MustNew("{:label_{:lang}:label}", map[string]any{
	    "lang":     "ja",
	    "label_ja": "名前",
	    "label":    "Name",
	})
	tmpl.Resolve(nil) // "名前"

# Basic Usage

Resolve a message once with the package-level function:

	msg := nestplate.Resolve("Hello {:name}", map[string]any{"name": "World"})
	// msg: "Hello World"

Or build a Template with stored values and resolve it with per-call values:

	tmpl, err := nestplate.New("{:title} must be between {:min} and {:max}",
	    map[string]any{"min": 1, "max": 10})
	if err != nil {
	    return err
	}
	msg := tmpl.Resolve(map[string]any{"title": "Age"})
	// msg: "Age must be between 1 and 10"

Stored values win over per-call values with the same key. Neither map is
modified.

# Resolution Order

The resolver scans right to left from the end of the message and always
works on the placeholder whose opener is closest to the cursor, so inner
placeholders are replaced before the placeholders that contain them. A
replacement rewrites every occurrence of the token and restarts the scan
from the end, so replacement text that contains placeholders is resolved
too.

For a leaf placeholder the candidate keys are tried left to right:

	nestplate.Resolve("{:nickname:name}", map[string]any{"name": "Ann"})
	// "Ann"

# Missing Values

When no candidate key is present the placeholder stays verbatim, or is
replaced by the global substitute when one is configured:

	tmpl, _ := nestplate.New("Hi {:who}", nil, nestplate.WithSubstitute("there"))
	tmpl.Resolve(nil) // "Hi there"

Malformed input never fails. An opener without a closer is left in place
and does not stop the resolution of other placeholders.

# Termination

A scan that finds the message unchanged since its last replacement attempt
moves past the current opener, so resolution of any message terminates.
Values that reintroduce placeholders (a -> "{:a}{:a}", or a cycle between
two keys) are bounded by WithMaxSteps and WithMaxLength. ResolveDetailed
reports when a limit was hit.

# Custom Delimiters

	tmpl, _ := nestplate.New("[[greeting,hello]] [[who]]", vals,
	    nestplate.WithEnclosure("[[", "]]"),
	    nestplate.WithNameSeparator(","),
	)

Delimiters can also come from a config file; see OptionsFromConfig.

# Inspection

Keys lists the distinct keys a template's message refers to. Scan reports
every placeholder with its byte offset, including nested ones.

# Observability

WithLogger, WithMetrics and WithTracing enable slog debug logging,
OpenTelemetry metrics and OpenTelemetry spans per resolution. Each traced
or logged resolution gets a UUID resolution ID.

# Thread Safety

Template is immutable after construction and safe for concurrent use.
Set is safe for concurrent use.
*/
package nestplate

package validate

// defaultFormats are used when a rule has no message and the catalog has
// no format for its kind.
var defaultFormats = map[Kind]string{
	KindRange:         "{:title:name} must be between {:min} and {:max}.",
	KindRegex:         "{:title:name} must match the format {:pattern}.",
	KindDatetimeRange: "{:title:name} must be between {:min} and {:max}.",
}

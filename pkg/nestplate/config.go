package nestplate

import "github.com/randalmurphal/nestplate/pkg/nestplate/config"

// Configuration keys read by OptionsFromConfig.
const (
	ConfigEnclosureBegin = "enclosure_begin"
	ConfigEnclosureEnd   = "enclosure_end"
	ConfigNameSeparator  = "name_separator"
	ConfigSubstitute     = "substitute"
	ConfigMaxSteps       = "max_steps"
	ConfigMaxLength      = "max_length"
)

// OptionsFromConfig translates a config section into Options.
// Missing keys keep the defaults. An explicit empty substitute is honored,
// so "substitute: ''" erases unresolved placeholders.
func OptionsFromConfig(cfg config.Config) []Option {
	d := DefaultDelimiters()
	d.Begin = cfg.String(ConfigEnclosureBegin, d.Begin)
	d.End = cfg.String(ConfigEnclosureEnd, d.End)
	d.Separator = cfg.String(ConfigNameSeparator, d.Separator)

	opts := []Option{
		WithDelimiters(d),
		WithMaxSteps(cfg.Int(ConfigMaxSteps, DefaultMaxSteps)),
		WithMaxLength(cfg.Int(ConfigMaxLength, DefaultMaxLength)),
	}
	if s, ok := cfg.LookupString(ConfigSubstitute); ok {
		opts = append(opts, WithSubstitute(s))
	}
	return opts
}

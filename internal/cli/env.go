package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
	"github.com/randalmurphal/nestplate/pkg/nestplate/config"
)

// envPrefix prefixes the environment variables that override resolver settings.
const envPrefix = "NESTPLATE_"

// resolverEnv holds the resolver settings read from the environment.
type resolverEnv struct {
	EnclosureBegin string `env:"ENCLOSURE_BEGIN"`
	EnclosureEnd   string `env:"ENCLOSURE_END"`
	NameSeparator  string `env:"NAME_SEPARATOR"`
	Substitute     string `env:"SUBSTITUTE"`
	MaxSteps       int    `env:"MAX_STEPS"`
	MaxLength      int    `env:"MAX_LENGTH"`
}

// envConfig returns the resolver settings set in environ. Unset variables,
// and empty numeric ones, are left out so they never mask the config file.
func envConfig(environ []string) (config.Config, error) {
	vars := env.ToMap(environ)
	var raw resolverEnv
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: envPrefix, Environment: vars}); err != nil {
		return config.Config{}, fmt.Errorf("parse env: %w", err)
	}

	fields := []struct {
		key   string
		name  string
		value any
	}{
		{nestplate.ConfigEnclosureBegin, "ENCLOSURE_BEGIN", raw.EnclosureBegin},
		{nestplate.ConfigEnclosureEnd, "ENCLOSURE_END", raw.EnclosureEnd},
		{nestplate.ConfigNameSeparator, "NAME_SEPARATOR", raw.NameSeparator},
		{nestplate.ConfigSubstitute, "SUBSTITUTE", raw.Substitute},
		{nestplate.ConfigMaxSteps, "MAX_STEPS", raw.MaxSteps},
		{nestplate.ConfigMaxLength, "MAX_LENGTH", raw.MaxLength},
	}
	out := make(map[string]any)
	for _, f := range fields {
		v, ok := vars[envPrefix+f.name]
		if !ok {
			continue
		}
		if _, numeric := f.value.(int); numeric && v == "" {
			continue
		}
		out[f.key] = f.value
	}
	return config.New(out), nil
}

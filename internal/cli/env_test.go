package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvConfig(t *testing.T) {
	cfg, err := envConfig([]string{
		"NESTPLATE_ENCLOSURE_BEGIN=<<",
		"NESTPLATE_SUBSTITUTE=",
		"NESTPLATE_MAX_STEPS=25",
		"NESTPLATE_MAX_LENGTH=",
		"OTHER_SUBSTITUTE=ignored",
		"PATH=/usr/bin",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"enclosure_begin", "max_steps", "substitute"}, cfg.Keys())
	assert.Equal(t, "<<", cfg.String("enclosure_begin", ""))
	assert.Equal(t, 25, cfg.Int("max_steps", 0))

	sub, ok := cfg.LookupString("substitute")
	assert.True(t, ok)
	assert.Equal(t, "", sub)
}

func TestEnvConfig_Empty(t *testing.T) {
	cfg, err := envConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Keys())
}

func TestEnvConfig_InvalidNumber(t *testing.T) {
	_, err := envConfig([]string{"NESTPLATE_MAX_LENGTH=lots"})
	assert.ErrorContains(t, err, "parse env")
}

func TestResolveCmd_EnvOverridesConfig(t *testing.T) {
	cfg := writeFile(t, "nestplate.yaml", "substitute: from-file\nmax_steps: 100\n")

	out, _, err := execute(t, "", "--config", cfg, "resolve", "{:x}")
	require.NoError(t, err)
	assert.Equal(t, "from-file\n", out)

	t.Setenv("NESTPLATE_SUBSTITUTE", "from-env")
	out, _, err = execute(t, "", "--config", cfg, "resolve", "{:x}")
	require.NoError(t, err)
	assert.Equal(t, "from-env\n", out)

	t.Setenv("NESTPLATE_MAX_STEPS", "x")
	_, _, err = execute(t, "", "resolve", "{:x}")
	assert.ErrorContains(t, err, "parse env")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()
	assert.Equal(t, "gpsbabel", c.Babel.Path)
	assert.Equal(t, "/bin/bash", c.Babel.ShellPath)
	assert.Equal(t, 2, c.Download.MaxRedirects)
	assert.Greater(t, c.RateLimit.RequestsPerSecond, 0.0)
	require.NoError(t, c.Validate())
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("GEOENGINE_BABEL_PATH", "/opt/gpsbabel/bin/gpsbabel")
	t.Setenv("GEOENGINE_MAX_REDIRECTS", "5")
	t.Setenv("GEOENGINE_RATE_LIMIT_RPS", "2.5")

	c := Load()
	assert.Equal(t, "/opt/gpsbabel/bin/gpsbabel", c.Babel.Path)
	assert.Equal(t, 5, c.Download.MaxRedirects)
	assert.Equal(t, 2.5, c.RateLimit.RequestsPerSecond)
}

func TestLoadIgnoresInvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("GEOENGINE_MAX_REDIRECTS", "not-a-number")
	c := Load()
	assert.Equal(t, 2, c.Download.MaxRedirects)
}

func TestValidateRejectsEmptyBabelPath(t *testing.T) {
	c := &Config{Babel: BabelConfig{Path: ""}, RateLimit: RateLimitConfig{RequestsPerSecond: 1}}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsNonPositiveRateLimit(t *testing.T) {
	c := &Config{Babel: BabelConfig{Path: "gpsbabel"}, RateLimit: RateLimitConfig{RequestsPerSecond: 0}}
	assert.Error(t, c.Validate())
}

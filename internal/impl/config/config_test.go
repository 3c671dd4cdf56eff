package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConfig() *Config {
	return &Config{
		DataDir:       "/tmp/toolbelt-test",
		ListenAddress: ":0",
		logger:        zap.NewNop(),
	}
}

func TestResolveEnvironmentVariable(t *testing.T) {
	cfg := newTestConfig()

	t.Setenv("TOOLBELT_TEST_KEY", "sk-12345")

	resolved, err := cfg.ResolveEnvironmentVariable("#{TOOLBELT_TEST_KEY}#")
	require.NoError(t, err)
	assert.Equal(t, "sk-12345", resolved)

	raw, err := cfg.ResolveEnvironmentVariable("plain-value")
	require.NoError(t, err)
	assert.Equal(t, "plain-value", raw)

	_, err = cfg.ResolveEnvironmentVariable("#{TOOLBELT_TEST_MISSING}#")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOOLBELT_TEST_MISSING")

	_, err = cfg.ResolveEnvironmentVariable("#{}#")
	assert.Error(t, err)
}

func TestResolveConfiguration(t *testing.T) {
	cfg := newTestConfig()
	t.Setenv("TOOLBELT_TEST_TOKEN", "tok-999")

	resolved, err := cfg.ResolveConfiguration(map[string]string{
		"api_key":  "#{TOOLBELT_TEST_TOKEN}#",
		"base_url": "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-999", resolved["api_key"])
	assert.Equal(t, "https://example.com", resolved["base_url"])

	_, err = cfg.ResolveConfiguration(map[string]string{
		"api_key": "#{TOOLBELT_TEST_ABSENT}#",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "*****2345", maskKey("sk-12345"))
	assert.Equal(t, "", maskKey(""))
}

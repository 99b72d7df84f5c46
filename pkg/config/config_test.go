// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlfp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal("info", c.GetString(LogLevel))
	assert.Equal("", c.GetString(LogFile))
	assert.True(c.GetBool(CacheEnabled))
	assert.EqualValues(5000000, c.GetInt64(CacheMaxCost))
	assert.False(c.GetBool(StatsdEnabled))
	assert.Equal("127.0.0.1:8125", c.GetString(StatsdAddr))
	assert.False(c.GetBool(FallbackEnabled))
	assert.True(c.GetBool(FallbackCollectTables))
	assert.Equal(FormatJSON, c.GetString(OutputFormat))
	assert.Equal(4, c.GetInt(Workers))
}

func TestEnvOverride(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("SQLFP_CACHE_ENABLED", "false")
	t.Setenv("SQLFP_WORKERS", "8")
	t.Setenv("SQLFP_OUTPUT_FORMAT", "yaml")

	c, err := Load("")
	require.NoError(t, err)
	assert.False(c.GetBool(CacheEnabled))
	assert.Equal(8, c.GetInt(Workers))
	assert.Equal(FormatYAML, c.GetString(OutputFormat))
	assert.Contains(c.GetEnvVars(), "SQLFP_CACHE_MAX_COST")
	assert.Contains(c.GetEnvVars(), "SQLFP_LOG_LEVEL")
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)
	path := writeConfig(t, `
log_level: debug
cache:
  max_cost: 1024
fallback:
  enabled: true
  replace_digits: true
output:
  format: text
  tokens: true
workers: 2
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal("debug", c.GetString(LogLevel))
	assert.Equal(2, c.GetInt(Workers))
	assert.Equal(FormatText, c.GetString(OutputFormat))

	ec := c.Engine()
	assert.True(ec.Cache)
	assert.EqualValues(1024, ec.CacheMaxCost)
	assert.True(ec.Tokens)
	assert.True(ec.Fallback.Enabled)
	assert.True(ec.Fallback.ReplaceDigits)
	assert.True(ec.Fallback.CollectCommands)
	assert.False(ec.Fallback.DollarQuotedFunc)
	assert.Nil(ec.Statsd)
	assert.Nil(ec.Logger)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SQLFP_WORKERS", "16")
	c, err := Load(writeConfig(t, "workers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, c.GetInt(Workers))
}

func TestLoadErrors(t *testing.T) {
	for name, tt := range map[string]struct {
		content string
		err     string
	}{
		"format":   {content: "output:\n  format: xml\n", err: `invalid output.format "xml"`},
		"workers":  {content: "workers: 0\n", err: "invalid workers 0"},
		"max_cost": {content: "cache:\n  max_cost: -1\n", err: "invalid cache.max_cost -1"},
		"syntax":   {content: "workers: [\n", err: "unable to load config file"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	c := New()
	c.Set(LogFile, "/tmp/sqlfp.log")
	assert.Equal(t, "/tmp/sqlfp.log", c.GetString(LogFile))
}

// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package config loads the sqlfp configuration from defaults, an optional
// YAML file and SQLFP_ prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/DataDog/viper"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint"
	"github.com/DataDog/sqlfingerprint/pkg/util/log"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SQLFP"

// Configuration keys.
const (
	LogLevel                = "log_level"
	LogFile                 = "log_file"
	CacheEnabled            = "cache.enabled"
	CacheMaxCost            = "cache.max_cost"
	StatsdEnabled           = "statsd.enabled"
	StatsdAddr              = "statsd.addr"
	FallbackEnabled         = "fallback.enabled"
	FallbackCollectTables   = "fallback.collect_tables"
	FallbackCollectCommands = "fallback.collect_commands"
	FallbackCollectComments = "fallback.collect_comments"
	FallbackReplaceDigits   = "fallback.replace_digits"
	FallbackDollarQuoted    = "fallback.dollar_quoted_func"
	OutputFormat            = "output.format"
	OutputTokens            = "output.tokens"
	Workers                 = "workers"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Config wraps viper for concurrent access and keeps track of the
// environment variables it consults.
type Config struct {
	sync.RWMutex
	*viper.Viper

	envPrefix      string
	envKeyReplacer *strings.Replacer
	configEnvVars  map[string]struct{}
}

// NewConfig returns an empty configuration named name whose keys can be
// overridden by environment variables starting with envPrefix.
func NewConfig(name string, envPrefix string, envKeyReplacer *strings.Replacer) *Config {
	c := &Config{
		Viper:          viper.New(),
		envPrefix:      envPrefix,
		envKeyReplacer: envKeyReplacer,
		configEnvVars:  map[string]struct{}{},
	}
	c.Viper.SetTypeByDefaultValue(true)
	c.Viper.SetConfigName(name)
	c.Viper.SetConfigType("yaml")
	c.Viper.SetEnvPrefix(envPrefix)
	c.Viper.SetEnvKeyReplacer(envKeyReplacer)
	return c
}

// New returns the sqlfp configuration with its defaults registered.
func New() *Config {
	c := NewConfig("sqlfp", EnvPrefix, strings.NewReplacer(".", "_"))
	initConfig(c)
	return c
}

func initConfig(c *Config) {
	c.BindEnvAndSetDefault(LogLevel, "info")
	c.BindEnvAndSetDefault(LogFile, "")

	c.BindEnvAndSetDefault(CacheEnabled, true)
	c.BindEnvAndSetDefault(CacheMaxCost, int64(5000000))

	c.BindEnvAndSetDefault(StatsdEnabled, false)
	c.BindEnvAndSetDefault(StatsdAddr, "127.0.0.1:8125")

	c.BindEnvAndSetDefault(FallbackEnabled, false)
	c.BindEnvAndSetDefault(FallbackCollectTables, true)
	c.BindEnvAndSetDefault(FallbackCollectCommands, true)
	c.BindEnvAndSetDefault(FallbackCollectComments, true)
	c.BindEnvAndSetDefault(FallbackReplaceDigits, false)
	c.BindEnvAndSetDefault(FallbackDollarQuoted, false)

	c.BindEnvAndSetDefault(OutputFormat, FormatJSON)
	c.BindEnvAndSetDefault(OutputTokens, false)
	c.BindEnvAndSetDefault(Workers, 4)
}

// Load returns the configuration read from path on top of the defaults.
// An empty path only applies defaults and the environment.
func Load(path string) (*Config, error) {
	c := New()
	if path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
		}
		log.Debugf("configuration loaded from %s", path)
		warnUnexpectedUnicode(path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func warnUnexpectedUnicode(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, u := range findUnexpectedUnicode(b) {
		log.Warnf("unexpected codepoint in %s: %s", path, u) //nolint:errcheck
	}
}

// Validate reports the first setting holding an unusable value.
func (c *Config) Validate() error {
	switch f := c.GetString(OutputFormat); f {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("invalid %s %q: must be one of json, yaml or text", OutputFormat, f)
	}
	if n := c.GetInt(Workers); n < 1 {
		return fmt.Errorf("invalid %s %d: must be at least 1", Workers, n)
	}
	if n := c.GetInt64(CacheMaxCost); n < 0 {
		return fmt.Errorf("invalid %s %d: must not be negative", CacheMaxCost, n)
	}
	return nil
}

// Engine maps the configuration onto an engine configuration. The stats
// client and logger are left for the caller to set.
func (c *Config) Engine() sqlfingerprint.Config {
	return sqlfingerprint.Config{
		Cache:        c.GetBool(CacheEnabled),
		CacheMaxCost: c.GetInt64(CacheMaxCost),
		Tokens:       c.GetBool(OutputTokens),
		Fallback: sqlfingerprint.FallbackConfig{
			Enabled:          c.GetBool(FallbackEnabled),
			CollectTables:    c.GetBool(FallbackCollectTables),
			CollectCommands:  c.GetBool(FallbackCollectCommands),
			CollectComments:  c.GetBool(FallbackCollectComments),
			ReplaceDigits:    c.GetBool(FallbackReplaceDigits),
			DollarQuotedFunc: c.GetBool(FallbackDollarQuoted),
		},
	}
}

// Set wraps Viper for concurrent access
func (c *Config) Set(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.Set(key, value)
}

// SetDefault wraps Viper for concurrent access
func (c *Config) SetDefault(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetDefault(key, value)
}

// BindEnv wraps Viper for concurrent access, and adds tracking of the configurable env vars
func (c *Config) BindEnv(key string, envvars ...string) {
	c.Lock()
	defer c.Unlock()

	envKeys := envvars
	if len(envKeys) == 0 {
		envKeys = []string{c.mergeWithEnvPrefix(key)}
	}
	for _, envname := range envKeys {
		if c.envKeyReplacer != nil {
			envname = c.envKeyReplacer.Replace(envname)
		}
		c.configEnvVars[envname] = struct{}{}
	}
	_ = c.Viper.BindEnv(append([]string{key}, envvars...)...)
}

// BindEnvAndSetDefault registers the default of key and binds its
// environment variable.
func (c *Config) BindEnvAndSetDefault(key string, val interface{}, envvars ...string) {
	c.SetDefault(key, val)
	c.BindEnv(key, envvars...)
}

// mergeWithEnvPrefix must be called while holding the config lock.
func (c *Config) mergeWithEnvPrefix(key string) string {
	return strings.Join([]string{c.envPrefix, strings.ToUpper(key)}, "_")
}

// GetEnvVars returns the environment variables consulted for configuration values.
func (c *Config) GetEnvVars() []string {
	c.RLock()
	defer c.RUnlock()
	vars := make([]string, 0, len(c.configEnvVars))
	for v := range c.configEnvVars {
		vars = append(vars, v)
	}
	return vars
}

// IsSet wraps Viper for concurrent access
func (c *Config) IsSet(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.IsSet(key)
}

// GetString wraps Viper for concurrent access
func (c *Config) GetString(key string) string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetString(key)
}

// GetBool wraps Viper for concurrent access
func (c *Config) GetBool(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetBool(key)
}

// GetInt wraps Viper for concurrent access
func (c *Config) GetInt(key string) int {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetInt(key)
}

// GetInt64 wraps Viper for concurrent access
func (c *Config) GetInt64(key string) int64 {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetInt64(key)
}

// SetConfigFile wraps Viper for concurrent access
func (c *Config) SetConfigFile(in string) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetConfigFile(in)
}

// ReadInConfig wraps Viper for concurrent access
func (c *Config) ReadInConfig() error {
	c.Lock()
	defer c.Unlock()
	return c.Viper.ReadInConfig()
}

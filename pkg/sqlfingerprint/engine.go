// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package sqlfingerprint fingerprints and normalizes PostgreSQL queries.
//
// An Engine parses each query, then either hashes its parse tree into a
// fingerprint that ignores constants and cosmetic differences, or rewrites
// its text with constants replaced by $n parameters. Results can be cached,
// and queries the parser rejects can optionally be normalized by a lexer
// instead.
package sqlfingerprint

import (
	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/benbjohnson/clock"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/fingerprint"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/normalize"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/parser"
)

// Config holds the configuration of an Engine.
type Config struct {
	// Cache reports whether results should be kept in a look-up cache.
	Cache bool `json:"cache" yaml:"cache"`

	// CacheMaxCost bounds the cache size in bytes of query and result text.
	// Zero selects the default of 5MB.
	CacheMaxCost int64 `json:"cache_max_cost" yaml:"cache_max_cost"`

	// Tokens requests the hashed tokens along with each fingerprint.
	Tokens bool `json:"tokens" yaml:"tokens"`

	// Fallback configures lexer based normalization of unparsable queries.
	Fallback FallbackConfig `json:"fallback" yaml:"fallback"`

	// Statsd specifies the statsd client to use for reporting metrics.
	// If unset, no stats are reported.
	Statsd StatsClient `json:"-" yaml:"-"`

	// Logger specifies the logger to use when outputting messages.
	// If unset, no logs will be outputted.
	Logger Logger `json:"-" yaml:"-"`
}

// Logger is able to log certain log messages.
type Logger interface {
	// Debugf logs the given message using the given format.
	Debugf(format string, params ...interface{})
	// Warnf logs the given warning using the given format.
	Warnf(format string, params ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(_ string, _ ...interface{}) {}
func (noopLogger) Warnf(_ string, _ ...interface{})  {}

// FingerprintResult is the fingerprint of a query. Results may be shared
// through the cache and must not be modified.
type FingerprintResult struct {
	Fingerprint uint64   `json:"fingerprint" yaml:"fingerprint"`
	Hex         string   `json:"hex" yaml:"hex"`
	Tokens      []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NormalizeResult is a normalized query. Fallback is set when the query was
// normalized by the lexer, in which case Metadata may be set.
type NormalizeResult struct {
	Query    string            `json:"query" yaml:"query"`
	Fallback bool              `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Metadata *FallbackMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Engine fingerprints and normalizes queries. It is safe for concurrent use;
// every call works on its own parse tree and hashing state.
type Engine struct {
	cfg      Config
	cache    *measuredCache
	lexer    *lexerNormalizer // nil if the fallback is disabled
	statsd   StatsClient
	log      Logger
	counters counters
	clock    clock.Clock

	exit chan struct{}
	done chan struct{} // nil if stats are not reported
}

// NewEngine creates a new Engine. Stop must be called once it is no longer
// used.
func NewEngine(cfg Config) *Engine {
	return newEngine(cfg, clock.New())
}

func newEngine(cfg Config, clk clock.Clock) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	cacheOpts := cacheOptions{On: cfg.Cache, MaxCost: cfg.CacheMaxCost}
	e := &Engine{
		cfg:      cfg,
		cache:    newMeasuredCache(cacheOpts),
		statsd:   cfg.Statsd,
		log:      cfg.Logger,
		counters: newCounters(),
		clock:    clk,
		exit:     make(chan struct{}),
	}
	e.log.Debugf("query cache: %s", cacheOpts)
	if cfg.Fallback.Enabled {
		e.lexer = newLexerNormalizer(cfg.Fallback)
	}
	if e.statsd == nil {
		e.statsd = &statsd.NoOpClient{}
	} else {
		e.done = make(chan struct{})
		go e.statsLoop()
	}
	return e
}

// Stop cleans up after a finished Engine: the stats are reported one last
// time and the cache is released.
func (e *Engine) Stop() {
	close(e.exit)
	if e.done != nil {
		<-e.done
	}
	e.cache.Close()
}

// Parse parses query into its statements.
func (e *Engine) Parse(query string) ([]*ast.RawStmt, error) {
	stmts, err := parser.Parse(query)
	if err != nil {
		e.log.Debugf("could not parse query: %v", err)
	}
	return stmts, err
}

// Fingerprint returns the fingerprint of query.
func (e *Engine) Fingerprint(query string) (*FingerprintResult, error) {
	e.counters.queries.Inc()
	key := cacheKey(opFingerprint, query)
	if v, ok := e.cache.Get(key); ok {
		return v.(*FingerprintResult), nil
	}
	stmts, err := e.Parse(query)
	if err != nil {
		e.counters.errors.Inc()
		return nil, err
	}
	fp, err := fingerprint.Fingerprint(stmts, fingerprint.Options{Tokens: e.cfg.Tokens, Logger: e.log})
	if err != nil {
		e.counters.errors.Inc()
		return nil, err
	}
	res := &FingerprintResult{
		Fingerprint: fp.Value,
		Hex:         fp.Hex,
		Tokens:      fp.Tokens,
		Warnings:    fp.Warnings,
	}
	e.cache.Set(key, res, int64(len(key)+len(res.Hex)))
	return res, nil
}

// Normalize returns query with its constants replaced by $n parameters.
func (e *Engine) Normalize(query string) (*NormalizeResult, error) {
	e.counters.queries.Inc()
	key := cacheKey(opNormalize, query)
	if v, ok := e.cache.Get(key); ok {
		return v.(*NormalizeResult), nil
	}
	res, err := e.normalize(query)
	if err != nil {
		e.counters.errors.Inc()
		return nil, err
	}
	e.cache.Set(key, res, int64(len(key)+len(res.Query)))
	return res, nil
}

func (e *Engine) normalize(query string) (*NormalizeResult, error) {
	stmts, err := e.Parse(query)
	if err != nil {
		if e.lexer == nil {
			return nil, err
		}
		res, lexErr := e.lexer.normalize(query)
		if lexErr != nil {
			e.log.Debugf("could not normalize query with the lexer: %v", lexErr)
			return nil, err
		}
		e.counters.fallbacks.Inc()
		return res, nil
	}
	out, err := normalize.Tree(query, stmts)
	if err != nil {
		return nil, err
	}
	return &NormalizeResult{Query: out}, nil
}

// Fingerprint returns the fingerprint of query using a default, uncached
// configuration.
func Fingerprint(query string) (*FingerprintResult, error) {
	e := NewEngine(Config{})
	defer e.Stop()
	return e.Fingerprint(query)
}

// Normalize normalizes query using a default, uncached configuration.
func Normalize(query string) (*NormalizeResult, error) {
	e := NewEngine(Config{})
	defer e.Stop()
	return e.Normalize(query)
}

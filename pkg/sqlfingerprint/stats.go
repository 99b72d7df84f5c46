// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sqlfingerprint

import (
	"time"

	"go.uber.org/atomic"
)

// StatsClient implementations are able to emit stats.
type StatsClient interface {
	// Gauge reports a gauge stat with the given name, value, tags and rate.
	Gauge(name string, value float64, tags []string, rate float64) error
}

const statsInterval = 10 * time.Second

// Stats counts the queries handled by an Engine.
type Stats struct {
	Queries     int64  `json:"queries" yaml:"queries"`
	Errors      int64  `json:"errors" yaml:"errors"`
	Fallbacks   int64  `json:"fallbacks" yaml:"fallbacks"`
	CacheHits   uint64 `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses" yaml:"cache_misses"`
}

type counters struct {
	queries   *atomic.Int64
	errors    *atomic.Int64
	fallbacks *atomic.Int64
}

func newCounters() counters {
	return counters{
		queries:   atomic.NewInt64(0),
		errors:    atomic.NewInt64(0),
		fallbacks: atomic.NewInt64(0),
	}
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	hits, misses := e.cache.hitsMisses()
	return Stats{
		Queries:     e.counters.queries.Load(),
		Errors:      e.counters.errors.Load(),
		Fallbacks:   e.counters.fallbacks.Load(),
		CacheHits:   hits,
		CacheMisses: misses,
	}
}

func (e *Engine) reportStats() {
	s := e.Stats()
	e.statsd.Gauge("sqlfingerprint.queries", float64(s.Queries), nil, 1)
	e.statsd.Gauge("sqlfingerprint.errors", float64(s.Errors), nil, 1)
	e.statsd.Gauge("sqlfingerprint.fallbacks", float64(s.Fallbacks), nil, 1)
	e.statsd.Gauge("sqlfingerprint.cache.hits", float64(s.CacheHits), nil, 1)
	e.statsd.Gauge("sqlfingerprint.cache.misses", float64(s.CacheMisses), nil, 1)
}

// statsLoop reports stats every statsInterval until the engine stops.
func (e *Engine) statsLoop() {
	defer close(e.done)
	tick := e.clock.Ticker(statsInterval)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			e.reportStats()
		case <-e.exit:
			e.reportStats()
			return
		}
	}
}

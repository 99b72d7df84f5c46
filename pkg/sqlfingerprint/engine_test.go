// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sqlfingerprint

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
)

func TestFingerprint(t *testing.T) {
	assert := assert.New(t)
	one, err := Fingerprint("SELECT 1")
	require.NoError(t, err)
	two, err := Fingerprint("SELECT 2")
	require.NoError(t, err)
	col, err := Fingerprint("SELECT a")
	require.NoError(t, err)

	assert.Equal(one.Hex, two.Hex)
	assert.NotEqual(one.Hex, col.Hex)
	assert.Len(one.Hex, 16)
	assert.Equal(fmt.Sprintf("%016x", one.Fingerprint), one.Hex)
	assert.Nil(one.Tokens)
}

func TestNormalize(t *testing.T) {
	res, err := Normalize("SELECT a+1 AS x FROM t WHERE b = 'c' GROUP BY a+1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a+$1 AS x FROM t WHERE b = $2 GROUP BY a+$1", res.Query)
	assert.False(t, res.Fallback)
	assert.Nil(t, res.Metadata)
}

func TestEngineTokens(t *testing.T) {
	e := NewEngine(Config{Tokens: true})
	defer e.Stop()
	res, err := e.Fingerprint("SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"SelectStmt", "targetList", "ResTarget", "limitOption", "LIMIT_OPTION_DEFAULT", "op", "SETOP_NONE"}, res.Tokens)
}

func TestEngineParseError(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(Config{})
	defer e.Stop()

	_, err := e.Fingerprint("SELECT 1 FROM")
	require.Error(t, err)
	qe, ok := errors.AsQueryError(err)
	require.True(t, ok)
	assert.Equal("syntax error at end of input", qe.Message)
	assert.Equal(14, qe.Cursorpos)
	assert.NotEmpty(qe.Funcname)

	_, err = e.Normalize("SELECT 1 FROM")
	require.Error(t, err)

	stats := e.Stats()
	assert.EqualValues(2, stats.Queries)
	assert.EqualValues(2, stats.Errors)
	assert.EqualValues(0, stats.Fallbacks)
}

func TestEngineCache(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(Config{Cache: true})
	defer e.Stop()

	first, err := e.Fingerprint("SELECT * FROM t WHERE a = 1")
	require.NoError(t, err)
	norm, err := e.Normalize("SELECT * FROM t WHERE a = 1")
	require.NoError(t, err)
	e.cache.Wait()

	second, err := e.Fingerprint("SELECT * FROM t WHERE a = 1")
	require.NoError(t, err)
	assert.Same(first, second)

	again, err := e.Normalize("SELECT * FROM t WHERE a = 1")
	require.NoError(t, err)
	assert.Same(norm, again)
	assert.Equal("SELECT * FROM t WHERE a = $1", again.Query)

	stats := e.Stats()
	assert.EqualValues(4, stats.Queries)
	assert.EqualValues(2, stats.CacheHits)
}

func TestEngineCacheDisabled(t *testing.T) {
	e := NewEngine(Config{})
	defer e.Stop()
	first, err := e.Fingerprint("SELECT 1")
	require.NoError(t, err)
	second, err := e.Fingerprint("SELECT 1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
	assert.Zero(t, e.Stats().CacheHits)
}

func TestEngineFallback(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(Config{Fallback: FallbackConfig{
		Enabled:         true,
		CollectTables:   true,
		CollectCommands: true,
	}})
	defer e.Stop()

	res, err := e.Normalize("SELECT * INTO archive FROM users WHERE id = 1")
	require.NoError(t, err)
	assert.True(res.Fallback)
	assert.Contains(res.Query, "?")
	assert.NotContains(res.Query, "= 1")
	require.NotNil(t, res.Metadata)
	assert.Contains(res.Metadata.Tables, "users")
	assert.Contains(res.Metadata.Commands, "SELECT")
	assert.EqualValues(1, e.Stats().Fallbacks)

	// parsable queries do not use the fallback
	res, err = e.Normalize("SELECT * FROM users WHERE id = 1")
	require.NoError(t, err)
	assert.False(res.Fallback)
	assert.Equal("SELECT * FROM users WHERE id = $1", res.Query)

	// fingerprints never fall back
	_, err = e.Fingerprint("SELECT * INTO archive FROM users WHERE id = 1")
	assert.Error(err)
}

type recordingStats struct {
	mu     sync.Mutex
	gauges map[string]float64
}

func (r *recordingStats) Gauge(name string, value float64, _ []string, _ float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gauges == nil {
		r.gauges = make(map[string]float64)
	}
	r.gauges[name] = value
	return nil
}

func (r *recordingStats) get(name string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.gauges[name]
	return v, ok
}

func TestEngineStatsReportedPeriodically(t *testing.T) {
	stats := &recordingStats{}
	mock := clock.NewMock()
	e := newEngine(Config{Statsd: stats}, mock)
	defer e.Stop()

	_, err := e.Fingerprint("SELECT 1")
	require.NoError(t, err)
	_, ok := stats.get("sqlfingerprint.queries")
	assert.False(t, ok)

	assert.Eventually(t, func() bool {
		mock.Add(statsInterval)
		v, _ := stats.get("sqlfingerprint.queries")
		return v == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCacheOptionsString(t *testing.T) {
	assert.Equal(t, "off", cacheOptions{MaxCost: 1024}.String())
	assert.Equal(t, "up to 5.0 MB", cacheOptions{On: true}.String())
	assert.Equal(t, "up to 1.0 kB", cacheOptions{On: true, MaxCost: 1024}.String())
}

func TestEngineStatsReportedOnStop(t *testing.T) {
	stats := &recordingStats{}
	e := NewEngine(Config{Statsd: stats})
	_, err := e.Normalize("SELECT 1")
	require.NoError(t, err)
	_, err = e.Normalize("SELEC 1")
	require.Error(t, err)
	e.Stop()

	stats.mu.Lock()
	defer stats.mu.Unlock()
	assert.Equal(t, 2.0, stats.gauges["sqlfingerprint.queries"])
	assert.Equal(t, 1.0, stats.gauges["sqlfingerprint.errors"])
	assert.Contains(t, stats.gauges, "sqlfingerprint.cache.hits")
}

func TestEngineConcurrentUse(t *testing.T) {
	e := NewEngine(Config{Cache: true})
	defer e.Stop()

	want, err := Fingerprint("SELECT a, b FROM t WHERE c IN (1, 2)")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := e.Fingerprint(fmt.Sprintf("SELECT b, a FROM t WHERE c IN (%d, %d)", i, i+1))
			if assert.NoError(t, err) {
				assert.Equal(t, want.Hex, res.Hex)
			}
		}(i)
	}
	wg.Wait()
}

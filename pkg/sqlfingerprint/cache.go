// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package sqlfingerprint

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/outcaste-io/ristretto"
)

// measuredCache is a wrapper on top of *ristretto.Cache keyed by operation and
// query text. A nil *ristretto.Cache is a no-op cache.
type measuredCache struct {
	*ristretto.Cache
}

type cacheOptions struct {
	On      bool
	MaxCost int64
}

// defaultCacheMaxCost allows for a minimum of 1000 queries of 5K.
const defaultCacheMaxCost = 5000000

func (o cacheOptions) maxCost() int64 {
	if o.MaxCost <= 0 {
		return defaultCacheMaxCost
	}
	return o.MaxCost
}

func (o cacheOptions) String() string {
	if !o.On {
		return "off"
	}
	return "up to " + humanize.Bytes(uint64(o.maxCost()))
}

// newMeasuredCache returns a new measuredCache.
func newMeasuredCache(opts cacheOptions) *measuredCache {
	if !opts.On {
		return &measuredCache{}
	}
	cfg := &ristretto.Config{
		MaxCost: opts.maxCost(),
		// Filled with small queries of about 10 bytes the cache holds
		// MaxCost/10 entries; counters are 10x that as the documentation
		// recommends.
		NumCounters: opts.maxCost(),
		BufferItems: 64,   // default recommended value
		Metrics:     true, // needed for hit/miss ratio
	}
	cache, err := ristretto.NewCache(cfg)
	if err != nil {
		panic(fmt.Errorf("Error starting query cache: %v", err))
	}
	return &measuredCache{Cache: cache}
}

// hitsMisses returns the cache hit and miss counts, zero when the cache is off.
func (c *measuredCache) hitsMisses() (hits, misses uint64) {
	if c.Cache == nil || c.Cache.Metrics == nil {
		return 0, 0
	}
	return c.Cache.Metrics.Hits(), c.Cache.Metrics.Misses()
}

// Close gracefully closes the cache when active.
func (c *measuredCache) Close() {
	if c.Cache == nil {
		return
	}
	c.Cache.Close()
}

type operation string

const (
	opFingerprint operation = "f:"
	opNormalize   operation = "n:"
)

func cacheKey(op operation, query string) string {
	return string(op) + query
}

package providers

import (
	"mcstatus/internal/models"
	"mcstatus/internal/structures"
	"strconv"
)

// StatusCacheKey names a rendered /status response. The identity lowercases
// the address, so case variants share an entry; the identicon flag changes
// the favicon in the body and is part of the key.
func StatusCacheKey(identity models.Identity, alwaysUseIdenticon bool) string {
	return "status:" + identity.String() + ":" + strconv.FormatBool(alwaysUseIdenticon)
}

// MetricsCacheProvider counts hits and misses of the /status response cache.
// A hit is a request answered without a live ping.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider builds the /status cache (cache.size MB,
// entries live for cache.ttl) with hit/miss counters. A disabled cache is
// returned unwrapped so every request does not count as a phantom miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}

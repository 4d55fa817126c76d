package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"key1": []byte("val1")}}
	metrics := &testMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &testMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &testMetrics{}}

	cache.Set("key2", []byte("val2"))

	val, ok := inner.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)
}

func TestNewInstrumentedCacheProvider_DisabledIsNotWrapped(t *testing.T) {
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Minute), &testLogger{}, &testMetrics{})
	assert.IsType(t, &noopCache{}, c)
}

func TestNewInstrumentedCacheProvider_ZeroSizeIsNotWrapped(t *testing.T) {
	c := NewInstrumentedCacheProvider(cacheConfig(true, 0, time.Minute), &testLogger{}, &testMetrics{})
	assert.IsType(t, &noopCache{}, c)
}

func TestNewInstrumentedCacheProvider_EnabledCountsHits(t *testing.T) {
	metrics := &testMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &testLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, c)

	c.Set("hyperstat:abc:2024-01-09", []byte("{}"))
	c.Get("hyperstat:abc:2024-01-09")
	c.Get("hyperstat:abc:2024-01-10")

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

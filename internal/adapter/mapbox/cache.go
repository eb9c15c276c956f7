package mapbox

import (
	"container/list"
	"context"
	"math"
	"sync"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
	"github.com/couchcryptid/waiola-dashboard/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by
// position rounded to six decimal places (about 0.1 m).
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache[coordKey, domain.GeocodingResult]
	metrics *observability.Metrics
}

type coordKey [2]int64

func keyFor(lat, lon float64) coordKey {
	return coordKey{int64(math.Round(lat * 1e6)), int64(math.Round(lon * 1e6))}
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache[coordKey, domain.GeocodingResult](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := keyFor(lat, lon)
	if result, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later load can retry them.
	if result.FormattedAddress != "" {
		c.cache.put(key, result)
	}
	return result, nil
}

// lruCache is a mutex-guarded LRU map. The list front is the most recently
// used entry.
type lruCache[K comparable, V any] struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	entries    map[K]*list.Element
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

func newLRUCache[K comparable, V any](maxEntries int) *lruCache[K, V] {
	return &lruCache[K, V]{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[K]*list.Element),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry[K, V]).key)
	}
}

func (c *lruCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

package xgboost

import (
	"container/list"
	"encoding/binary"
	"math"
	"sync"
)

// DefaultCacheCapacity bounds the traversal cache when no explicit capacity
// is configured. Interactive what-if sessions revisit far fewer distinct
// (tree, vector) pairs than this.
const DefaultCacheCapacity = 1024

// CacheStats reports traversal cache counters since construction or the last
// ClearCache call.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// traversalKey identifies one memoized tree traversal.
type traversalKey struct {
	tree int
	sig  string
}

// vectorSignature packs the exact float64 bits of a feature vector into a
// string key. Vectors differing in any bit get distinct keys; a spurious miss
// on numerically equal vectors (0 vs -0) only costs a recomputation.
func vectorSignature(features []float64) string {
	buf := make([]byte, 8*len(features))
	for i, v := range features {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return string(buf)
}

// traversalCache is a mutex-protected LRU over per-tree leaf weights.
// Traversal is deterministic, so the cache can only change latency, never
// observable output. The bound keeps long sessions from growing without
// limit; entries fall off the cold end in recency order.
type traversalCache struct {
	mu       sync.Mutex
	capacity int
	items    map[traversalKey]*list.Element
	order    *list.List // front = most recent
	hits     uint64
	misses   uint64
}

type cacheEntry struct {
	key    traversalKey
	weight float64
}

func newTraversalCache(capacity int) *traversalCache {
	return &traversalCache{
		capacity: capacity,
		items:    make(map[traversalKey]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *traversalCache) get(key traversalKey) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.hits++
		return elem.Value.(*cacheEntry).weight, true
	}
	c.misses++
	return 0, false
}

func (c *traversalCache) put(key traversalKey, weight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).weight = weight
		return
	}
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, weight: weight})
}

// clear drops all entries and resets the hit/miss counters.
func (c *traversalCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[traversalKey]*list.Element, c.capacity)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

func (c *traversalCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: c.order.Len()}
}

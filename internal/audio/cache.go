package audio

import (
	"container/list"
	"sync"
)

// DefaultCacheBytes is the default capacity of the pronunciation cache.
const DefaultCacheBytes = 50 * 1024 * 1024

// Cache is a byte-bounded LRU cache for synthesized audio clips. When an
// insert would exceed the capacity, least recently used entries are
// evicted until the new clip fits.
type Cache struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	order    *list.List
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key  string
	data []byte
}

// NewCache creates a cache bounded to capacityBytes. Non-positive
// capacities fall back to the default.
func NewCache(capacityBytes int64) *Cache {
	if capacityBytes <= 0 {
		capacityBytes = DefaultCacheBytes
	}
	return &Cache{
		capacity: capacityBytes,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached clip for key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).data, true
}

// Put stores a clip under key, evicting old entries as needed. Clips
// larger than the whole capacity are silently dropped.
func (c *Cache) Put(key string, data []byte) {
	if int64(len(data)) > c.capacity {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		c.size += int64(len(data)) - int64(len(entry.data))
		entry.data = data
		c.order.MoveToFront(elem)
	} else {
		c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
		c.size += int64(len(data))
	}

	for c.size > c.capacity {
		c.evictOldest()
	}
}

func (c *Cache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.order.Remove(elem)
	delete(c.entries, entry.key)
	c.size -= int64(len(entry.data))
}

// Len returns the number of cached clips.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Size returns the total cached bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Capacity returns the configured byte bound.
func (c *Cache) Capacity() int64 {
	return c.capacity
}

// Shrink evicts least recently used clips until total size fits inside
// maxBytes, returning the number of evictions.
func (c *Cache) Shrink(maxBytes int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for c.size > maxBytes && c.order.Len() > 0 {
		c.evictOldest()
		evicted++
	}
	return evicted
}

// Clear drops every cached clip.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
	c.size = 0
}

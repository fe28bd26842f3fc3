package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutAndGet(t *testing.T) {
	c := NewCache(1024)

	c.Put("a", []byte("clip-a"))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.True(t, bytes.Equal([]byte("clip-a"), got))

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(30)

	c.Put("a", make([]byte, 10))
	c.Put("b", make([]byte, 10))
	c.Put("c", make([]byte, 10))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("d", make([]byte, 10))

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	_, ok = c.Get("d")
	assert.True(t, ok)
}

func TestCacheSizeTracksReplacement(t *testing.T) {
	c := NewCache(100)

	c.Put("a", make([]byte, 40))
	assert.Equal(t, int64(40), c.Size())

	c.Put("a", make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestCacheRejectsOversizedClip(t *testing.T) {
	c := NewCache(10)

	c.Put("huge", make([]byte, 11))

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
}

func TestCacheShrink(t *testing.T) {
	c := NewCache(100)
	c.Put("a", make([]byte, 30))
	c.Put("b", make([]byte, 30))
	c.Put("c", make([]byte, 30))

	evicted := c.Shrink(40)

	assert.Equal(t, 2, evicted)
	assert.LessOrEqual(t, c.Size(), int64(40))
	_, ok := c.Get("c")
	assert.True(t, ok, "most recently used entry survives shrink")
}

func TestCacheClear(t *testing.T) {
	c := NewCache(100)
	c.Put("a", make([]byte, 10))
	c.Put("b", make([]byte, 10))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

package server

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

func sizedItem(size int) *cacheItem {
	return newCacheItem(bytes.Repeat([]byte{'x'}, size), testNow)
}

func TestDocCache_EntryLimit(t *testing.T) {
	c := newDocCache(2, 1<<20)

	c.add("a", sizedItem(10))
	c.add("b", sizedItem(10))
	_, ok := c.get("a") // a becomes the most recent entry
	require.True(t, ok)
	c.add("c", sizedItem(10))

	assert.Equal(t, 2, c.len())
	_, ok = c.get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(20), c.bytes())
}

func TestDocCache_ByteBudget(t *testing.T) {
	c := newDocCache(10, 100)

	c.add("a", sizedItem(40))
	c.add("b", sizedItem(40))
	c.add("c", sizedItem(40))

	assert.Equal(t, 2, c.len())
	assert.Equal(t, int64(80), c.bytes())
	_, ok := c.get("a")
	assert.False(t, ok)
}

func TestDocCache_OversizedNotKept(t *testing.T) {
	c := newDocCache(10, 100)

	big := sizedItem(101)
	assert.Same(t, big, c.add("big", big))
	assert.Equal(t, 0, c.len())
	assert.Equal(t, int64(0), c.bytes())
}

func TestDocCache_FirstWriterWins(t *testing.T) {
	c := newDocCache(10, 100)

	first := sizedItem(10)
	assert.Same(t, first, c.add("k", first))
	assert.Same(t, first, c.add("k", sizedItem(10)))
	assert.Equal(t, int64(10), c.bytes())
}

func TestDocCache_Defaults(t *testing.T) {
	c := newDocCache(0, 0)
	assert.Positive(t, c.maxBytes)

	c.add("a", sizedItem(1))
	assert.Equal(t, 1, c.len())
}

// TestDocuments_CacheIsBounded serves more documents than the cache holds.
func TestDocuments_CacheIsBounded(t *testing.T) {
	repo, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	settings := testSettings()
	settings.DocCacheEntries = 2
	s := New(repo, settings, WithClock(engine.FixedClock(testNow)))
	c := createReference(t, s)

	for _, path := range []string{
		"/calendar/" + c.ID + ".pdf",
		"/calendar/" + c.ID + ".ics",
		"/calendar/" + c.ID + "/pages/1.png",
	} {
		resp := do(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NotEmpty(t, body)
	}

	assert.Equal(t, 2, s.docs.len())
	_, ok := s.docs.get(c.ID + "|pdf|0")
	assert.False(t, ok, "the oldest document was evicted")

	// An evicted document renders again with the same validator.
	first := do(t, s, http.MethodGet, "/calendar/"+c.ID+".pdf", "")
	again := do(t, s, http.MethodGet, "/calendar/"+c.ID+".pdf", "")
	assert.Equal(t, first.Header.Get(config.HeaderETag), again.Header.Get(config.HeaderETag))
}

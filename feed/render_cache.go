package feed

import (
	"context"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// RenderCache stores rendered output per feed key and page number, without expiry.
//
// Every key has a generation that Invalidate bumps. Get reports the generation it saw and Put
// only stores content rendered under the current generation, so output built from a feed read
// that raced with an invalidation is dropped.
type RenderCache interface {
	// Get returns the key's current generation also on a miss
	Get(ctx context.Context, key Key, page int) (content []byte, generation uint64, ok bool, err error)
	// Put reports false when the key was invalidated after generation was read
	Put(ctx context.Context, key Key, page int, generation uint64, content []byte) (bool, error)
	// Invalidate drops every page of the key
	Invalidate(ctx context.Context, key Key) error
}

type renderEntry struct {
	generation uint64
	pages      map[int][]byte
}

// MemoryRenderCache lives as long as the process. Page maps are replaced on write, never changed in place
type MemoryRenderCache struct {
	entries cmap.ConcurrentMap[string, renderEntry]
}

func NewMemoryRenderCache() *MemoryRenderCache {
	return &MemoryRenderCache{
		entries: cmap.New[renderEntry](),
	}
}

func (c *MemoryRenderCache) Get(_ context.Context, key Key, page int) ([]byte, uint64, bool, error) {
	entry, ok := c.entries.Get(string(key))
	if !ok {
		return nil, 0, false, nil
	}
	content, ok := entry.pages[page]
	if !ok {
		return nil, entry.generation, false, nil
	}
	return append([]byte(nil), content...), entry.generation, true, nil
}

func (c *MemoryRenderCache) Put(_ context.Context, key Key, page int, generation uint64, content []byte) (bool, error) {
	stored := false
	rendered := append([]byte(nil), content...)
	// the callback runs under the shard lock
	c.entries.Upsert(string(key), renderEntry{}, func(_ bool, old renderEntry, _ renderEntry) renderEntry {
		if old.generation != generation {
			return old
		}
		pages := make(map[int][]byte, len(old.pages)+1)
		for n, p := range old.pages {
			pages[n] = p
		}
		pages[page] = rendered
		stored = true
		return renderEntry{generation: generation, pages: pages}
	})
	return stored, nil
}

func (c *MemoryRenderCache) Invalidate(_ context.Context, key Key) error {
	c.entries.Upsert(string(key), renderEntry{}, func(_ bool, old renderEntry, _ renderEntry) renderEntry {
		return renderEntry{generation: old.generation + 1}
	})
	return nil
}

// Len returns the number of cached pages of the key
func (c *MemoryRenderCache) Len(key Key) int {
	entry, _ := c.entries.Get(string(key))
	return len(entry.pages)
}

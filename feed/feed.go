// Package feed serves fixed-size pages of the post feeds and caches their rendered output.
//
// There are three kinds of feeds: the global feed, one feed per group and one per author.
// Every feed is ordered newest first. Rendered output is cached per feed key until the key
// is invalidated explicitly; there is no expiry.
package feed

import (
	"context"
	"errors"
	"fmt"
	"yatube/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// Cache combines a post source with a render cache
type Cache struct {
	source   Source
	renders  RenderCache
	pageSize int
}

func New(source Source, renders RenderCache, pageSize int) *Cache {
	if renders == nil {
		renders = NewMemoryRenderCache()
	}
	return &Cache{
		source:   source,
		renders:  renders,
		pageSize: pageSize,
	}
}

func (c *Cache) PageSize() int {
	return c.pageSize
}

// GetPage returns up to pageSize posts of the feed, skipping (pageNumber-1)*pageSize
func (c *Cache) GetPage(ctx context.Context, key Key, pageNumber, pageSize int) ([]models.Post, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page %d of size %d", ErrInvalidArgument, pageNumber, pageSize)
	}
	posts, err := c.source.Posts(ctx, key)
	if err != nil {
		return nil, err
	}
	return Slice(posts, pageNumber, pageSize)
}

// Paginate returns the page at the configured page size, with the totals needed by a paginator
func (c *Cache) Paginate(ctx context.Context, key Key, pageNumber int) (*Page, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number %d", ErrInvalidArgument, pageNumber)
	}
	posts, err := c.source.Posts(ctx, key)
	if err != nil {
		return nil, err
	}
	slice, err := Slice(posts, pageNumber, c.pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		Posts:      slice,
		Number:     pageNumber,
		Size:       c.pageSize,
		Count:      len(posts),
		TotalPages: TotalPages(len(posts), c.pageSize),
	}, nil
}

// Invalidate drops the cached output of every page of the key
func (c *Cache) Invalidate(ctx context.Context, key Key) error {
	if err := c.renders.Invalidate(ctx, key); err != nil {
		zap.L().Error("Render cache invalidation failed", zap.String("key", string(key)), zap.Error(err))
		return err
	}
	zap.L().Debug("Render cache invalidated", zap.String("key", string(key)))
	return nil
}

// GetCachedRender returns the cached output of the feed's first page
func (c *Cache) GetCachedRender(ctx context.Context, key Key) ([]byte, bool) {
	content, _, ok := c.GetCachedPage(ctx, key, 1)
	return content, ok
}

// PutCachedRender stores the first page under the key's current generation
func (c *Cache) PutCachedRender(ctx context.Context, key Key, content []byte) {
	_, generation, _ := c.GetCachedPage(ctx, key, 1)
	c.PutCachedPage(ctx, key, 1, generation, content)
}

// GetCachedPage reports a miss when the backend fails. The generation it returns goes to
// PutCachedPage together with the output rendered after this call
func (c *Cache) GetCachedPage(ctx context.Context, key Key, page int) ([]byte, uint64, bool) {
	content, generation, ok, err := c.renders.Get(ctx, key, page)
	if err != nil {
		zap.L().Warn("Render cache read failed", zap.String("key", string(key)), zap.Int("page", page), zap.Error(err))
		return nil, 0, false
	}
	return content, generation, ok
}

// PutCachedPage drops the content when the key was invalidated since generation was read
func (c *Cache) PutCachedPage(ctx context.Context, key Key, page int, generation uint64, content []byte) bool {
	stored, err := c.renders.Put(ctx, key, page, generation, content)
	if err != nil {
		zap.L().Warn("Render cache write failed", zap.String("key", string(key)), zap.Int("page", page), zap.Error(err))
		return false
	}
	if !stored {
		zap.L().Debug("Render dropped, key invalidated meanwhile", zap.String("key", string(key)), zap.Int("page", page))
	}
	return stored
}

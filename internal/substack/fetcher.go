package substack

import (
	"context"

	"go.uber.org/zap"

	"stackread/internal/cache"
)

// Fetcher serves posts from the cache when fresh and hits the API
// otherwise. A cache write happens only after a complete successful
// parse, so a cancelled or failed fetch never leaves a partial entry
// behind. Concurrent misses for the same key race benignly: both fetch,
// the last full overwrite wins.
type Fetcher struct {
	client *Client
	cache  *cache.Cache
	log    *zap.Logger
}

func NewFetcher(client *Client, c *cache.Cache, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, cache: c, log: log}
}

// ListPosts returns the archive list, newest first. Cached lists were
// ordered before they were written, so a hit is returned as-is.
func (f *Fetcher) ListPosts(ctx context.Context) ([]Post, error) {
	posts, ok, err := cache.Read[[]Post](f.cache, cache.ListKey)
	if err != nil {
		return nil, err
	}
	if ok {
		f.log.Debug("post list cache hit", zap.Int("count", len(posts)))
		return posts, nil
	}

	posts, err = f.client.FetchPosts(ctx)
	if err != nil {
		return nil, err
	}
	sortPosts(posts)
	if err := cache.Write(f.cache, cache.ListKey, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one post with its body, by slug.
func (f *Fetcher) GetPost(ctx context.Context, slug string) (Post, error) {
	key := cache.ItemKey(slug)

	post, ok, err := cache.Read[Post](f.cache, key)
	if err != nil {
		return Post{}, err
	}
	if ok {
		f.log.Debug("post cache hit", zap.String("slug", slug))
		return post, nil
	}

	post, err = f.client.FetchPost(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	if err := cache.Write(f.cache, key, post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// InvalidateAll drops every cached entry. Used before a forced
// refetch.
func (f *Fetcher) InvalidateAll() error {
	return f.cache.Clear()
}

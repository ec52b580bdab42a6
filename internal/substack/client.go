// Package substack talks to the publication's archive API and layers
// the local cache over it.
package substack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// The archive endpoint rejects unadorned clients, so requests carry a
// plain desktop browser identity and ask for JSON explicitly.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches posts from the archive API. A failed request
// propagates immediately: RetryMax is zero, the caller decides whether
// to retry.
type Client struct {
	http *http.Client
	base string
	log  *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	r := retryablehttp.NewClient()
	r.RetryMax = 0
	r.Logger = nil
	// Hand back the response as-is when the attempt budget is spent;
	// the default handler would swallow 5xx and 429 responses into a
	// transport error before get() can classify the status.
	r.ErrorHandler = retryablehttp.PassthroughErrorHandler
	r.HTTPClient.Timeout = 10 * time.Second
	return &Client{
		http: r.StandardClient(),
		base: BaseURL,
		log:  log,
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// FetchPosts retrieves the full archive list, unordered as the API
// returns it.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	body, err := c.get(ctx, c.base+"/api/v1/posts")
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, &ParseError{Err: err}
	}
	c.log.Debug("fetched post list", zap.Int("count", len(posts)))
	return posts, nil
}

// FetchPost retrieves one post by slug, body included.
func (c *Client) FetchPost(ctx context.Context, slug string) (Post, error) {
	body, err := c.get(ctx, c.base+"/api/v1/posts/"+slug)
	if err != nil {
		return Post{}, err
	}
	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return Post{}, &ParseError{Err: err}
	}
	c.log.Debug("fetched post", zap.String("slug", slug))
	return post, nil
}

package substack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(nil)
	c.base = srv.URL
	return c
}

const listBody = `[
	{"id": 1, "slug": "first-post", "title": "First", "post_date": "2024-01-01T00:00:00Z", "audience": "everyone", "wordcount": 1200, "reading_time": 5},
	{"id": 2, "slug": "second-post", "title": "Second", "post_date": "2024-03-01T00:00:00Z", "audience": "only_paid", "likes": 42}
]`

func TestFetchPosts(t *testing.T) {
	var gotUA, gotAccept string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path != "/api/v1/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(listBody))
	}))

	posts, err := c.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "first-post" || posts[0].WordCount != 1200 {
		t.Errorf("first post decoded wrong: %+v", posts[0])
	}
	if posts[1].Likes != 42 || posts[1].Audience != AudienceOnlyPaid {
		t.Errorf("second post decoded wrong: %+v", posts[1])
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want the browser string", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestFetchPost(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/posts/first-post" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id": 1, "slug": "first-post", "title": "First", "body_html": "<p>hi</p>", "post_date": "2024-01-01T00:00:00Z"}`))
	}))

	post, err := c.FetchPost(context.Background(), "first-post")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if post.BodyHTML != "<p>hi</p>" {
		t.Errorf("body = %q", post.BodyHTML)
	}
}

func TestFetchStatusError(t *testing.T) {
	// Includes the statuses the retry policy considers transient:
	// they must still surface as a *StatusError, not a transport error.
	codes := []int{
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
	}
	for _, code := range codes {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", code)
		}))

		_, err := c.FetchPost(context.Background(), "x")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: expected *StatusError, got %v", code, err)
		}
		if statusErr.Code != code {
			t.Errorf("code = %d, want %d", statusErr.Code, code)
		}
	}
}

func TestFetchParseError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))

	_, err := c.FetchPosts(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestPostURL(t *testing.T) {
	p := Post{Slug: "my-post"}
	want := BaseURL + "/p/my-post"
	if got := p.PostURL(); got != want {
		t.Errorf("PostURL() = %q, want %q", got, want)
	}
}

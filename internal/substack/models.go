package substack

import "time"

// BaseURL is the publication this reader is built for. It is a fixed
// constant, not configuration.
const BaseURL = "https://newsletter.pragmaticengineer.com"

// Audience values as the archive API reports them.
const (
	AudienceEveryone = "everyone"
	AudienceOnlyPaid = "only_paid"
	AudienceFounding = "founding"
)

// Post is one published entry as returned by the archive API. Posts
// are addressed by slug everywhere; the numeric ID is display-only.
// A Post is never mutated after decoding.
type Post struct {
	ID           int       `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	PostDate     time.Time `json:"post_date"`
	CanonicalURL string    `json:"canonical_url"`
	CoverImage   string    `json:"cover_image"`
	Description  string    `json:"description"`
	BodyHTML     string    `json:"body_html"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"comment_count"`
	Restacks     int       `json:"restacks"`
	Audience     string    `json:"audience"`
	WordCount    int       `json:"wordcount"`
	ReadingTime  int       `json:"reading_time"`
}

// PostURL is the public page for the post, for opening in a browser.
// It is never fetched by this package.
func (p Post) PostURL() string {
	return BaseURL + "/p/" + p.Slug
}

// Free reports whether the full body is readable without a
// subscription.
func (p Post) Free() bool {
	return p.Audience == AudienceEveryone
}

// SubscribeURL is the publication's subscribe page.
func SubscribeURL() string {
	return BaseURL + "/subscribe"
}

// FeedURL is the publication's RSS feed, used only by the new-post
// probe.
func FeedURL() string {
	return BaseURL + "/feed"
}

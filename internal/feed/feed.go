// Package feed probes the publication's RSS feed for the newest
// publish time. It is a cheap way to notice a new post without
// touching the API or the cache.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

type Probe struct {
	parser *gofeed.Parser
	url    string
}

func NewProbe(url string) *Probe {
	return &Probe{parser: gofeed.NewParser(), url: url}
}

// Latest returns the publish time of the newest feed item.
func (p *Probe) Latest(ctx context.Context) (time.Time, error) {
	feed, err := p.parser.ParseURLWithContext(p.url, ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetching feed: %w", err)
	}

	var latest time.Time
	for _, item := range feed.Items {
		var pub time.Time
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		} else {
			continue
		}
		if pub.After(latest) {
			latest = pub
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("feed has no dated items")
	}
	return latest, nil
}

package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Substack embeds its own chrome inside post bodies. None of it
// belongs in a rendered document.
var chromeSelectors = []string{
	".subscription-widget-wrap",
	".subscribe-widget",
	".button-wrapper",
	".poll-embed",
	"script",
	"style",
}

// parseBody parses an HTML fragment, strips publication chrome and
// returns the body node to walk. The error is nil for anything the
// parser can recover a tree from.
func parseBody(fragment string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	doc.Find(strings.Join(chromeSelectors, ", ")).Remove()

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return nil, nil
	}
	return body.Nodes[0], nil
}

// Package render assembles the terminal-facing document and metadata
// summary for one post. It is the last step before display.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stackread/internal/markdown"
	"stackread/internal/substack"
)

var groupedDigits = message.NewPrinter(language.English)

// Document builds the Markdown document for a post: H1 title, the
// italic subtitle and a rule when a subtitle exists, then the
// converted body. No placeholder block when the subtitle is absent.
func Document(post substack.Post) string {
	var b strings.Builder
	b.WriteString("# " + post.Title + "\n\n")
	if post.Subtitle != "" {
		b.WriteString("*" + post.Subtitle + "*\n\n---\n\n")
	}
	b.WriteString(markdown.Convert(post.BodyHTML))
	return b.String()
}

// Field is one summary line, in display order.
type Field struct {
	Label string
	Value string
}

// Summary builds the metadata fields for a post. Paid and founding
// tiers both display as "Paid"; the two-valued label is intentional.
func Summary(post substack.Post) []Field {
	access := "Paid"
	if post.Free() {
		access = "Free"
	}
	return []Field{
		{"Published", post.PostDate.Format("January 2, 2006")},
		{"Reading time", fmt.Sprintf("%d min", post.ReadingTime)},
		{"Words", groupedDigits.Sprintf("%d", post.WordCount)},
		{"Likes", fmt.Sprintf("%d", post.Likes)},
		{"Comments", fmt.Sprintf("%d", post.CommentCount)},
		{"Restacks", fmt.Sprintf("%d", post.Restacks)},
		{"Access", access},
		{"Link", post.CanonicalURL},
	}
}

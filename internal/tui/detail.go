package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stackread/internal/render"
	"stackread/internal/substack"
)

// renderDetail shows the selected post: the summary line, then the
// full document once it has been fetched, the description until then.
func renderDetail(post *substack.Post, doc string, summary []render.Field, width, height, scroll int) string {
	if post == nil {
		return center("Select a post", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(post.Title)
	meta := detailMetaStyle.Render(renderSummaryLine(summary, post))

	body := doc
	if body == "" {
		body = post.Description
		if body == "" {
			body = "(Press enter to load this post)"
		}
	}
	bodyView := detailBodyStyle.Width(contentWidth).Render(wrapText(body, contentWidth))
	link := detailLinkStyle.Width(contentWidth).Render("Read online: " + post.PostURL())

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, "", bodyView, "", link)

	lines := strings.Split(content, "\n")
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll > 0 {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func renderSummaryLine(summary []render.Field, post *substack.Post) string {
	if len(summary) == 0 {
		access := "Paid"
		if post.Free() {
			access = "Free"
		}
		return fmt.Sprintf("%s · %s · %d min", post.PostDate.Format("Jan 2, 2006"), access, post.ReadingTime)
	}
	var parts []string
	for _, f := range summary {
		if f.Label == "Link" {
			continue
		}
		parts = append(parts, f.Label+" "+f.Value)
	}
	return strings.Join(parts, " · ")
}

// wrapText wraps prose to width, leaving already-short lines (list
// items, code fences) alone.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, paragraph := range strings.Split(s, "\n") {
		if len(paragraph) <= width {
			out = append(out, paragraph)
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
			} else {
				line += " " + w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

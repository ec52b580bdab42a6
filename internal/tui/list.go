package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stackread/internal/substack"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(p substack.Post, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(p.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(p.Title, width-4))
	}

	badge := freeBadgeStyle.Render("free")
	if !p.Free() {
		badge = paidBadgeStyle.Render("paid")
	}
	meta := "  " + badge + " " + itemTimeStyle.Render("· "+relativeTime(p.PostDate))

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(posts []substack.Post, cursor int, height int, width int) string {
	if len(posts) == 0 {
		return center("No posts", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(posts) {
		end = len(posts)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(posts[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func center(s string, width, height int) string {
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", max(0, (width-lipgloss.Width(s))/2)) + s
}

// filterPosts keeps posts whose title contains the query,
// case-insensitively. An empty query keeps everything.
func filterPosts(posts []substack.Post, query string) []substack.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return posts
	}
	var out []substack.Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
		}
	}
	return out
}

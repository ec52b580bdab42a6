package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(postCount int, width int, filtering bool, loading bool, newPost bool) string {
	left := fmt.Sprintf(" %d posts", postCount)
	if loading {
		left += " (loading...)"
	}
	if newPost {
		accent := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		left += " · " + accent.Render("new post available — press r")
	}

	right := " / filter  o open  s subscribe  ? help  q quit "
	if filtering {
		right = " esc clear  enter apply "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

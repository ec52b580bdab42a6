package tui

import (
	"strings"
	"testing"
	"time"

	"stackread/internal/substack"
)

func TestRenderDetailScrollClamped(t *testing.T) {
	post := &substack.Post{
		Slug:     "a",
		Title:    "Unmistakable Title",
		PostDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Audience: substack.AudienceEveryone,
	}
	doc := strings.Repeat("line of body text\n", 20)

	top := renderDetail(post, doc, nil, 40, 10, 0)
	if !strings.Contains(top, "Unmistakable Title") {
		t.Fatal("unscrolled view does not show the title")
	}

	// Scrolling far past the end must pin to the last line, not snap
	// back to the top.
	over := renderDetail(post, doc, nil, 40, 10, 10000)
	if strings.Contains(over, "Unmistakable Title") {
		t.Error("overscrolled view snapped back to the top")
	}
	if over == top {
		t.Error("overscrolled view identical to unscrolled view")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9)
	want := "one two\nthree\nfour five"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}

	// Short lines pass through untouched.
	if got := wrapText("* item", 40); got != "* item" {
		t.Errorf("short line rewrapped: %q", got)
	}
}

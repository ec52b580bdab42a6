// Package tui is the terminal front end: a post list on the left, the
// rendered post on the right. All fetching goes through the cached
// fetcher; this layer never talks to the network directly.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stackread/internal/browser"
	"stackread/internal/feed"
	"stackread/internal/render"
	"stackread/internal/substack"
)

const submissionAddress = "stories@pragmaticengineer.com"

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeHelp
)

type App struct {
	fetcher *substack.Fetcher
	probe   *feed.Probe

	posts   []substack.Post
	visible []substack.Post
	cursor  int
	focus   focusPane
	mode    mode

	width  int
	height int

	filterInput textinput.Model
	spinner     spinner.Model

	docs      map[string]string
	summaries map[string][]render.Field

	loading      bool
	detailScroll int
	newPostAt    time.Time
	currentDate  string
	err          error
}

func NewApp(fetcher *substack.Fetcher, probe *feed.Probe) *App {
	ti := textinput.New()
	ti.Placeholder = "Filter posts..."
	ti.Prompt = filterPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		fetcher:     fetcher,
		probe:       probe,
		filterInput: ti,
		spinner:     sp,
		docs:        make(map[string]string),
		summaries:   make(map[string][]render.Field),
		currentDate: time.Now().Format("Jan 2"),
	}
}

func (a *App) Init() tea.Cmd {
	a.loading = true
	return tea.Batch(a.loadPostsCmd(false), a.probeCmd(), a.spinner.Tick)
}

func (a *App) loadPostsCmd(invalidate bool) tea.Cmd {
	f := a.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if invalidate {
			if err := f.InvalidateAll(); err != nil {
				return errMsg{err: err}
			}
		}
		posts, err := f.ListPosts(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return postsLoadedMsg{posts: posts}
	}
}

func (a *App) loadPostCmd(slug string) tea.Cmd {
	f := a.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		post, err := f.GetPost(ctx, slug)
		if err != nil {
			return errMsg{err: err}
		}
		return postLoadedMsg{
			slug:    slug,
			doc:     render.Document(post),
			summary: render.Summary(post),
		}
	}
}

func (a *App) probeCmd() tea.Cmd {
	p := a.probe
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		latest, err := p.Latest(ctx)
		if err != nil {
			return nil // the probe is advisory, failures stay silent
		}
		return newPostMsg{published: latest}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func composeMailCmd(subject string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Compose(submissionAddress, subject, ""); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case postsLoadedMsg:
		a.loading = false
		a.posts = msg.posts
		a.applyFilter()
		return a, nil

	case postLoadedMsg:
		a.docs[msg.slug] = msg.doc
		a.summaries[msg.slug] = msg.summary
		return a, nil

	case newPostMsg:
		a.newPostAt = msg.published
		return a, nil

	case errMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.detailScroll = 0
		} else if a.focus == focusDetail {
			a.detailScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.detailScroll = 0
		} else if a.focus == focusDetail && a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil
	case "enter":
		if p := a.selected(); p != nil {
			a.focus = focusDetail
			if _, ok := a.docs[p.Slug]; !ok {
				return a, a.loadPostCmd(p.Slug)
			}
		}
		return a, nil
	case "o":
		if p := a.selected(); p != nil {
			return a, openBrowserCmd(p.PostURL())
		}
		return a, nil
	case "s":
		return a, openBrowserCmd(substack.SubscribeURL())
	case "m":
		return a, composeMailCmd("Story idea")
	case "r":
		if !a.loading {
			a.loading = true
			a.newPostAt = time.Time{}
			return a, tea.Batch(a.loadPostsCmd(true), a.probeCmd(), a.spinner.Tick)
		}
		return a, nil
	case "/":
		a.mode = modeFilter
		a.filterInput.Focus()
		return a, textinput.Blink
	case "esc":
		if a.filterInput.Value() != "" {
			a.filterInput.SetValue("")
			a.applyFilter()
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.filterInput.SetValue("")
		a.filterInput.Blur()
		a.applyFilter()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.applyFilter()
	return a, cmd
}

func (a *App) applyFilter() {
	a.visible = filterPosts(a.posts, a.filterInput.Value())
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

func (a *App) selected() *substack.Post {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return &a.visible[a.cursor]
}

// hasNewPost reports whether the feed probe saw something newer than
// the cached list head.
func (a *App) hasNewPost() bool {
	if a.newPostAt.IsZero() || len(a.posts) == 0 {
		return false
	}
	return a.newPostAt.After(a.posts[0].PostDate)
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  stackread")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	detailWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("stackread · The Pragmatic Engineer")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter line
	filter := ""
	if a.mode == modeFilter || a.filterInput.Value() != "" {
		filter = a.filterInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.visible, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Detail pane
	selected := a.selected()
	var doc string
	var summary []render.Field
	if selected != nil {
		doc = a.docs[selected.Slug]
		summary = a.summaries[selected.Slug]
	}
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(selected, doc, summary, innerDetailW, contentHeight, a.detailScroll)

	var detailPane string
	if a.focus == focusDetail {
		detailPane = detailPaneActiveStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	} else {
		detailPane = detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	status := renderStatusBar(len(a.visible), a.width, a.mode == modeFilter, a.loading, a.hasNewPost())
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("stackread")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate posts / scroll detail\n" +
		"  tab           Switch focus between list and detail\n" +
		"  enter         Load the selected post\n\n" +
		dim.Render("Actions") + "\n" +
		"  o             Open post in browser\n" +
		"  s             Open subscribe page\n" +
		"  m             Compose a story submission\n" +
		"  r             Refresh (clears the cache)\n" +
		"  /             Filter posts by title\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(fetcher *substack.Fetcher, probe *feed.Probe) error {
	app := NewApp(fetcher, probe)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

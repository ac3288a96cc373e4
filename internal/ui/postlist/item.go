package postlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
	"github.com/nhle/postboard/internal/ui"
)

// ExcerptLen is how many characters of content the list shows per post.
const ExcerptLen = 100

// PostItem wraps a model.Post and its resolved author name so it can be
// used in a bubbles/list.
type PostItem struct {
	Post   model.Post
	Author string
}

// FilterValue returns the string used for fuzzy filtering.
func (i PostItem) FilterValue() string { return i.Post.Title }

// Title returns the post title for the list.
func (i PostItem) Title() string { return i.Post.Title }

// Description returns the byline for the list.
func (i PostItem) Description() string {
	return ui.Byline(i.Author, i.Post.Date)
}

// ItemDelegate renders a post as title, byline, excerpt and reactions.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 4 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single post entry.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(PostItem)
	if !ok {
		return
	}

	style := theme.ListItemStyle
	if index == m.Index() {
		style = theme.SelectedItemStyle
	}

	width := m.Width() - 4
	if width < 20 {
		width = 20
	}

	lines := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render(truncate(it.Post.Title, width)),
		theme.DimmedStyle.Render(it.Description()),
		truncate(it.Post.Excerpt(ExcerptLen), width),
		theme.DimmedStyle.Render(ui.ReactionSummary(it.Post.Reactions)),
	)

	fmt.Fprint(w, style.Render(lines))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

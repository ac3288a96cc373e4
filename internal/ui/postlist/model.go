package postlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
)

// SelectedPostMsg is sent when a user selects a post to read.
type SelectedPostMsg struct {
	PostID string
}

// Model is the post list view component.
type Model struct {
	list    list.Model
	spinner spinner.Model
	keys    *keys.KeyMap
	status  model.AsyncState
	width   int
	height  int
}

// New creates a new post list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = "Posts"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorYellow)

	return Model{
		list:    l,
		spinner: sp,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetPosts replaces the listed posts. author resolves a user ID to the
// name shown in the byline.
func (m *Model) SetPosts(posts []model.Post, author func(string) string, status model.AsyncState) tea.Cmd {
	m.status = status

	items := make([]list.Item, len(posts))
	for i, p := range posts {
		items[i] = PostItem{Post: p, Author: author(p.User)}
	}
	return m.list.SetItems(items)
}

// SelectedPost returns the highlighted post, if any.
func (m Model) SelectedPost() (model.Post, bool) {
	it, ok := m.list.SelectedItem().(PostItem)
	if !ok {
		return model.Post{}, false
	}
	return it.Post, true
}

// Update handles messages for the post list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			p, ok := m.SelectedPost()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedPostMsg{PostID: p.ID}
			}
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the post list view.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch m.status.Status {
	case model.StatusLoading:
		if len(m.list.Items()) == 0 {
			return style.Render(m.spinner.View() + " Loading...")
		}
	case model.StatusFailed:
		return style.Render(theme.ErrorStyle.Render(m.status.Error))
	}

	if len(m.list.Items()) == 0 {
		return style.Foreground(theme.ColorGray).Render(
			"No posts yet.\n\nPress a to write the first one.",
		)
	}

	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

package userpage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
	"github.com/nhle/postboard/internal/ui"
	"github.com/nhle/postboard/internal/ui/postlist"
)

// BackMsg signals the parent to navigate back.
type BackMsg struct{}

// Model shows one user and the titles of their posts.
type Model struct {
	userID string
	user   model.User
	found  bool
	posts  []model.Post
	cursor int
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new user page model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// UserID returns the ID of the user being shown, found or not.
func (m Model) UserID() string {
	return m.userID
}

// SetUser shows the user with the given id and their posts.
func (m *Model) SetUser(id string, u model.User, found bool, posts []model.Post) {
	if id != m.userID {
		m.cursor = 0
	}
	m.userID = id
	m.user = u
	m.found = found
	m.posts = posts
	if m.cursor >= len(posts) {
		m.cursor = max(len(posts)-1, 0)
	}
}

// Update handles messages for the user page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Select):
		if m.found && m.cursor < len(m.posts) {
			id := m.posts[m.cursor].ID
			return m, func() tea.Msg { return postlist.SelectedPostMsg{PostID: id} }
		}
	}
	return m, nil
}

// View renders the user page.
func (m Model) View() string {
	if !m.found {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.TitleStyle.Render("User not found"))
	}

	lines := []string{theme.HeaderStyle.Render(m.user.Name), ""}
	if len(m.posts) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("No posts yet."))
	}
	for i, p := range m.posts {
		style := theme.ListItemStyle
		if i == m.cursor {
			style = theme.SelectedItemStyle
		}
		lines = append(lines, style.Render(p.Title+"  "+theme.DimmedStyle.Render(ui.TimeAgo(p.Date))))
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

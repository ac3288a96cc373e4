package userlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
)

// SelectedUserMsg is sent when a user is chosen from the list.
type SelectedUserMsg struct {
	UserID string
}

// UserItem wraps a model.User so it can be used in a bubbles/list.
type UserItem struct {
	User model.User
}

// FilterValue returns the string used for fuzzy filtering.
func (i UserItem) FilterValue() string { return i.User.Name }

type delegate struct{}

func (delegate) Height() int                             { return 1 }
func (delegate) Spacing() int                            { return 0 }
func (delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(UserItem)
	if !ok {
		return
	}
	style := theme.ListItemStyle
	if index == m.Index() {
		style = theme.SelectedItemStyle
	}
	fmt.Fprint(w, style.Render(it.User.Name))
}

// Model lists every user.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	status model.AsyncState
	width  int
	height int
}

// New creates a new user list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, delegate{}, width, height)
	l.Title = "Users"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	return Model{list: l, keys: k, width: width, height: height}
}

// SetUsers replaces the listed users.
func (m *Model) SetUsers(users []model.User, status model.AsyncState) tea.Cmd {
	m.status = status
	items := make([]list.Item, len(users))
	for i, u := range users {
		items[i] = UserItem{User: u}
	}
	return m.list.SetItems(items)
}

// Update handles messages for the user list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		it, ok := m.list.SelectedItem().(UserItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedUserMsg{UserID: it.User.ID} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the user list.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	if len(m.list.Items()) == 0 {
		switch m.status.Status {
		case model.StatusLoading:
			return style.Foreground(theme.ColorGray).Render("Loading users...")
		case model.StatusFailed:
			return style.Render(theme.ErrorStyle.Render(m.status.Error))
		}
		return style.Foreground(theme.ColorGray).Render("No users.")
	}

	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

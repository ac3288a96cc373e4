package notificationlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
	"github.com/nhle/postboard/internal/ui"
)

// Model lists notifications newest first, highlighting new ones.
type Model struct {
	viewport      viewport.Model
	notifications []model.Notification
	author        func(string) string
	status        model.AsyncState
	width         int
	height        int
}

// New creates a new notification list model.
func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		author:   func(string) string { return model.UnknownUserName },
		width:    width,
		height:   height,
	}
}

// SetNotifications replaces the listed notifications. author resolves a
// user ID to a display name.
func (m *Model) SetNotifications(ns []model.Notification, author func(string) string, status model.AsyncState) {
	m.notifications = ns
	m.author = author
	m.status = status
	m.viewport.SetContent(m.renderContent())
}

// Update handles scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the notification list.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Notifications")
	if len(m.notifications) == 0 {
		body := theme.DimmedStyle.Render("No notifications.")
		switch m.status.Status {
		case model.StatusLoading:
			body = theme.DimmedStyle.Render("Loading notifications...")
		case model.StatusFailed:
			body = theme.ErrorStyle.Render(m.status.Error)
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.viewport.View())
}

func (m Model) renderContent() string {
	lines := make([]string, 0, len(m.notifications))
	for _, n := range m.notifications {
		line := lipgloss.NewStyle().Bold(true).Render(m.author(n.User)) + " " + n.Message
		ago := theme.DimmedStyle.Render(ui.TimeAgo(n.Date))
		if n.IsNew {
			line = theme.NewItemStyle.Render("● ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line+"\n    "+ago)
	}
	if m.status.Status == model.StatusFailed {
		lines = append(lines, theme.ErrorStyle.Render(m.status.Error))
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}

package postview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
	"github.com/nhle/postboard/internal/ui"
)

// BackMsg signals the parent to navigate back.
type BackMsg struct{}

// ReactMsg asks the parent to add a reaction to the shown post.
type ReactMsg struct {
	PostID   string
	Reaction model.Reaction
}

// EditPostMsg asks the parent to open the edit form for the shown post.
type EditPostMsg struct {
	PostID string
}

// ViewUserMsg asks the parent to open the author's page.
type ViewUserMsg struct {
	UserID string
}

// Model is the single post view component.
type Model struct {
	postID   string
	post     model.Post
	author   string
	found    bool
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new post view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the post view.
func (m Model) Init() tea.Cmd {
	return nil
}

// PostID returns the ID of the post being shown, found or not.
func (m Model) PostID() string {
	return m.postID
}

// SetPost shows the post with the given id. found is false when the
// lookup came back empty.
func (m *Model) SetPost(id string, p model.Post, found bool, author string) {
	if id != m.postID {
		m.viewport.GotoTop()
	}
	m.postID = id
	m.post = p
	m.found = found
	m.author = author
	m.viewport.SetContent(m.renderContent())
}

// Update handles messages for the post view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}

		if !m.found {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.EditPost):
			id := m.post.ID
			return m, func() tea.Msg { return EditPostMsg{PostID: id} }

		case key.Matches(msg, m.keys.ViewUser):
			if m.post.User == "" {
				return m, nil
			}
			uid := m.post.User
			return m, func() tea.Msg { return ViewUserMsg{UserID: uid} }
		}

		for i, b := range m.keys.Reactions {
			if key.Matches(msg, b) && i < len(model.AllReactions) {
				react := ReactMsg{PostID: m.post.ID, Reaction: model.AllReactions[i]}
				return m, func() tea.Msg { return react }
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the post view.
func (m Model) View() string {
	if !m.found {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.TitleStyle.Render("Post not found!"))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(m.viewport.View())
}

// renderContent builds the full post content string for the viewport.
func (m Model) renderContent() string {
	if !m.found {
		return ""
	}

	var sections []string
	sections = append(sections,
		theme.TitleStyle.Render(m.post.Title),
		theme.DimmedStyle.Render(ui.Byline(m.author, m.post.Date)),
		"",
		m.post.Content,
		"",
		m.renderReactions(),
	)
	return strings.Join(sections, "\n")
}

func (m Model) renderReactions() string {
	buttons := make([]string, 0, len(model.AllReactions))
	for i, r := range model.AllReactions {
		label := fmt.Sprintf("%d %s %d", i+1, r.Emoji(), m.post.Reactions.Count(r))
		buttons = append(buttons, theme.ReactionStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// SetSize updates the post view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 8
	m.viewport.Height = height - 4
	m.viewport.SetContent(m.renderContent())
}

package postform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/theme"
)

// SubmitNewMsg is dispatched when the add form passes validation.
type SubmitNewMsg struct {
	Post model.NewPost
}

// SubmitEditMsg is dispatched when the edit form passes validation.
type SubmitEditMsg struct {
	Edit model.PostEdit
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title   string
	content string
	user    string
}

// Model is the Bubble Tea model for the add/edit post form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	users    []model.User
	saving   bool
	err      string
	width    int
	height   int
}

// New creates a new post form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetUsers sets the authors offered by the add form.
func (m *Model) SetUsers(users []model.User) {
	m.users = users
}

// EditMode reports whether the form edits an existing post.
func (m Model) EditMode() bool {
	return m.editMode
}

// Started reports whether the form has been initialized.
func (m Model) Started() bool {
	return m.form != nil
}

// Saving reports whether a submitted post is waiting on the server.
func (m Model) Saving() bool {
	return m.saving
}

// StartCreate clears the form and initializes it for a new post.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.saving = false
	m.err = ""
	m.fb.title = ""
	m.fb.content = ""
	m.fb.user = ""
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing post's fields.
func (m *Model) StartEdit(p model.Post) tea.Cmd {
	m.editMode = true
	m.editID = p.ID
	m.saving = false
	m.err = ""
	m.fb.title = p.Title
	m.fb.content = p.Content
	m.fb.user = p.User
	m.form = m.buildEditForm()
	return m.form.Init()
}

// Failed reopens the add form with the entered values and shows err.
func (m *Model) Failed(err error) tea.Cmd {
	m.saving = false
	m.editMode = false
	m.editID = ""
	m.err = "Failed to save the post: " + err.Error()
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// Update handles messages for the post form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.saving {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the post form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Add a New Post"
	if m.editMode {
		titleText = "Edit Post"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render(titleText)}
	if m.err != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.err))
	}
	if m.saving {
		parts = append(parts, theme.DimmedStyle.Render("Saving..."))
	} else {
		parts = append(parts, m.form.View())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	fields := []huh.Field{m.titleField(), m.authorField(), m.contentField()}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildEditForm() *huh.Form {
	fields := []huh.Field{m.titleField(), m.contentField()}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) titleField() huh.Field {
	return huh.NewInput().
		Title("Post Title").
		Placeholder("What's on your mind?").
		Value(&m.fb.title).
		Validate(validateRequired("Title"))
}

func (m *Model) contentField() huh.Field {
	return huh.NewText().
		Title("Content").
		Value(&m.fb.content).
		Validate(validateRequired("Content"))
}

func (m *Model) authorField() huh.Field {
	opts := []huh.Option[string]{huh.NewOption("Select an author", "")}
	for _, u := range m.users {
		opts = append(opts, huh.NewOption(u.Name, u.ID))
	}
	return huh.NewSelect[string]().
		Title("Author").
		Options(opts...).
		Value(&m.fb.user).
		Validate(validateRequired("Author"))
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.editMode {
		edit := model.PostEdit{
			ID:      m.editID,
			Title:   strings.TrimSpace(m.fb.title),
			Content: m.fb.content,
		}
		if err := model.ValidatePostEdit(edit); err != nil {
			m.err = err.Error()
			m.form = m.buildEditForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return SubmitEditMsg{Edit: edit} }
	}

	post := model.NewPost{
		Title:   strings.TrimSpace(m.fb.title),
		Content: m.fb.content,
		User:    m.fb.user,
	}
	if err := model.ValidateNewPost(post); err != nil {
		m.err = err.Error()
		m.form = m.buildCreateForm()
		return m, m.form.Init()
	}

	m.saving = true
	m.err = ""
	return m, func() tea.Msg { return SubmitNewMsg{Post: post} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

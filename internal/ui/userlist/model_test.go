package userlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
)

func TestListAndSelect(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 60, 20)
	m.SetUsers([]model.User{{ID: "a", Name: "Ada"}, {ID: "b", Name: "Bob"}}, model.IdleState().Succeeded())

	out := m.View()
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Bob")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedUserMsg{UserID: "b"}, cmd())
}

func TestEmptyStates(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 60, 20)

	m.SetUsers(nil, model.IdleState().Loading())
	assert.Contains(t, m.View(), "Loading users...")

	m.SetUsers(nil, model.IdleState().Failed("boom"))
	assert.Contains(t, m.View(), "boom")
}

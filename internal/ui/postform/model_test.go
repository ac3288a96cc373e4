package postform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/postboard/internal/model"
)

func TestSubmitNewRequiresAllFields(t *testing.T) {
	m := New(80, 24)
	m.SetUsers([]model.User{{ID: "u1", Name: "Ada"}})
	m.StartCreate()

	m.fb.title = "Hello"
	m.fb.content = "World"

	m, cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	assert.False(t, m.Saving())
	assert.Contains(t, m.View(), "author")
}

func TestSubmitNewEmitsPost(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.title = "  Hello "
	m.fb.content = "World"
	m.fb.user = "u1"

	m, cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	assert.True(t, m.Saving())
	assert.Equal(t, SubmitNewMsg{Post: model.NewPost{Title: "Hello", Content: "World", User: "u1"}}, cmd())
	assert.Contains(t, m.View(), "Saving...")
}

func TestFailedKeepsValuesAndShowsError(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.title = "Hello"
	m.fb.content = "World"
	m.fb.user = "u1"
	m, _ = m.handleSubmit()

	m.Failed(errors.New("server said no"))

	assert.False(t, m.Saving())
	assert.Equal(t, "Hello", m.fb.title)
	assert.Contains(t, m.View(), "server said no")

	m.StartCreate()
	assert.Empty(t, m.fb.title)
	assert.NotContains(t, m.View(), "server said no")
}

func TestFailedLeavesEditMode(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(model.Post{ID: "p1", Title: "Old", Content: "Body", User: "u1"})
	require.True(t, m.EditMode())

	m.Failed(errors.New("server said no"))
	assert.False(t, m.EditMode())

	m.fb.title = "Hello"
	m.fb.content = "World"
	m.fb.user = "u1"
	_, cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitNewMsg{Post: model.NewPost{Title: "Hello", Content: "World", User: "u1"}}, cmd())
}

func TestSubmitEdit(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(model.Post{ID: "p1", Title: "Old", Content: "Body", User: "u1"})
	assert.True(t, m.EditMode())

	m.fb.title = "New"
	_, cmd := m.handleSubmit()
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitEditMsg{Edit: model.PostEdit{ID: "p1", Title: "New", Content: "Body"}}, cmd())
}

func TestSubmitEditRejectsEmptyContent(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(model.Post{ID: "p1", Title: "Old", Content: "Body"})
	m.fb.content = "   "

	m, _ = m.handleSubmit()
	assert.Contains(t, m.View(), "content")
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Title")
	assert.EqualError(t, v("  "), "Title is required")
	assert.NoError(t, v("x"))
}

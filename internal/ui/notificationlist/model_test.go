package notificationlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/postboard/internal/model"
)

func names(id string) string {
	if id == "u1" {
		return "Ada"
	}
	return model.UnknownUserName
}

func TestRendersAuthorAndMessage(t *testing.T) {
	m := New(80, 20)
	m.SetNotifications([]model.Notification{
		{ID: "n2", User: "u1", Message: "says hi", IsNew: true},
		{ID: "n1", User: "ghost", Message: "poked you"},
	}, names, model.IdleState().Succeeded())

	out := m.View()
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "says hi")
	assert.Contains(t, out, model.UnknownUserName)
	assert.Contains(t, out, "poked you")
	assert.Contains(t, out, "●")
}

func TestEmptyStates(t *testing.T) {
	m := New(80, 20)
	assert.Contains(t, m.View(), "No notifications.")

	m.SetNotifications(nil, names, model.IdleState().Failed("offline"))
	assert.Contains(t, m.View(), "offline")
}

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNavBadge(t *testing.T) {
	out := RenderNav([]NavItem{
		{Label: "Posts", Active: true},
		{Label: "Notifications", Badge: 3},
	})
	assert.Contains(t, out, "Posts")
	assert.Contains(t, out, "Notifications")
	assert.Contains(t, out, "[3]")

	out = RenderNav([]NavItem{{Label: "Notifications"}})
	assert.NotContains(t, out, "[")
}

func TestContentHeight(t *testing.T) {
	l := NewLayout(80, 24)
	assert.Equal(t, 22, l.ContentHeight())
	assert.Equal(t, 80, l.ContentWidth())
}

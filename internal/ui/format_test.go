package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/postboard/internal/model"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 3, 0, 0, time.UTC)

	assert.Equal(t, "3 minutes ago", timeAgo("2024-03-01T12:00:00.000Z", now))
	assert.Equal(t, "", timeAgo("", now))
	assert.Equal(t, "yesterday-ish", timeAgo("yesterday-ish", now))
}

func TestReactionSummary(t *testing.T) {
	out := ReactionSummary(model.Reactions{ThumbsUp: 2, Rabbit: 1})
	assert.Contains(t, out, "👍 2")
	assert.Contains(t, out, "🎉 0")
	assert.Contains(t, out, "🐰 1")
}

package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/postboard/internal/keys"
)

func TestViewListsKeysAndReactions(t *testing.T) {
	out := New(keys.DefaultKeyMap(), 120, 40).View()

	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "thumbsUp")
	assert.Contains(t, out, "notifications")
}

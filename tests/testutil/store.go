package testutil

import (
	"testing"

	"github.com/nhle/postboard/internal/store"
)

// NewTestStore creates a started Store with the initial state.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New()
	s.Start()
	t.Cleanup(s.Close)

	return s
}

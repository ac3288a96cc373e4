package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/postboard/internal/model"
)

func seededPosts() State {
	return Reduce(NewState(), PostsFetchFulfilled{Posts: []model.Post{
		{ID: "1", Title: "First", Content: "a", User: "u1", Date: "2024-01-01T00:00:00.000Z"},
		{ID: "2", Title: "Second", Content: "b", User: "u2", Date: "2024-01-02T00:00:00.000Z"},
	}})
}

func TestPostsFetchLifecycle(t *testing.T) {
	s := NewState()
	assert.Equal(t, model.StatusIdle, s.Posts.Status)

	s = Reduce(s, PostsFetchPending{RequestID: "r1"})
	assert.Equal(t, model.StatusLoading, s.Posts.Status)

	failed := Reduce(s, PostsFetchRejected{RequestID: "r1", Err: "connection refused"})
	assert.Equal(t, model.StatusFailed, failed.Posts.Status)
	assert.Equal(t, "connection refused", failed.Posts.Error)

	ok := Reduce(s, PostsFetchFulfilled{RequestID: "r1", Posts: []model.Post{{ID: "1"}}})
	assert.Equal(t, model.StatusSucceeded, ok.Posts.Status)
	assert.Empty(t, ok.Posts.Error)
	assert.Equal(t, 1, ok.Posts.Items.Len())
}

func TestPendingWhileLoadingKeepsState(t *testing.T) {
	s := Reduce(NewState(), PostsFetchPending{RequestID: "r1"})
	again := Reduce(s, PostsFetchPending{RequestID: "r2"})
	assert.Equal(t, s.Posts.AsyncState, again.Posts.AsyncState)
}

func TestRetryAfterFailureClearsError(t *testing.T) {
	s := Reduce(NewState(), UsersFetchPending{})
	s = Reduce(s, UsersFetchRejected{Err: "boom"})
	s = Reduce(s, UsersFetchPending{})

	assert.Equal(t, model.StatusLoading, s.Users.Status)
	assert.Empty(t, s.Users.Error)
}

func TestPostsOrderedNewestFirst(t *testing.T) {
	s := seededPosts()
	ids := s.Posts.Items.IDs()
	assert.Equal(t, []string{"2", "1"}, ids)
}

func TestPostsFetchUpsertsWithoutDuplicates(t *testing.T) {
	s := seededPosts()
	s = Reduce(s, PostsFetchFulfilled{Posts: []model.Post{
		{ID: "1", Title: "First (edited)", Date: "2024-01-01T00:00:00.000Z"},
		{ID: "3", Title: "Third", Date: "2024-01-03T00:00:00.000Z"},
	}})

	assert.Equal(t, []string{"3", "2", "1"}, s.Posts.Items.IDs())
	p, ok := s.Posts.Items.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "First (edited)", p.Title)
}

func TestPostAddedLeavesStatusAlone(t *testing.T) {
	s := seededPosts()
	status := s.Posts.AsyncState

	s = Reduce(s, PostAdded{Post: model.Post{ID: "9", Date: "2024-02-01T00:00:00.000Z"}})
	assert.Equal(t, status, s.Posts.AsyncState)
	assert.Equal(t, "9", s.Posts.Items.IDs()[0])
}

func TestPostUpdated(t *testing.T) {
	s := Reduce(seededPosts(), PostUpdated{ID: "1", Title: "New title", Content: "New body"})
	p, _ := s.Posts.Items.ByID("1")

	assert.Equal(t, "New title", p.Title)
	assert.Equal(t, "New body", p.Content)
	assert.Equal(t, "u1", p.User)

	unchanged := Reduce(s, PostUpdated{ID: "missing", Title: "x"})
	assert.Equal(t, s.Posts.Items.Version(), unchanged.Posts.Items.Version())
}

func TestReactionAddedIsMonotonic(t *testing.T) {
	s := seededPosts()
	for i := 1; i <= 5; i++ {
		s = Reduce(s, ReactionAdded{PostID: "1", Reaction: model.ReactionHeart})
		p, _ := s.Posts.Items.ByID("1")
		require.Equal(t, i, p.Reactions.Heart)
		require.Zero(t, p.Reactions.ThumbsUp)
	}

	other, _ := s.Posts.Items.ByID("2")
	assert.Zero(t, other.Reactions.Heart)
}

func TestReactionAddedIgnoresUnknownReaction(t *testing.T) {
	s := seededPosts()
	next := Reduce(s, ReactionAdded{PostID: "1", Reaction: "clap"})
	assert.Equal(t, s.Posts.Items.Version(), next.Posts.Items.Version())
}

func TestUsersFetchReplacesAll(t *testing.T) {
	s := Reduce(NewState(), UsersFetchFulfilled{Users: []model.User{{ID: "1", Name: "Zed"}, {ID: "2", Name: "Amy"}}})
	s = Reduce(s, UsersFetchFulfilled{Users: []model.User{{ID: "3", Name: "Bob"}, {ID: "2", Name: "Amy"}}})

	assert.Equal(t, []string{"2", "3"}, s.Users.Items.IDs())
}

func TestAllNotificationsRead(t *testing.T) {
	s := Reduce(NewState(), NotificationsFetchFulfilled{Notifications: []model.Notification{
		{ID: "n1", Date: "2024-01-01T00:00:00.000Z", Message: "hi", User: "u1"},
		{ID: "n2", Date: "2024-01-02T00:00:00.000Z", Message: "yo", User: "u2"},
	}})
	before := s.Notifications.Items.All()

	s = Reduce(s, AllNotificationsRead{})
	after := s.Notifications.Items.All()

	require.Len(t, after, len(before))
	for i := range after {
		assert.True(t, after[i].Read)
		want := before[i]
		want.Read = true
		assert.Equal(t, want, after[i])
	}

	// Marking again changes nothing observable.
	again := Reduce(s, AllNotificationsRead{})
	assert.Equal(t, after, again.Notifications.Items.All())
}

func TestNotificationFetchPreservesReadFlag(t *testing.T) {
	s := Reduce(NewState(), NotificationsFetchFulfilled{Notifications: []model.Notification{
		{ID: "n1", Date: "2024-01-01T00:00:00.000Z", Message: "hello"},
	}})
	s = Reduce(s, AllNotificationsRead{})

	// The server re-sends n1 unread along with a fresh notification.
	s = Reduce(s, NotificationsFetchFulfilled{Notifications: []model.Notification{
		{ID: "n1", Date: "2024-01-01T00:00:00.000Z", Message: "hello"},
		{ID: "n2", Date: "2024-01-02T00:00:00.000Z", Message: "new"},
	}})

	n1, _ := s.Notifications.Items.ByID("n1")
	n2, _ := s.Notifications.Items.ByID("n2")
	assert.True(t, n1.Read)
	assert.False(t, n1.IsNew)
	assert.False(t, n2.Read)
	assert.True(t, n2.IsNew)
	assert.Equal(t, []string{"n2", "n1"}, s.Notifications.Items.IDs())
}

func TestNotificationFetchFlagsUnreadAsNew(t *testing.T) {
	s := Reduce(NewState(), NotificationsFetchFulfilled{Notifications: []model.Notification{
		{ID: "n1", Date: "2024-01-01T00:00:00.000Z"},
		{ID: "n2", Date: "2024-01-02T00:00:00.000Z"},
	}})
	s = Reduce(s, NotificationsFetchFulfilled{})

	for _, n := range s.Notifications.Items.All() {
		assert.True(t, n.IsNew, n.ID)
	}

	s = Reduce(s, AllNotificationsRead{})
	s = Reduce(s, NotificationsFetchFulfilled{})
	for _, n := range s.Notifications.Items.All() {
		assert.False(t, n.IsNew, n.ID)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := seededPosts()
	snapshot := s.Posts.Items.All()

	_ = Reduce(s, ReactionAdded{PostID: "1", Reaction: model.ReactionEyes})
	_ = Reduce(s, PostUpdated{ID: "2", Title: "changed", Content: "changed"})

	assert.Equal(t, snapshot, s.Posts.Items.All())
}

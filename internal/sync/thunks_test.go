package sync

import (
	"context"
	"errors"
	gosync "sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/tests/testutil"
)

func TestFetchPostsSucceeds(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{Posts: []model.Post{
		{ID: "1", Date: "2024-01-01T00:00:00.000Z"},
		{ID: "2", Date: "2024-01-02T00:00:00.000Z"},
	}}

	require.NoError(t, NewThunks(s, b).FetchPosts(context.Background()))

	st := s.State()
	assert.Equal(t, model.StatusSucceeded, st.Posts.Status)
	assert.Equal(t, []string{"2", "1"}, st.Posts.Items.IDs())
}

func TestFetchPostsSkippedOnceLoaded(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{}
	th := NewThunks(s, b)

	require.NoError(t, th.FetchPosts(context.Background()))
	assert.ErrorIs(t, th.FetchPosts(context.Background()), ErrConditionFailed)
	assert.Equal(t, 1, b.Calls("posts"))
}

func TestFetchPostsFailureIsRecordedAndRetryable(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{PostsErr: errors.New("connection refused")}
	th := NewThunks(s, b)

	err := th.FetchPosts(context.Background())
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, model.StatusFailed, st.Posts.Status)
	assert.Equal(t, "connection refused", st.Posts.Error)

	b.PostsErr = nil
	b.Posts = []model.Post{{ID: "1"}}
	require.NoError(t, th.FetchPosts(context.Background()))
	assert.Equal(t, model.StatusSucceeded, s.State().Posts.Status)
	assert.Empty(t, s.State().Posts.Error)
}

func TestConcurrentFetchPostsHitsNetworkOnce(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{Gate: make(chan struct{})}
	th := NewThunks(s, b)

	var wg gosync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = th.FetchPosts(context.Background())
		}(i)
	}

	// Let the single in-flight request finish once the others have bailed.
	close(b.Gate)
	wg.Wait()

	skipped := 0
	for _, err := range errs {
		if errors.Is(err, ErrConditionFailed) {
			skipped++
		} else {
			assert.NoError(t, err)
		}
	}
	assert.Equal(t, 9, skipped)
	assert.Equal(t, 1, b.Calls("posts"))
}

func TestAddNewPost(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{}
	th := NewThunks(s, b)

	created, err := th.AddNewPost(context.Background(), model.NewPost{Title: "T", Content: "C", User: "u1"})
	require.NoError(t, err)

	got, ok := s.State().Posts.Items.ByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "u1", got.User)
}

func TestAddNewPostRejectedLeavesStoreUnchanged(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{CreateErr: errors.New("boom")}
	th := NewThunks(s, b)

	before := s.State().Posts.Items.Version()
	_, err := th.AddNewPost(context.Background(), model.NewPost{Title: "T", Content: "C", User: "u1"})
	require.Error(t, err)

	assert.Equal(t, before, s.State().Posts.Items.Version())
	assert.Equal(t, model.StatusIdle, s.State().Posts.Status)
}

func TestAddNewPostValidatesBeforeSending(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{}

	_, err := NewThunks(s, b).AddNewPost(context.Background(), model.NewPost{Title: "T"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
	assert.Zero(t, b.Calls("create"))
}

func TestFetchUsersReplacesList(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{Users: []model.User{{ID: "b", Name: "Bea"}, {ID: "a", Name: "Al"}}}

	require.NoError(t, NewThunks(s, b).FetchUsers(context.Background()))

	st := s.State()
	assert.Equal(t, model.StatusSucceeded, st.Users.Status)
	assert.Equal(t, []string{"a", "b"}, st.Users.Items.IDs())
}

func TestFetchNotificationsPassesLatestDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{Notifications: []model.Notification{
		{ID: "n1", Date: "2024-01-01T00:00:00.000Z"},
		{ID: "n2", Date: "2024-01-03T00:00:00.000Z"},
	}}
	th := NewThunks(s, b)

	require.NoError(t, th.FetchNotifications(context.Background()))

	b.Notifications = append(b.Notifications, model.Notification{ID: "n3", Date: "2024-01-05T00:00:00.000Z"})
	require.NoError(t, th.FetchNotifications(context.Background()))

	assert.Equal(t, []string{"", "2024-01-03T00:00:00.000Z"}, b.Since())
	assert.Equal(t, []string{"n3", "n2", "n1"}, s.State().Notifications.Items.IDs())
}

func TestFetchNotificationsKeepsReadFlag(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := &testutil.FakeBackend{Notifications: []model.Notification{{ID: "n1", Date: "2024-01-01T00:00:00.000Z"}}}
	th := NewThunks(s, b)

	require.NoError(t, th.FetchNotifications(context.Background()))
	s.Dispatch(allRead())

	n, _ := s.State().Notifications.Items.ByID("n1")
	require.True(t, n.Read)

	require.NoError(t, th.FetchNotifications(context.Background()))
	n, _ = s.State().Notifications.Items.ByID("n1")
	assert.True(t, n.Read)
	assert.False(t, n.IsNew)
}

func TestCmdSwallowsSkippedFetch(t *testing.T) {
	s := testutil.NewTestStore(t)
	th := NewThunks(s, &testutil.FakeBackend{})

	require.NoError(t, th.FetchPosts(context.Background()))

	msg := th.FetchPostsCmd()()
	assert.Equal(t, ResultMsg{Op: OpFetchPosts}, msg)
}

func TestAddNewPostCmdReportsError(t *testing.T) {
	s := testutil.NewTestStore(t)
	th := NewThunks(s, &testutil.FakeBackend{CreateErr: errors.New("boom")})

	msg, ok := th.AddNewPostCmd(model.NewPost{Title: "T", Content: "C", User: "u"})().(PostAddedMsg)
	require.True(t, ok)
	require.Error(t, msg.Err)
	assert.Contains(t, msg.Err.Error(), "boom")
}

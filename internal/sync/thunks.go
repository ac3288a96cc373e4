package sync

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/nhle/postboard/internal/api"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/selector"
	"github.com/nhle/postboard/internal/store"
)

// ErrConditionFailed is returned when a fetch is skipped because the
// collection is already loading or already loaded.
var ErrConditionFailed = errors.New("request skipped: already loading or loaded")

// Op names an async operation for result messages and logs.
type Op string

const (
	OpFetchPosts         Op = "fetchPosts"
	OpAddNewPost         Op = "addNewPost"
	OpFetchUsers         Op = "fetchUsers"
	OpFetchNotifications Op = "fetchNotifications"
)

// ResultMsg is a tea.Msg sent when an async operation started through a
// tea.Cmd completes. The store already reflects the outcome; Err is only
// informational for fetches.
type ResultMsg struct {
	Op  Op
	Err error
}

// PostAddedMsg is a tea.Msg sent when AddNewPostCmd completes. Err is
// non-nil when the server rejected the post; the store is unchanged in
// that case.
type PostAddedMsg struct {
	Post model.Post
	Err  error
}

// Thunks runs the async operations that keep the store in sync with the
// API. Each operation dispatches a pending action, waits on the network,
// and dispatches the outcome.
type Thunks struct {
	store   *store.Store
	backend api.Backend
}

// NewThunks creates the async operations for s backed by b.
func NewThunks(s *store.Store, b api.Backend) *Thunks {
	return &Thunks{store: s, backend: b}
}

// FetchPosts loads all posts. It returns ErrConditionFailed without
// touching the network when posts are loading or already loaded.
func (t *Thunks) FetchPosts(ctx context.Context) error {
	reqID := uuid.NewString()
	canFetch := func(s store.State) bool { return s.Posts.CanFetch() }
	if !t.store.DispatchIf(canFetch, store.PostsFetchPending{RequestID: reqID}) {
		return ErrConditionFailed
	}

	posts, err := t.backend.GetPosts(ctx)
	if err != nil {
		glog.Errorf("[sync]%s %s failed: %v", OpFetchPosts, reqID, err)
		t.store.Dispatch(store.PostsFetchRejected{RequestID: reqID, Err: err.Error()})
		return err
	}

	glog.V(1).Infof("[sync]%s %s fetched %d", OpFetchPosts, reqID, len(posts))
	t.store.Dispatch(store.PostsFetchFulfilled{RequestID: reqID, Posts: posts})
	return nil
}

// AddNewPost validates and submits a new post. On success the saved post
// is merged into the store and returned. On failure the error is returned
// and the store is left unchanged.
func (t *Thunks) AddNewPost(ctx context.Context, p model.NewPost) (model.Post, error) {
	if err := model.ValidateNewPost(p); err != nil {
		return model.Post{}, err
	}

	reqID := uuid.NewString()
	created, err := t.backend.CreatePost(ctx, p)
	if err != nil {
		glog.Errorf("[sync]%s %s failed: %v", OpAddNewPost, reqID, err)
		return model.Post{}, err
	}

	t.store.Dispatch(store.PostAdded{RequestID: reqID, Post: created})
	return created, nil
}

// FetchUsers loads the full user list, replacing any users already held.
// It returns ErrConditionFailed when users are loading or already loaded.
func (t *Thunks) FetchUsers(ctx context.Context) error {
	reqID := uuid.NewString()
	canFetch := func(s store.State) bool { return s.Users.CanFetch() }
	if !t.store.DispatchIf(canFetch, store.UsersFetchPending{RequestID: reqID}) {
		return ErrConditionFailed
	}

	users, err := t.backend.GetUsers(ctx)
	if err != nil {
		glog.Errorf("[sync]%s %s failed: %v", OpFetchUsers, reqID, err)
		t.store.Dispatch(store.UsersFetchRejected{RequestID: reqID, Err: err.Error()})
		return err
	}

	t.store.Dispatch(store.UsersFetchFulfilled{RequestID: reqID, Users: users})
	return nil
}

// FetchNotifications loads notifications newer than the newest one held.
// Unlike the collection fetches it may run again after succeeding; it is
// only skipped while another notifications fetch is in flight.
func (t *Thunks) FetchNotifications(ctx context.Context) error {
	reqID := uuid.NewString()
	notLoading := func(s store.State) bool {
		return s.Notifications.Status != model.StatusLoading
	}
	if !t.store.DispatchIf(notLoading, store.NotificationsFetchPending{RequestID: reqID}) {
		return ErrConditionFailed
	}

	since := selector.LatestNotificationDate(t.store.State())
	notifications, err := t.backend.GetNotifications(ctx, since)
	if err != nil {
		glog.Errorf("[sync]%s %s failed: %v", OpFetchNotifications, reqID, err)
		t.store.Dispatch(store.NotificationsFetchRejected{RequestID: reqID, Err: err.Error()})
		return err
	}

	glog.V(1).Infof("[sync]%s %s since=%q fetched %d", OpFetchNotifications, reqID, since, len(notifications))
	t.store.Dispatch(store.NotificationsFetchFulfilled{RequestID: reqID, Notifications: notifications})
	return nil
}

// FetchPostsCmd runs FetchPosts off the UI goroutine.
func (t *Thunks) FetchPostsCmd() tea.Cmd {
	return t.cmd(OpFetchPosts, t.FetchPosts)
}

// FetchUsersCmd runs FetchUsers off the UI goroutine.
func (t *Thunks) FetchUsersCmd() tea.Cmd {
	return t.cmd(OpFetchUsers, t.FetchUsers)
}

// FetchNotificationsCmd runs FetchNotifications off the UI goroutine.
func (t *Thunks) FetchNotificationsCmd() tea.Cmd {
	return t.cmd(OpFetchNotifications, t.FetchNotifications)
}

// AddNewPostCmd runs AddNewPost off the UI goroutine and reports the
// outcome as a PostAddedMsg.
func (t *Thunks) AddNewPostCmd(p model.NewPost) tea.Cmd {
	return func() tea.Msg {
		created, err := t.AddNewPost(context.Background(), p)
		if err != nil {
			return PostAddedMsg{Err: fmt.Errorf("saving post: %w", err)}
		}
		return PostAddedMsg{Post: created}
	}
}

func (t *Thunks) cmd(op Op, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := fn(context.Background())
		if errors.Is(err, ErrConditionFailed) {
			err = nil
		}
		return ResultMsg{Op: op, Err: err}
	}
}

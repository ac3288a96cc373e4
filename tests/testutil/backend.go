package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/nhle/postboard/internal/model"
)

// FakeBackend is an in-memory api.Backend for tests. Set the exported
// fields before use; the counters and Since are safe to read after calls
// return.
type FakeBackend struct {
	Posts         []model.Post
	Users         []model.User
	Notifications []model.Notification

	PostsErr         error
	UsersErr         error
	NotificationsErr error
	CreateErr        error

	// Gate, when non-nil, blocks GetPosts until it is closed or sent to.
	Gate chan struct{}

	mu         sync.Mutex
	calls      map[string]int
	since      []string
	nextPostID int
}

func (f *FakeBackend) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

// Calls returns how many times op ("posts", "users", "notifications" or
// "create") was requested.
func (f *FakeBackend) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Since returns the since arguments passed to GetNotifications in order.
func (f *FakeBackend) Since() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.since...)
}

func (f *FakeBackend) GetPosts(ctx context.Context) ([]model.Post, error) {
	f.record("posts")
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.PostsErr != nil {
		return nil, f.PostsErr
	}
	return append([]model.Post(nil), f.Posts...), nil
}

func (f *FakeBackend) CreatePost(_ context.Context, p model.NewPost) (model.Post, error) {
	f.record("create")
	if f.CreateErr != nil {
		return model.Post{}, f.CreateErr
	}

	f.mu.Lock()
	f.nextPostID++
	id := fmt.Sprintf("created-%d", f.nextPostID)
	f.mu.Unlock()

	return model.Post{
		ID:      id,
		Title:   p.Title,
		Content: p.Content,
		User:    p.User,
		Date:    "2024-06-01T00:00:00.000Z",
	}, nil
}

func (f *FakeBackend) GetUsers(context.Context) ([]model.User, error) {
	f.record("users")
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	return append([]model.User(nil), f.Users...), nil
}

func (f *FakeBackend) GetNotifications(_ context.Context, since string) ([]model.Notification, error) {
	f.record("notifications")
	f.mu.Lock()
	f.since = append(f.since, since)
	f.mu.Unlock()

	if f.NotificationsErr != nil {
		return nil, f.NotificationsErr
	}
	var out []model.Notification
	for _, n := range f.Notifications {
		if since == "" || n.Date > since {
			out = append(out, n)
		}
	}
	return out, nil
}

package selector

import (
	"fmt"

	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/store"
)

// byUserKey keys the posts-by-user projection.
type byUserKey struct {
	version uint64
	userID  string
}

// Selectors holds the memo caches for one consumer of the store. Callers
// that select with different arguments in alternation (for example two
// user pages at once) should use separate Selectors values.
type Selectors struct {
	allPosts         Memo[uint64, []model.Post]
	postsByUser      Memo[byUserKey, []model.Post]
	allUsers         Memo[uint64, []model.User]
	allNotifications Memo[uint64, []model.Notification]
	unreadCount      Memo[uint64, int]
}

// New returns an empty set of selectors.
func New() *Selectors {
	return &Selectors{}
}

// AllPosts returns every post, newest first.
func (s *Selectors) AllPosts(st store.State) []model.Post {
	items := st.Posts.Items
	return s.allPosts.Get(items.Version(), items.All)
}

// PostByID looks up a post.
func (s *Selectors) PostByID(st store.State, id string) (model.Post, bool) {
	return st.Posts.Items.ByID(id)
}

// RequirePost is PostByID for callers that report the miss as an error
// wrapping model.ErrNotFound.
func (s *Selectors) RequirePost(st store.State, id string) (model.Post, error) {
	p, ok := st.Posts.Items.ByID(id)
	if !ok {
		return model.Post{}, fmt.Errorf("post %q: %w", id, model.ErrNotFound)
	}
	return p, nil
}

// PostsByUser returns the posts authored by userID, newest first.
func (s *Selectors) PostsByUser(st store.State, userID string) []model.Post {
	key := byUserKey{version: st.Posts.Items.Version(), userID: userID}
	return s.postsByUser.Get(key, func() []model.Post {
		var out []model.Post
		for _, p := range s.AllPosts(st) {
			if p.User == userID {
				out = append(out, p)
			}
		}
		return out
	})
}

// AllUsers returns every user, ordered by name.
func (s *Selectors) AllUsers(st store.State) []model.User {
	items := st.Users.Items
	return s.allUsers.Get(items.Version(), items.All)
}

// UserByID looks up a user.
func (s *Selectors) UserByID(st store.State, id string) (model.User, bool) {
	return st.Users.Items.ByID(id)
}

// UserName returns the display name of a user, or the unknown-user
// placeholder when the user is not loaded.
func (s *Selectors) UserName(st store.State, id string) string {
	if u, ok := st.Users.Items.ByID(id); ok {
		return u.Name
	}
	return model.UnknownUserName
}

// AllNotifications returns every notification, newest first.
func (s *Selectors) AllNotifications(st store.State) []model.Notification {
	items := st.Notifications.Items
	return s.allNotifications.Get(items.Version(), items.All)
}

// UnreadNotificationCount counts notifications not yet read.
func (s *Selectors) UnreadNotificationCount(st store.State) int {
	return s.unreadCount.Get(st.Notifications.Items.Version(), func() int {
		n := 0
		for _, item := range s.AllNotifications(st) {
			if !item.Read {
				n++
			}
		}
		return n
	})
}

// LatestNotificationDate returns the date of the newest notification, or
// "" when there are none.
func LatestNotificationDate(st store.State) string {
	ids := st.Notifications.Items.IDs()
	if len(ids) == 0 {
		return ""
	}
	n, _ := st.Notifications.Items.ByID(ids[0])
	return n.Date
}

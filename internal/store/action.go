package store

import "github.com/nhle/postboard/internal/model"

// Action is an intent applied to the State by Reduce. The set of actions
// is closed: only types in this package implement it.
type Action interface {
	// Type returns a stable name for logging.
	Type() string
	action()
}

// PostsFetchPending marks the start of a posts fetch.
type PostsFetchPending struct {
	RequestID string
}

// PostsFetchFulfilled carries the posts returned by a successful fetch.
type PostsFetchFulfilled struct {
	RequestID string
	Posts     []model.Post
}

// PostsFetchRejected carries the error message of a failed posts fetch.
type PostsFetchRejected struct {
	RequestID string
	Err       string
}

// PostAdded carries a post the server accepted.
type PostAdded struct {
	RequestID string
	Post      model.Post
}

// PostUpdated replaces the title and content of an existing post.
type PostUpdated struct {
	ID      string
	Title   string
	Content string
}

// ReactionAdded increments one reaction counter on a post.
type ReactionAdded struct {
	PostID   string
	Reaction model.Reaction
}

// UsersFetchPending marks the start of a users fetch.
type UsersFetchPending struct {
	RequestID string
}

// UsersFetchFulfilled carries the full user list.
type UsersFetchFulfilled struct {
	RequestID string
	Users     []model.User
}

// UsersFetchRejected carries the error message of a failed users fetch.
type UsersFetchRejected struct {
	RequestID string
	Err       string
}

// NotificationsFetchPending marks the start of a notifications fetch.
type NotificationsFetchPending struct {
	RequestID string
}

// NotificationsFetchFulfilled carries notifications newer than the
// latest one known when the fetch started.
type NotificationsFetchFulfilled struct {
	RequestID     string
	Notifications []model.Notification
}

// NotificationsFetchRejected carries the error message of a failed
// notifications fetch.
type NotificationsFetchRejected struct {
	RequestID string
	Err       string
}

// AllNotificationsRead marks every notification as read.
type AllNotificationsRead struct{}

func (PostsFetchPending) Type() string           { return "posts/fetchPosts/pending" }
func (PostsFetchFulfilled) Type() string         { return "posts/fetchPosts/fulfilled" }
func (PostsFetchRejected) Type() string          { return "posts/fetchPosts/rejected" }
func (PostAdded) Type() string                   { return "posts/addNewPost/fulfilled" }
func (PostUpdated) Type() string                 { return "posts/postUpdated" }
func (ReactionAdded) Type() string               { return "posts/reactionAdded" }
func (UsersFetchPending) Type() string           { return "users/fetchUsers/pending" }
func (UsersFetchFulfilled) Type() string         { return "users/fetchUsers/fulfilled" }
func (UsersFetchRejected) Type() string          { return "users/fetchUsers/rejected" }
func (NotificationsFetchPending) Type() string   { return "notifications/fetchNotifications/pending" }
func (NotificationsFetchFulfilled) Type() string { return "notifications/fetchNotifications/fulfilled" }
func (NotificationsFetchRejected) Type() string  { return "notifications/fetchNotifications/rejected" }
func (AllNotificationsRead) Type() string        { return "notifications/allNotificationsRead" }

func (PostsFetchPending) action()           {}
func (PostsFetchFulfilled) action()         {}
func (PostsFetchRejected) action()          {}
func (PostAdded) action()                   {}
func (PostUpdated) action()                 {}
func (ReactionAdded) action()               {}
func (UsersFetchPending) action()           {}
func (UsersFetchFulfilled) action()         {}
func (UsersFetchRejected) action()          {}
func (NotificationsFetchPending) action()   {}
func (NotificationsFetchFulfilled) action() {}
func (NotificationsFetchRejected) action()  {}
func (AllNotificationsRead) action()        {}

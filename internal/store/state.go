package store

import (
	"strings"

	"github.com/nhle/postboard/internal/entity"
	"github.com/nhle/postboard/internal/model"
)

// PostsState is the posts slice of the root state.
type PostsState struct {
	Items entity.Collection[model.Post]
	model.AsyncState
}

// UsersState is the users slice of the root state.
type UsersState struct {
	Items entity.Collection[model.User]
	model.AsyncState
}

// NotificationsState is the notifications slice of the root state.
type NotificationsState struct {
	Items entity.Collection[model.Notification]
	model.AsyncState
}

// State is the root application state. Values are immutable once
// published by the Store.
type State struct {
	Posts         PostsState
	Users         UsersState
	Notifications NotificationsState
}

// NewState returns the initial state: empty collections, all idle.
func NewState() State {
	return State{
		Posts: PostsState{
			Items:      entity.New(postOptions()),
			AsyncState: model.IdleState(),
		},
		Users: UsersState{
			Items:      entity.New(userOptions()),
			AsyncState: model.IdleState(),
		},
		Notifications: NotificationsState{
			Items:      entity.New(notificationOptions()),
			AsyncState: model.IdleState(),
		},
	}
}

// ByDateDesc orders two ISO-8601 UTC timestamps newest first. Plain string
// comparison is valid because the format is fixed-width and zero-padded.
func ByDateDesc(a, b string) int {
	return strings.Compare(b, a)
}

func postOptions() entity.Options[model.Post] {
	return entity.Options[model.Post]{
		ID:      func(p model.Post) string { return p.ID },
		Compare: func(a, b model.Post) int { return ByDateDesc(a.Date, b.Date) },
	}
}

func userOptions() entity.Options[model.User] {
	return entity.Options[model.User]{
		ID: func(u model.User) string { return u.ID },
		Compare: func(a, b model.User) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		},
	}
}

func notificationOptions() entity.Options[model.Notification] {
	return entity.Options[model.Notification]{
		ID:      func(n model.Notification) string { return n.ID },
		Compare: func(a, b model.Notification) int { return ByDateDesc(a.Date, b.Date) },
		// A notification read locally stays read when the server
		// sends it again.
		Merge: func(existing, incoming model.Notification) model.Notification {
			incoming.Read = existing.Read || incoming.Read
			incoming.IsNew = !incoming.Read
			return incoming
		},
	}
}

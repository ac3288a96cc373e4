package store

import (
	"github.com/nhle/postboard/internal/entity"
	"github.com/nhle/postboard/internal/model"
)

// Reduce returns the state that results from applying a to s. It has no
// side effects; s is left unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case PostsFetchPending:
		s.Posts.AsyncState = startLoading(s.Posts.AsyncState)
	case PostsFetchFulfilled:
		s.Posts.AsyncState = s.Posts.Succeeded()
		s.Posts.Items = s.Posts.Items.UpsertMany(a.Posts)
	case PostsFetchRejected:
		s.Posts.AsyncState = s.Posts.Failed(a.Err)
	case PostAdded:
		s.Posts.Items = s.Posts.Items.AddOne(a.Post)
	case PostUpdated:
		s.Posts.Items = s.Posts.Items.UpdateOne(a.ID, func(p model.Post) model.Post {
			p.Title = a.Title
			p.Content = a.Content
			return p
		})
	case ReactionAdded:
		if !a.Reaction.Valid() {
			break
		}
		s.Posts.Items = s.Posts.Items.UpdateOne(a.PostID, func(p model.Post) model.Post {
			p.Reactions = p.Reactions.Add(a.Reaction)
			return p
		})

	case UsersFetchPending:
		s.Users.AsyncState = startLoading(s.Users.AsyncState)
	case UsersFetchFulfilled:
		s.Users.AsyncState = s.Users.Succeeded()
		s.Users.Items = s.Users.Items.SetAll(a.Users)
	case UsersFetchRejected:
		s.Users.AsyncState = s.Users.Failed(a.Err)

	case NotificationsFetchPending:
		s.Notifications.AsyncState = startLoading(s.Notifications.AsyncState)
	case NotificationsFetchFulfilled:
		s.Notifications.AsyncState = s.Notifications.Succeeded()
		s.Notifications.Items = mergeNotifications(s.Notifications, a.Notifications)
	case NotificationsFetchRejected:
		s.Notifications.AsyncState = s.Notifications.Failed(a.Err)
	case AllNotificationsRead:
		s.Notifications.Items = s.Notifications.Items.UpdateAll(func(n model.Notification) model.Notification {
			n.Read = true
			return n
		})
	}
	return s
}

// startLoading moves a request into the loading state. A request that is
// already loading is left as is.
func startLoading(s model.AsyncState) model.AsyncState {
	if s.Status == model.StatusLoading {
		return s
	}
	return s.Loading()
}

// mergeNotifications flags previously unread entries as new and merges the
// incoming batch. Read flags set locally survive the merge.
func mergeNotifications(ns NotificationsState, incoming []model.Notification) entity.Collection[model.Notification] {
	items := ns.Items
	if items.Len() > 0 {
		items = items.UpdateAll(func(n model.Notification) model.Notification {
			n.IsNew = !n.Read
			return n
		})
	}
	batch := make([]model.Notification, len(incoming))
	for i, n := range incoming {
		n.IsNew = !n.Read
		batch[i] = n
	}
	return items.UpsertMany(batch)
}

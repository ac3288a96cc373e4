// Package api talks to the blog HTTP API: posts, users and notifications.
package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/postboard/internal/model"
)

// Backend is the set of remote calls the sync layer depends on.
type Backend interface {
	// GetPosts returns every post.
	GetPosts(ctx context.Context) ([]model.Post, error)

	// CreatePost stores a new post and returns it as saved by the server.
	CreatePost(ctx context.Context, p model.NewPost) (model.Post, error)

	// GetUsers returns every user.
	GetUsers(ctx context.Context) ([]model.User, error)

	// GetNotifications returns notifications newer than since. An empty
	// since asks for the initial batch.
	GetNotifications(ctx context.Context, since string) ([]model.Notification, error)
}

var _ Backend = (*Client)(nil)

// GetPosts fetches GET /posts.
func (c *Client) GetPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.Get(ctx, "/posts", &posts); err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	return posts, nil
}

// CreatePost sends POST /posts.
func (c *Client) CreatePost(ctx context.Context, p model.NewPost) (model.Post, error) {
	var created model.Post
	if err := c.Post(ctx, "/posts", p, &created); err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return created, nil
}

// GetUsers fetches GET /users.
func (c *Client) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.Get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// GetNotifications fetches GET /notifications?since=<since>.
func (c *Client) GetNotifications(ctx context.Context, since string) ([]model.Notification, error) {
	path := "/notifications?since=" + url.QueryEscape(since)

	var notifications []model.Notification
	if err := c.Get(ctx, path, &notifications); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}
	return notifications, nil
}

package model

import (
	"strings"
)

// Post is a blog entry authored by a user.
type Post struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`

	// Title is the headline shown in lists.
	Title string `json:"title"`

	// Content is the full post body.
	Content string `json:"content"`

	// User is the author's user ID. It is a reference only; the user
	// may not be loaded (or may not exist at all).
	User string `json:"user,omitempty"`

	// Date is the creation time as a fixed-width ISO-8601 UTC string.
	Date string `json:"date"`

	// Reactions holds one counter per reaction kind.
	Reactions Reactions `json:"reactions"`
}

// Excerpt returns at most n runes of the post content.
func (p Post) Excerpt(n int) string {
	r := []rune(p.Content)
	if len(r) <= n {
		return p.Content
	}
	return string(r[:n])
}

// NewPost holds the fields a client supplies when creating a post.
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	User    string `json:"user"`
}

// PostEdit holds the editable fields of an existing post.
type PostEdit struct {
	ID      string
	Title   string
	Content string
}

// ValidateNewPost checks the required fields of a new post.
func ValidateNewPost(p NewPost) error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(p.User) == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ValidatePostEdit checks the required fields of a post edit.
func ValidatePostEdit(e PostEdit) error {
	var missing []string
	if strings.TrimSpace(e.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(e.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/postboard/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/fakeApi/")
}

func TestGetPostsDecodesWireShape(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/fakeApi/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": "abc",
			"title": "Hello",
			"content": "World",
			"user": "u1",
			"date": "2024-03-01T12:00:00.000Z",
			"reactions": {"thumbsUp": 1, "hooray": 0, "heart": 2, "rocket": 0, "eyes": 0, "rabbit": 3}
		}]`))
	})

	posts, err := c.GetPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, model.Post{
		ID:        "abc",
		Title:     "Hello",
		Content:   "World",
		User:      "u1",
		Date:      "2024-03-01T12:00:00.000Z",
		Reactions: model.Reactions{ThumbsUp: 1, Heart: 2, Rabbit: 3},
	}, posts[0])
}

func TestCreatePostSendsJSONBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body model.NewPost
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, model.NewPost{Title: "T", Content: "C", User: "u1"}, body)

		_ = json.NewEncoder(w).Encode(model.Post{ID: "new", Title: body.Title, Content: body.Content, User: body.User})
	})

	p, err := c.CreatePost(context.Background(), model.NewPost{Title: "T", Content: "C", User: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
	assert.Equal(t, "u1", p.User)
}

func TestGetNotificationsPassesSince(t *testing.T) {
	const since = "2024-03-01T12:00:00.000Z"
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fakeApi/notifications", r.URL.Path)
		assert.Equal(t, since, r.URL.Query().Get("since"))
		_, _ = w.Write([]byte(`[{"id":"n1","date":"2024-03-02T00:00:00.000Z","message":"poked you","user":"u2"}]`))
	})

	ns, err := c.GetNotifications(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "poked you", ns[0].Message)
	assert.False(t, ns[0].Read)
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := c.GetUsers(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "fetching users")
	assert.Contains(t, err.Error(), "nope")
}

func TestBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetUsers(context.Background())
	assert.True(t, IsAuthError(err))

	users, err := NewClient(srv.URL, WithToken("secret")).GetUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMalformedJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.GetPosts(context.Background())
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).GetPosts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing request GET /posts")
}

func TestRateLimitHonoursContext(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	WithRateLimit(0.001)(c)

	_, err := c.GetUsers(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GetUsers(ctx)
	assert.Error(t, err)
}

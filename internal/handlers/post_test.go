package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/blogly/blogly/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Success(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")
	math, err := a.store.Tags.Create(context.Background(), "math", nil)
	require.NoError(t, err)

	w := a.get(fmt.Sprintf("/users/%d/posts/new", ada.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add post for Ada Lovelace")
	assert.Contains(t, w.Body.String(), `name="tags" value="`+strconv.Itoa(math.ID)+`"`)

	w = a.post(fmt.Sprintf("/users/%d/posts/new", ada.ID), url.Values{
		"title":   {"Notes"},
		"content": {"On the Analytical Engine"},
		"tags":    {strconv.Itoa(math.ID), "not-a-number"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/users/%d", ada.ID), w.Header().Get("Location"))

	user := a.get(fmt.Sprintf("/users/%d", ada.ID), flashCookie(t, w))
	assert.Equal(t, []string{"Post 'Notes' added."}, textByClass(t, user.Body.String(), "flash"))

	posts, err := a.store.Posts.ListByUser(context.Background(), ada.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, ada.ID, posts[0].UserID)
	assert.False(t, posts[0].CreatedAt.IsZero())

	post, err := a.store.Posts.Get(context.Background(), posts[0].ID)
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "math", post.Tags[0].Name)
}

func TestCreatePost_Validation(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")

	w := a.post(fmt.Sprintf("/users/%d/posts/new", ada.ID), url.Values{"title": {"Notes"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"Content is required"}, textByClass(t, w.Body.String(), "field-error"))
	assert.Contains(t, w.Body.String(), `value="Notes"`)
}

func TestCreatePost_UnknownUser(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusNotFound, a.get("/users/999999/posts/new").Code)
	w := a.post("/users/999999/posts/new", url.Values{"title": {"t"}, "content": {"c"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHome_ThreeMostRecent(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")

	for _, title := range []string{"one", "two", "three", "four"} {
		w := a.post(fmt.Sprintf("/users/%d/posts/new", ada.ID), url.Values{
			"title":   {title},
			"content": {title + " body"},
		})
		require.Equal(t, http.StatusSeeOther, w.Code)
	}

	w := a.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"four", "three", "two"}, textByClass(t, w.Body.String(), "post-title"))
}

func TestHome_Empty(t *testing.T) {
	a := newApp(t)

	w := a.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"No posts yet."}, textByClass(t, w.Body.String(), "empty"))
}

func TestShowPost(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")
	post, err := a.store.Posts.Create(context.Background(), ada.ID, "Notes", "On the Engine", nil)
	require.NoError(t, err)

	w := a.get(fmt.Sprintf("/posts/%d", post.ID))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, []string{"Notes"}, textByClass(t, body, "post-title"))
	assert.Equal(t, []string{"On the Engine"}, textByClass(t, body, "post-content"))
	assert.Contains(t, body, "Ada Lovelace")
}

func TestEditPost(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	ada := a.mustUser("Ada", "Lovelace")
	math, err := a.store.Tags.Create(ctx, "math", nil)
	require.NoError(t, err)
	history, err := a.store.Tags.Create(ctx, "history", nil)
	require.NoError(t, err)
	post, err := a.store.Posts.Create(ctx, ada.ID, "Notes", "On the Engine", []int{math.ID})
	require.NoError(t, err)

	w := a.get(fmt.Sprintf("/posts/%d/edit", post.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="`+strconv.Itoa(math.ID)+`" checked`)

	w = a.post(fmt.Sprintf("/posts/%d/edit", post.ID), url.Values{
		"title":   {"Notes, revised"},
		"content": {"Second draft"},
		"tags":    {strconv.Itoa(history.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/users/%d", ada.ID), w.Header().Get("Location"))
	flashCookie(t, w)

	got, err := a.store.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notes, revised", got.Title)
	assert.Equal(t, "Second draft", got.Content)
	assert.True(t, got.CreatedAt.Equal(post.CreatedAt))
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "history", got.Tags[0].Name)

	w = a.post(fmt.Sprintf("/posts/%d/edit", post.ID), url.Values{"title": {""}, "content": {"x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeletePost(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")
	post, err := a.store.Posts.Create(context.Background(), ada.ID, "Notes", "On the Engine", nil)
	require.NoError(t, err)

	w := a.post(fmt.Sprintf("/posts/%d/delete", post.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/users/%d", ada.ID), w.Header().Get("Location"))
	flashCookie(t, w)

	_, err = a.store.Posts.Get(context.Background(), post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, a.get(fmt.Sprintf("/posts/%d", post.ID)).Code)
}

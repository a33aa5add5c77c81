package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/blogly/blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *app) mustPost(userID int, title string) *models.Post {
	a.t.Helper()
	p, err := a.store.Posts.Create(context.Background(), userID, title, title+" body", nil)
	require.NoError(a.t, err)
	return p
}

func TestCreateTag_WithPosts(t *testing.T) {
	a := newApp(t)
	ada := a.mustUser("Ada", "Lovelace")
	p1 := a.mustPost(ada.ID, "Notes")
	p2 := a.mustPost(ada.ID, "Letters")

	w := a.get("/tags/new")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="posts" value="`+strconv.Itoa(p1.ID)+`"`)

	w = a.post("/tags/new", url.Values{
		"name":  {"history"},
		"posts": {strconv.Itoa(p1.ID), strconv.Itoa(p2.ID), "999999"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tags", w.Header().Get("Location"))

	list := a.get("/tags", flashCookie(t, w))
	require.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, []string{"history"}, textByClass(t, list.Body.String(), "tag-name"))
	assert.Equal(t, []string{"Tag 'history' added."}, textByClass(t, list.Body.String(), "flash"))

	tags, err := a.store.Tags.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)

	detail := a.get(fmt.Sprintf("/tags/%d", tags[0].ID))
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Equal(t, []string{"Letters", "Notes"}, textByClass(t, detail.Body.String(), "post-title"))
}

func TestCreateTag_DuplicateName(t *testing.T) {
	a := newApp(t)

	w := a.post("/tags/new", url.Values{"name": {"go"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = a.post("/tags/new", url.Values{"name": {"go"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"A tag named 'go' already exists"}, textByClass(t, w.Body.String(), "field-error"))

	tags, err := a.store.Tags.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestCreateTag_MissingName(t *testing.T) {
	a := newApp(t)

	w := a.post("/tags/new", url.Values{"name": {"   "}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"Name is required"}, textByClass(t, w.Body.String(), "field-error"))
}

func TestEditTag(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	ada := a.mustUser("Ada", "Lovelace")
	p1 := a.mustPost(ada.ID, "Notes")
	p2 := a.mustPost(ada.ID, "Letters")
	_, err := a.store.Tags.Create(ctx, "math", nil)
	require.NoError(t, err)
	tag, err := a.store.Tags.Create(ctx, "histroy", []int{p1.ID})
	require.NoError(t, err)

	w := a.get(fmt.Sprintf("/tags/%d/edit", tag.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="`+strconv.Itoa(p1.ID)+`" checked`)

	w = a.post(fmt.Sprintf("/tags/%d/edit", tag.ID), url.Values{"name": {"math"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"A tag named 'math' already exists"}, textByClass(t, w.Body.String(), "field-error"))

	w = a.post(fmt.Sprintf("/tags/%d/edit", tag.ID), url.Values{
		"name":  {"history"},
		"posts": {strconv.Itoa(p2.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/tags/%d", tag.ID), w.Header().Get("Location"))

	got, err := a.store.Tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "history", got.Name)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, p2.ID, got.Posts[0].ID)
}

func TestDeleteTag(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	ada := a.mustUser("Ada", "Lovelace")
	post := a.mustPost(ada.ID, "Notes")
	tag, err := a.store.Tags.Create(ctx, "math", []int{post.ID})
	require.NoError(t, err)

	w := a.post(fmt.Sprintf("/tags/%d/delete", tag.ID), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tags", w.Header().Get("Location"))
	flashCookie(t, w)

	assert.Equal(t, http.StatusNotFound, a.get(fmt.Sprintf("/tags/%d", tag.ID)).Code)

	ids, err := a.store.PostTags.TagIDsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, err := a.store.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notes", got.Title)
	assert.Equal(t, "Notes body", got.Content)
	assert.Equal(t, ada.ID, got.UserID)
}

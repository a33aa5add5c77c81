package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/blogly/blogly/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreate(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	ada := mustUser(t, s, "Ada", "Lovelace")
	math := mustTag(t, s, "math")

	before := clock.t
	post, err := s.Posts.Create(ctx, ada.ID, "Notes", "On the Analytical Engine", []int{math.ID, 424242})
	require.NoError(t, err)
	assert.Equal(t, ada.ID, post.UserID)
	assert.True(t, post.CreatedAt.After(before))

	got, err := s.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notes", got.Title)
	assert.Equal(t, "On the Analytical Engine", got.Content)
	assert.True(t, got.CreatedAt.Equal(post.CreatedAt))
	require.NotNil(t, got.User)
	assert.Equal(t, "Ada Lovelace", got.User.FullName())
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "math", got.Tags[0].Name)
}

func TestPostCreateUnknownUser(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Posts.Create(context.Background(), 999999, "Title", "Body", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	posts, err := s.Posts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRecent(t *testing.T) {
	s, _ := newTestStore(t)
	ada := mustUser(t, s, "Ada", "Lovelace")

	for _, title := range []string{"first", "second", "third", "fourth"} {
		mustPost(t, s, ada.ID, title)
	}

	posts, err := s.Posts.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "fourth", posts[0].Title)
	assert.Equal(t, "third", posts[1].Title)
	assert.Equal(t, "second", posts[2].Title)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, ada.ID, posts[0].User.ID)
}

func TestPostUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ada := mustUser(t, s, "Ada", "Lovelace")
	math := mustTag(t, s, "math")
	history := mustTag(t, s, "history")
	post := mustPost(t, s, ada.ID, "Notes", math.ID)

	updated, err := s.Posts.Update(ctx, post.ID, "Notes, revised", "New body", []int{history.ID})
	require.NoError(t, err)
	assert.Equal(t, "Notes, revised", updated.Title)

	got, err := s.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New body", got.Content)
	assert.WithinDuration(t, post.CreatedAt, got.CreatedAt, time.Millisecond)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "history", got.Tags[0].Name)

	_, err = s.Posts.Update(ctx, 999999, "x", "y", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ada := mustUser(t, s, "Ada", "Lovelace")
	math := mustTag(t, s, "math")
	post := mustPost(t, s, ada.ID, "Notes", math.ID)

	deleted, err := s.Posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, deleted.UserID)

	_, err = s.Posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	tag, err := s.Tags.Get(ctx, math.ID)
	require.NoError(t, err)
	assert.Empty(t, tag.Posts)

	_, err = s.Posts.Delete(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

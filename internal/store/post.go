package store

import (
	"context"
	"fmt"

	"github.com/blogly/blogly/internal/models"
)

type PostStore struct {
	s *Store
}

// Recent returns the newest limit posts with their authors.
func (r *PostStore) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.s.conn(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return posts, nil
}

// List returns every post, newest first.
func (r *PostStore) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.s.conn(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostStore) ListByUser(ctx context.Context, userID int) ([]models.Post, error) {
	var posts []models.Post
	err := r.s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("posts of user %d: %w", userID, err)
	}
	return posts, nil
}

// ListByTag returns the posts linked to tagID, newest first.
func (r *PostStore) ListByTag(ctx context.Context, tagID int) ([]models.Post, error) {
	var posts []models.Post
	err := r.s.conn(ctx).
		Joins("JOIN posts_tags ON posts_tags.post_id = posts.id").
		Where("posts_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("posts of tag %d: %w", tagID, err)
	}
	return posts, nil
}

// FindByIDs resolves ids to posts. Unknown ids are skipped.
func (r *PostStore) FindByIDs(ctx context.Context, ids []int) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.s.conn(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return posts, nil
}

// Get loads a post with its author and tags.
func (r *PostStore) Get(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.s.conn(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, notFound(err))
	}
	tags, err := r.s.Tags.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return &post, nil
}

// Create adds a post owned by userID and links it to the existing tags among
// tagIDs. It returns ErrNotFound when the user does not exist.
func (r *PostStore) Create(ctx context.Context, userID int, title, content string, tagIDs []int) (*models.Post, error) {
	post := &models.Post{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: r.s.now(),
	}
	err := r.s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Users.Get(ctx, userID); err != nil {
			return err
		}
		if err := tx.conn(ctx).Create(post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		tags, err := tx.Tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if err := tx.PostTags.Add(ctx, post.ID, tagIDsOf(tags)...); err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update overwrites title and content and replaces the tag set. The creation
// time is not touched.
func (r *PostStore) Update(ctx context.Context, id int, title, content string, tagIDs []int) (*models.Post, error) {
	var post *models.Post
	err := r.s.Transaction(ctx, func(tx *Store) error {
		var p models.Post
		if err := tx.conn(ctx).First(&p, id).Error; err != nil {
			return fmt.Errorf("get post %d: %w", id, notFound(err))
		}
		p.Title = title
		p.Content = content
		err := tx.conn(ctx).
			Model(&p).
			Select("title", "content").
			Updates(&p).Error
		if err != nil {
			return fmt.Errorf("update post %d: %w", id, err)
		}
		tags, err := tx.Tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if err := tx.PostTags.ReplaceForPost(ctx, id, tagIDsOf(tags)); err != nil {
			return err
		}
		p.Tags = tags
		post = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and its tag links and returns the removed row so the
// caller knows which user owned it.
func (r *PostStore) Delete(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).First(&post, id).Error; err != nil {
			return fmt.Errorf("get post %d: %w", id, notFound(err))
		}
		if err := tx.PostTags.DeleteByPost(ctx, id); err != nil {
			return err
		}
		if err := tx.conn(ctx).Delete(&post).Error; err != nil {
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func postIDsOf(posts []models.Post) []int {
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

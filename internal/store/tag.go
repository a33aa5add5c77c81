package store

import (
	"context"
	"fmt"

	"github.com/blogly/blogly/internal/db"
	"github.com/blogly/blogly/internal/models"
)

type TagStore struct {
	s *Store
}

func (r *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.s.conn(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagStore) ListByPost(ctx context.Context, postID int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.s.conn(ctx).
		Joins("JOIN posts_tags ON posts_tags.tag_id = tags.id").
		Where("posts_tags.post_id = ?", postID).
		Order("tags.name").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("tags of post %d: %w", postID, err)
	}
	return tags, nil
}

// FindByIDs resolves ids to tags. Unknown ids are skipped.
func (r *TagStore) FindByIDs(ctx context.Context, ids []int) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.s.conn(ctx).Where("id IN ?", ids).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return tags, nil
}

// Get loads a tag with its posts.
func (r *TagStore) Get(ctx context.Context, id int) (*models.Tag, error) {
	var tag models.Tag
	if err := r.s.conn(ctx).First(&tag, id).Error; err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, notFound(err))
	}
	posts, err := r.s.Posts.ListByTag(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.Posts = posts
	return &tag, nil
}

// Create adds a tag linked to the existing posts among postIDs. It returns
// ErrDuplicateTagName when another tag already has the name.
func (r *TagStore) Create(ctx context.Context, name string, postIDs []int) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	err := r.s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Tags.checkName(ctx, name, 0); err != nil {
			return err
		}
		if err := tx.conn(ctx).Create(tag).Error; err != nil {
			return tagWriteError("create tag", err)
		}
		posts, err := tx.Posts.FindByIDs(ctx, postIDs)
		if err != nil {
			return err
		}
		if err := tx.PostTags.ReplaceForTag(ctx, tag.ID, postIDsOf(posts)); err != nil {
			return err
		}
		tag.Posts = posts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// Update renames the tag and replaces its post set.
func (r *TagStore) Update(ctx context.Context, id int, name string, postIDs []int) (*models.Tag, error) {
	var tag models.Tag
	err := r.s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).First(&tag, id).Error; err != nil {
			return fmt.Errorf("get tag %d: %w", id, notFound(err))
		}
		if err := tx.Tags.checkName(ctx, name, id); err != nil {
			return err
		}
		tag.Name = name
		if err := tx.conn(ctx).Model(&tag).Update("name", name).Error; err != nil {
			return tagWriteError(fmt.Sprintf("update tag %d", id), err)
		}
		posts, err := tx.Posts.FindByIDs(ctx, postIDs)
		if err != nil {
			return err
		}
		if err := tx.PostTags.ReplaceForTag(ctx, id, postIDsOf(posts)); err != nil {
			return err
		}
		tag.Posts = posts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes the tag's links and then the tag. Posts are kept.
func (r *TagStore) Delete(ctx context.Context, id int) error {
	return r.s.Transaction(ctx, func(tx *Store) error {
		var tag models.Tag
		if err := tx.conn(ctx).First(&tag, id).Error; err != nil {
			return fmt.Errorf("get tag %d: %w", id, notFound(err))
		}
		if err := tx.PostTags.DeleteByTag(ctx, id); err != nil {
			return err
		}
		if err := tx.conn(ctx).Delete(&tag).Error; err != nil {
			return fmt.Errorf("delete tag %d: %w", id, err)
		}
		return nil
	})
}

// checkName fails with ErrDuplicateTagName when a tag other than exceptID
// already uses name.
func (r *TagStore) checkName(ctx context.Context, name string, exceptID int) error {
	var count int64
	err := r.s.conn(ctx).
		Model(&models.Tag{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check tag name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("tag %q: %w", name, ErrDuplicateTagName)
	}
	return nil
}

func tagWriteError(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateTagName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func tagIDsOf(tags []models.Tag) []int {
	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

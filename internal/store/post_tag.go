package store

import (
	"context"
	"fmt"

	"github.com/blogly/blogly/internal/models"

	"gorm.io/gorm/clause"
)

// PostTagStore owns the posts_tags join table. Nothing else writes to it, and
// nothing relies on the database to cascade deletes into it.
type PostTagStore struct {
	s *Store
}

// Add links postID to every tag in tagIDs. Existing links are left alone.
func (r *PostTagStore) Add(ctx context.Context, postID int, tagIDs ...int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.PostTag{PostID: postID, TagID: tagID})
	}
	err := r.s.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("link post %d to tags: %w", postID, err)
	}
	return nil
}

// Remove unlinks postID from the given tags.
func (r *PostTagStore) Remove(ctx context.Context, postID int, tagIDs ...int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	err := r.s.conn(ctx).
		Where("post_id = ? AND tag_id IN ?", postID, tagIDs).
		Delete(&models.PostTag{}).Error
	if err != nil {
		return fmt.Errorf("unlink post %d from tags: %w", postID, err)
	}
	return nil
}

// ReplaceForPost makes tagIDs the complete tag set of postID.
func (r *PostTagStore) ReplaceForPost(ctx context.Context, postID int, tagIDs []int) error {
	if err := r.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	return r.Add(ctx, postID, tagIDs...)
}

// ReplaceForTag makes postIDs the complete post set of tagID.
func (r *PostTagStore) ReplaceForTag(ctx context.Context, tagID int, postIDs []int) error {
	if err := r.DeleteByTag(ctx, tagID); err != nil {
		return err
	}
	if len(postIDs) == 0 {
		return nil
	}
	rows := make([]models.PostTag, 0, len(postIDs))
	for _, postID := range postIDs {
		rows = append(rows, models.PostTag{PostID: postID, TagID: tagID})
	}
	err := r.s.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("link tag %d to posts: %w", tagID, err)
	}
	return nil
}

func (r *PostTagStore) DeleteByPost(ctx context.Context, postIDs ...int) error {
	if len(postIDs) == 0 {
		return nil
	}
	err := r.s.conn(ctx).
		Where("post_id IN ?", postIDs).
		Delete(&models.PostTag{}).Error
	if err != nil {
		return fmt.Errorf("unlink posts %v: %w", postIDs, err)
	}
	return nil
}

func (r *PostTagStore) DeleteByTag(ctx context.Context, tagID int) error {
	err := r.s.conn(ctx).
		Where("tag_id = ?", tagID).
		Delete(&models.PostTag{}).Error
	if err != nil {
		return fmt.Errorf("unlink tag %d: %w", tagID, err)
	}
	return nil
}

func (r *PostTagStore) TagIDsForPost(ctx context.Context, postID int) ([]int, error) {
	var ids []int
	err := r.s.conn(ctx).
		Model(&models.PostTag{}).
		Where("post_id = ?", postID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("tags of post %d: %w", postID, err)
	}
	return ids, nil
}

func (r *PostTagStore) PostIDsForTag(ctx context.Context, tagID int) ([]int, error) {
	var ids []int
	err := r.s.conn(ctx).
		Model(&models.PostTag{}).
		Where("tag_id = ?", tagID).
		Order("post_id").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("posts of tag %d: %w", tagID, err)
	}
	return ids, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/blogly/blogly/internal/models"
)

type UserStore struct {
	s *Store
}

// List returns every user ordered by last name, then first name.
func (r *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.s.conn(ctx).
		Order("last_name").
		Order("first_name").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserStore) Get(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, notFound(err))
	}
	return &user, nil
}

// GetWithPosts loads the user and their posts, newest first.
func (r *UserStore) GetWithPosts(ctx context.Context, id int) (*models.User, error) {
	user, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := r.s.Posts.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Posts = posts
	return user, nil
}

// Create inserts a user. A blank ImageURL becomes models.DefaultImageURL.
func (r *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := r.s.conn(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateName overwrites the first and last name. The image URL is kept.
func (r *UserStore) UpdateName(ctx context.Context, id int, firstName, lastName string) (*models.User, error) {
	var user *models.User
	err := r.s.Transaction(ctx, func(tx *Store) error {
		var err error
		user, err = tx.Users.Get(ctx, id)
		if err != nil {
			return err
		}
		user.FirstName = firstName
		user.LastName = lastName
		err = tx.conn(ctx).
			Model(user).
			Select("first_name", "last_name").
			Updates(user).Error
		if err != nil {
			return fmt.Errorf("update user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user along with their posts and those posts' tag links.
func (r *UserStore) Delete(ctx context.Context, id int) error {
	return r.s.Transaction(ctx, func(tx *Store) error {
		user, err := tx.Users.Get(ctx, id)
		if err != nil {
			return err
		}

		var postIDs []int
		err = tx.conn(ctx).
			Model(&models.Post{}).
			Where("user_id = ?", id).
			Pluck("id", &postIDs).Error
		if err != nil {
			return fmt.Errorf("posts of user %d: %w", id, err)
		}

		if err := tx.PostTags.DeleteByPost(ctx, postIDs...); err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.conn(ctx).Delete(&models.Post{}, postIDs).Error; err != nil {
				return fmt.Errorf("delete posts of user %d: %w", id, err)
			}
		}
		if err := tx.conn(ctx).Delete(user).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
}

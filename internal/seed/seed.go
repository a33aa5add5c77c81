// Package seed fills an empty database with a few users, posts and tags.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogly/blogly/internal/models"
	"github.com/blogly/blogly/internal/store"

	"go.uber.org/zap"
)

// ErrNotEmpty is returned when the database already has users.
var ErrNotEmpty = errors.New("database already has users")

type post struct {
	title   string
	content string
	tags    []string
}

type user struct {
	first, last, image string
	posts              []post
}

var demoTags = []string{"fun", "history", "math", "programming"}

var demoUsers = []user{
	{
		first: "Ada", last: "Lovelace",
		posts: []post{
			{"Notes on the Analytical Engine", "The engine weaves algebraic patterns just as the Jacquard loom weaves flowers and leaves.", []string{"math", "programming"}},
			{"Bernoulli numbers", "Note G walks through computing Bernoulli numbers on the engine.", []string{"math"}},
		},
	},
	{
		first: "Grace", last: "Hopper", image: "https://upload.wikimedia.org/wikipedia/commons/a/ad/Commodore_Grace_M._Hopper%2C_USN_%28covered%29.jpg",
		posts: []post{
			{"First actual bug", "Relay #70, panel F. Moth in relay.", []string{"fun", "history"}},
		},
	},
	{
		first: "Alan", last: "Turing",
		posts: []post{
			{"On computable numbers", "The computable numbers may be described briefly as the real numbers whose expressions as a decimal are calculable by finite means.", []string{"math"}},
		},
	},
}

// Run inserts the demo data. It refuses to touch a database that already has
// users unless force is set.
func Run(ctx context.Context, s *store.Store, force bool, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	existing, err := s.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !force {
		return ErrNotEmpty
	}

	return s.Transaction(ctx, func(tx *store.Store) error {
		tagIDs := make(map[string]int, len(demoTags))
		all, err := tx.Tags.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range all {
			tagIDs[t.Name] = t.ID
		}
		for _, name := range demoTags {
			if _, ok := tagIDs[name]; ok {
				continue
			}
			tag, err := tx.Tags.Create(ctx, name, nil)
			if err != nil {
				return fmt.Errorf("seed tag %s: %w", name, err)
			}
			tagIDs[name] = tag.ID
		}

		for _, u := range demoUsers {
			record := &models.User{FirstName: u.first, LastName: u.last, ImageURL: u.image}
			if err := tx.Users.Create(ctx, record); err != nil {
				return fmt.Errorf("seed user %s: %w", u.last, err)
			}
			for _, p := range u.posts {
				ids := make([]int, 0, len(p.tags))
				for _, name := range p.tags {
					ids = append(ids, tagIDs[name])
				}
				if _, err := tx.Posts.Create(ctx, record.ID, p.title, p.content, ids); err != nil {
					return fmt.Errorf("seed post %q: %w", p.title, err)
				}
			}
			log.Info("seeded user", zap.String("name", record.FullName()), zap.Int("posts", len(u.posts)))
		}
		return nil
	})
}

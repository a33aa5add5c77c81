// Package store is the data-access layer. A Store is built once from a
// *gorm.DB and handed to the HTTP handlers; every call takes the request
// context so the session lives no longer than the request.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateTagName = errors.New("tag name already exists")
)

type Store struct {
	db  *gorm.DB
	now func() time.Time

	Users    *UserStore
	Posts    *PostStore
	Tags     *TagStore
	PostTags *PostTagStore
}

type Option func(*Store)

// WithClock overrides the clock used for post timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := newStore(db, func() time.Time { return time.Now().UTC() })
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newStore(db *gorm.DB, now func() time.Time) *Store {
	s := &Store{db: db, now: now}
	s.Users = &UserStore{s: s}
	s.Posts = &PostStore{s: s}
	s.Tags = &TagStore{s: s}
	s.PostTags = &PostTagStore{s: s}
	return s
}

// Transaction runs fn against a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStore(tx, s.now))
	})
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

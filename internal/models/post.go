package models

import "time"

type Post struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"not null;index"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	User      *User     `gorm:"foreignKey:UserID"`
	Tags      []Tag     `gorm:"-"`
}

// PostTag is a row of the posts_tags join table. Rows are written and removed
// only through store.PostTagStore.
type PostTag struct {
	PostID int   `gorm:"primaryKey;autoIncrement:false"`
	TagID  int   `gorm:"primaryKey;autoIncrement:false;index"`
	Post   *Post `gorm:"foreignKey:PostID"`
	Tag    *Tag  `gorm:"foreignKey:TagID"`
}

func (PostTag) TableName() string {
	return "posts_tags"
}

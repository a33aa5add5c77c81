package models

import "gorm.io/gorm"

// DefaultImageURL is stored when a user is created without a picture.
const DefaultImageURL = "https://yt3.ggpht.com/-_fExgATRXLY/AAAAAAAAAAI/AAAAAAAAAAA/-fmo8LhN7Pg/s240-c-k-no-rj-c0xffffff/photo.jpg"

type User struct {
	ID        int    `gorm:"primaryKey"`
	FirstName string `gorm:"type:text;not null"`
	LastName  string `gorm:"type:text;not null"`
	ImageURL  string `gorm:"type:text;not null"`
	Posts     []Post `gorm:"-"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
	return nil
}

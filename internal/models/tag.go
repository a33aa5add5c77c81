package models

type Tag struct {
	ID    int    `gorm:"primaryKey"`
	Name  string `gorm:"type:text;not null;uniqueIndex"`
	Posts []Post `gorm:"-"`
}

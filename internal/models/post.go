package models

import (
	"time"
)

// Post represents an authored post in the Murmur application.
// UserID is set from the authenticated requester at creation time and is
// never taken from client input.
type Post struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"size:200;not null" json:"title"`
	Content         string `gorm:"type:text;not null" json:"content"`
	PublicationYear int    `gorm:"not null;index" json:"publication_year"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	User            User   `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

package models

import "time"

// Token is an opaque bearer credential bound to exactly one user.
// The unique index on UserID guarantees at most one live token per user;
// the unique index on Key guarantees a key resolves to exactly one user.
type Token struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"size:64;not null;uniqueIndex" json:"key"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Token) TableName() string {
	return "auth_tokens"
}

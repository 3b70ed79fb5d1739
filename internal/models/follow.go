package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FolloweeID. The composite unique index makes duplicate edges impossible at
// the storage layer, so two concurrent follow calls for the same pair resolve
// to one insert and one constraint violation.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

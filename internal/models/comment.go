package models

import "time"

// Comment represents a comment row. ParentID is stored in the comment_id
// column; a nil parent marks a root comment. A parent, when present, must
// belong to the same post; that is enforced before insert, never re-checked
// here.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	ParentID  *uint     `gorm:"column:comment_id" json:"comment_id,omitempty"`
	Body      string    `gorm:"size:500;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps Comment onto the fixed schema.
func (Comment) TableName() string { return "post_comments" }

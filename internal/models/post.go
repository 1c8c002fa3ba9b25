package models

import "time"

// Post represents a post row. Topic associations live in the relationship
// table and are created atomically with the post.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps Post onto the fixed schema.
func (Post) TableName() string { return "posts" }

// PostTopic is a row in the post/topic relationship table.
type PostTopic struct {
	PostID  uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TopicID uint `gorm:"primaryKey;autoIncrement:false" json:"topic_id"`
}

// TableName maps PostTopic onto the fixed schema.
func (PostTopic) TableName() string { return "posts_topics_relationship" }

// SavedPost is a (user, post) bookmark pair. The pair is unique; inserts are
// idempotent and deletes unconditional.
type SavedPost struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
}

// TableName maps SavedPost onto the fixed schema.
func (SavedPost) TableName() string { return "saved_posts" }

// PostResponse is the assembled record for post listings and single-post
// reads. Saved is present only when the viewer is authenticated.
type PostResponse struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	AuthorID   uint       `json:"author_id"`
	AuthorName string     `json:"author_name"`
	CreatedAt  time.Time  `json:"created_at"`
	Topics     []TopicRef `json:"topics"`
	Comments   int64      `json:"comments"`
	Saves      int64      `json:"saves"`
	Saved      *bool      `json:"saved,omitempty"`
}

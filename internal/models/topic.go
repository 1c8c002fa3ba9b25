package models

import (
	"math/rand"
	"time"
)

// Topic represents a topical tag. Names are stored normalized (see
// validation.NormalizeTopic); the color is assigned once at first creation
// and kept on conflict.
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"size:20;not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps Topic onto the fixed schema.
func (Topic) TableName() string { return "topics" }

// TopicColors is the palette a new topic's color is drawn from.
var TopicColors = []string{"red", "orange", "green", "teal", "blue", "purple"}

// RandomTopicColor picks a palette color uniformly at random.
func RandomTopicColor() string {
	return TopicColors[rand.Intn(len(TopicColors))]
}

// TopicRef is the (name, color) pair embedded in post responses and the
// trending listing.
type TopicRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

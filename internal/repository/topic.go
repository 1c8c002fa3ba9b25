package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// TopicRepository defines the interface for topic discovery reads.
type TopicRepository interface {
	Trending(ctx context.Context, window string, limit int) ([]models.TopicRef, error)
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

// trendingQuery ranks topics by how many posts used them inside the trailing
// window.
const trendingQuery = `SELECT t.name, t.color
FROM posts_topics_relationship r
INNER JOIN posts p ON p.id = r.post_id
INNER JOIN topics t ON t.id = r.topic_id
WHERE now() - p.created_at < ?::interval
GROUP BY t.id
ORDER BY COUNT(r.topic_id) DESC, t.name ASC
LIMIT ?`

func (r *topicRepository) Trending(ctx context.Context, window string, limit int) ([]models.TopicRef, error) {
	var topics []models.TopicRef
	err := cache.Aside(ctx, cache.TrendingTopicsKey, &topics, cache.TrendingTTL, func() error {
		rows, err := r.db.WithContext(ctx).Raw(trendingQuery, window, limit).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		topics = []models.TopicRef{}
		for rows.Next() {
			var ref models.TopicRef
			if err := rows.Scan(&ref.Name, &ref.Color); err != nil {
				return conversionError("topic")
			}
			topics = append(topics, ref)
		}
		return rows.Err()
	})
	return topics, err
}

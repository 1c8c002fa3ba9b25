package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/repository"
)

// Trending discovery parameters. Topics are ranked by how many posts used
// them in the trailing window.
const (
	trendingWindow = "48 hours"
	trendingLimit  = 7
)

// TopicService executes topic discovery commands.
type TopicService struct {
	topics repository.TopicRepository
}

// NewTopicService creates a new TopicService.
func NewTopicService(topics repository.TopicRepository) *TopicService {
	return &TopicService{topics: topics}
}

// FetchTrending has no parameters; the window and limit are fixed.
type FetchTrending struct{}

func (p *FetchTrending) Check() *models.FieldError { return nil }

func (s *TopicService) Trending(ctx context.Context, cmd pipeline.Command[*FetchTrending]) ([]models.TopicRef, error) {
	return s.topics.Trending(ctx, trendingWindow, trendingLimit)
}

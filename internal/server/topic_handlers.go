package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTrendingTopics handles GET /api/topics/trending.
func (s *Server) GetTrendingTopics(c *fiber.Ctx) error {
	cmd, err := runAnonymous(c, s.db, &service.FetchTrending{})
	if err != nil {
		return nil
	}

	topics, err := s.topicService.Trending(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Topics not found")
	}
	return models.RespondData(c, topics)
}

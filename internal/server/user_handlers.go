package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:userId.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "userId", "user")
	if err != nil {
		return nil
	}

	cmd, err := runAnonymous(c, s.db, &service.FetchUser{UserID: id})
	if err != nil {
		return nil
	}

	profile, err := s.userService.Profile(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return models.RespondData(c, profile)
}

// GetUserPosts handles GET /api/users/:userId/posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "userId", "user")
	if err != nil {
		return nil
	}

	cmd, err := runAnonymous(c, s.db, &service.FetchUserPosts{UserID: id})
	if err != nil {
		return nil
	}

	posts, err := s.postService.ByAuthor(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return models.RespondData(c, posts)
}

// GetUserSaves handles GET /api/users/:userId/saves.
func (s *Server) GetUserSaves(c *fiber.Ctx) error {
	id, err := parseID(c, "userId", "user")
	if err != nil {
		return nil
	}

	cmd, err := runAnonymous(c, s.db, &service.FetchUserPosts{UserID: id})
	if err != nil {
		return nil
	}

	posts, err := s.postService.SavedBy(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return models.RespondData(c, posts)
}

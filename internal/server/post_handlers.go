package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. Anonymous and signed-in callers share the
// route; the viewer only changes whether posts carry the saved flag.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	payload := &service.FetchPosts{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	cmd, err := runAnonymous(c, s.db, payload)
	if err != nil {
		return nil
	}

	posts, err := s.postService.List(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return models.RespondData(c, posts)
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	payload := new(service.CreatePost)
	if err := c.BodyParser(payload); err != nil {
		return models.RespondError(c, fiber.StatusBadRequest,
			models.NewFieldError("", "Invalid request body"))
	}

	cmd, err := runAuthed(c, s.db, payload)
	if err != nil {
		return nil
	}

	id, err := s.postService.Create(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return c.Status(fiber.StatusCreated).JSON(models.Envelope{
		Success: true,
		Data:    fiber.Map{"id": id},
	})
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "post")
	if err != nil {
		return nil
	}

	cmd, err := runAnonymous(c, s.db, &service.FetchPost{ID: id})
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return models.RespondData(c, post)
}

// SavePost handles POST /api/posts/:id/save. Saving an already-saved post
// succeeds without effect.
func (s *Server) SavePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "post")
	if err != nil {
		return nil
	}

	cmd, err := runAuthed(c, s.db, &service.SavePost{PostID: id})
	if err != nil {
		return nil
	}

	if err := s.postService.Save(c.UserContext(), cmd); err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return models.RespondOK(c)
}

// UnsavePost handles DELETE /api/posts/:id/save.
func (s *Server) UnsavePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "post")
	if err != nil {
		return nil
	}

	cmd, err := runAuthed(c, s.db, &service.SavePost{PostID: id})
	if err != nil {
		return nil
	}

	if err := s.postService.Unsave(c.UserContext(), cmd); err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return models.RespondOK(c)
}

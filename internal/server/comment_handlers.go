package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments. The optional sort query
// selects the sibling order applied at every nesting level.
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "post")
	if err != nil {
		return nil
	}

	payload := &service.FetchComments{PostID: id, Sort: c.Query("sort")}
	cmd, err := runAnonymous(c, s.db, payload)
	if err != nil {
		return nil
	}

	tree, err := s.commentService.Thread(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return models.RespondData(c, tree)
}

// CreateComment handles POST /api/posts/:id/comments. A comment_id in the
// body makes the new comment a reply to that comment.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "post")
	if err != nil {
		return nil
	}

	payload := new(service.CreateComment)
	if err := c.BodyParser(payload); err != nil {
		return models.RespondError(c, fiber.StatusBadRequest,
			models.NewFieldError("", "Invalid request body"))
	}
	payload.PostID = id

	cmd, err := runAuthed(c, s.db, payload)
	if err != nil {
		return nil
	}

	commentID, err := s.commentService.Create(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "Post not found")
	}
	return c.Status(fiber.StatusCreated).JSON(models.Envelope{
		Success: true,
		Data:    fiber.Map{"id": commentID},
	})
}

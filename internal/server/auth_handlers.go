package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Verify handles GET /api/auth. It echoes the caller's identity so clients
// can confirm a stored token is still valid; an anonymous caller gets a
// plain unsuccessful envelope, not an error.
func (s *Server) Verify(c *fiber.Ctx) error {
	caller := middleware.IdentityFromCtx(c)
	if caller == nil {
		return c.JSON(models.Envelope{Success: false})
	}
	return models.RespondData(c, fiber.Map{
		"id":       caller.ID,
		"username": caller.Username,
	})
}

// SignUp handles POST /api/auth/sign-up.
func (s *Server) SignUp(c *fiber.Ctx) error {
	payload := new(service.CreateAccount)
	if err := c.BodyParser(payload); err != nil {
		return models.RespondError(c, fiber.StatusBadRequest,
			models.NewFieldError("", "Invalid request body"))
	}

	cmd, err := runAnonymous(c, s.db, payload)
	if err != nil {
		return nil
	}

	result, err := s.accountService.CreateAccount(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return c.Status(fiber.StatusCreated).JSON(models.Envelope{Success: true, Data: result})
}

// Login handles POST /api/auth.
func (s *Server) Login(c *fiber.Ctx) error {
	payload := new(service.Login)
	if err := c.BodyParser(payload); err != nil {
		return models.RespondError(c, fiber.StatusBadRequest,
			models.NewFieldError("", "Invalid request body"))
	}

	cmd, err := runAnonymous(c, s.db, payload)
	if err != nil {
		return nil
	}

	result, err := s.accountService.Login(c.UserContext(), cmd)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}
	return models.RespondData(c, result)
}

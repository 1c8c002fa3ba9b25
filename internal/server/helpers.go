package server

import (
	"errors"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/pipeline"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten signals that a helper already committed the HTTP
// response. Handlers seeing it must return nil so Fiber's error handler does
// not overwrite the body.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive id. On failure it writes
// a 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondError(c, fiber.StatusBadRequest,
			models.NewFieldError("id", "Invalid "+label+" id"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// runAnonymous pushes a payload through the pipeline without requiring a
// caller. When an identity is present it is still attached, so reads can be
// viewer-aware. On failure the response is already written.
func runAnonymous[P pipeline.Payload](c *fiber.Ctx, db *gorm.DB, payload P) (pipeline.Command[P], error) {
	bound, err := pipeline.NewRequest(payload).Bind(db)
	if err != nil {
		_ = models.RespondError(c, fiber.StatusServiceUnavailable, err)
		return pipeline.Command[P]{}, errResponseWritten
	}

	var (
		cmd  pipeline.Command[P]
		ferr *models.FieldError
	)
	if authed, err := bound.Authenticate(middleware.IdentityFromCtx(c)); err == nil {
		cmd, ferr = authed.Validate(c.UserContext())
	} else {
		cmd, ferr = bound.Validate(c.UserContext())
	}

	if ferr != nil {
		_ = models.RespondError(c, fiber.StatusBadRequest, ferr)
		return pipeline.Command[P]{}, errResponseWritten
	}
	return cmd, nil
}

// runAuthed pushes a payload through the pipeline, rejecting anonymous
// callers with a re-auth response. On failure the response is already
// written.
func runAuthed[P pipeline.Payload](c *fiber.Ctx, db *gorm.DB, payload P) (pipeline.Command[P], error) {
	bound, err := pipeline.NewRequest(payload).Bind(db)
	if err != nil {
		_ = models.RespondError(c, fiber.StatusServiceUnavailable, err)
		return pipeline.Command[P]{}, errResponseWritten
	}

	authed, err := bound.Authenticate(middleware.IdentityFromCtx(c))
	if err != nil {
		_ = models.RespondError(c, fiber.StatusForbidden, models.NotSignedIn())
		return pipeline.Command[P]{}, errResponseWritten
	}

	cmd, ferr := authed.Validate(c.UserContext())
	if ferr != nil {
		_ = models.RespondError(c, fiber.StatusBadRequest, ferr)
		return pipeline.Command[P]{}, errResponseWritten
	}
	return cmd, nil
}

// respondServiceError maps an executor failure onto the response envelope.
// Unrecognized store errors surface their text with a 500.
func respondServiceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var ferr *models.FieldError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.RespondError(c, fiber.StatusNotFound,
			models.NewFieldError("", notFoundMessage))
	case errors.As(err, &ferr):
		return models.RespondError(c, fiber.StatusBadRequest, ferr)
	default:
		return models.RespondError(c, fiber.StatusInternalServerError, err)
	}
}

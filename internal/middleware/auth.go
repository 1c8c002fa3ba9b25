package middleware

import (
	"strings"

	"quill/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const identityLocal = "identity"

// Authenticate parses a bearer token when one is present and attaches the
// decoded identity to the request. It never rejects: operations decide for
// themselves whether an identity is required, so anonymous-eligible reads
// share the same route chain.
func Authenticate(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}

		if id, err := auth.ParseToken(jwtSecret, parts[1]); err == nil {
			c.Locals(identityLocal, id)
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by Authenticate, or nil for
// anonymous requests.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	if id, ok := c.Locals(identityLocal).(*auth.Identity); ok {
		return id
	}
	return nil
}

package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"quill/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func identityEchoApp() *fiber.App {
	app := fiber.New()
	app.Use(Authenticate(testSecret))
	app.Get("/", func(c *fiber.Ctx) error {
		if id := IdentityFromCtx(c); id != nil {
			return c.SendString(id.Username)
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestAuthenticate_AttachesValidIdentity(t *testing.T) {
	t.Parallel()

	app := identityEchoApp()
	token, err := auth.GenerateToken(testSecret, 3, "carol")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "carol", string(body))
}

func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	t.Parallel()

	app := identityEchoApp()

	for _, header := range []string{"", "Bearer", "Bearer not-a-token", "Basic abc123"} {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "anonymous", string(body), "header %q", header)
	}
}

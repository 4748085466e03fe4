package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminApp(keyHash string) *fiber.App {
	app := fiber.New()
	app.Use(RequireAdminKey(keyHash))
	app.Get("/secure", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAdminKey_ValidKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	app := adminApp(string(hash))

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("X-Admin-Key", "letmein")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminKey_WrongKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	app := adminApp(string(hash))

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdminKey_MissingHeader(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	app := adminApp(string(hash))

	req := httptest.NewRequest("GET", "/secure", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Empty hash disables the check (local development).
func TestRequireAdminKey_Disabled(t *testing.T) {
	app := adminApp("")
	req := httptest.NewRequest("GET", "/secure", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"backoffice-backend/internal/pkg/response"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey checks the X-Admin-Key header against the configured bcrypt
// hash. An empty hash disables the check so local development works without a
// key; production config must always set one.
func RequireAdminKey(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			return c.Next()
		}
		key := c.Get(adminKeyHeader)
		if key == "" {
			return response.Unauthorized(c, "Admin key required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			return response.Unauthorized(c, "Invalid admin key")
		}
		return c.Next()
	}
}

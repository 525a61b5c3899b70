package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminKey guards the admin endpoints. The configured value is a
// bcrypt hash of the key, so the plaintext never lives in the environment of
// a running deployment.
func RequireAdminKey(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			slog.Warn("Admin endpoint hit but ADMIN_KEY_HASH is not configured")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access not configured",
			})
		}

		key := c.Get("X-Admin-Key")
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "admin key required",
			})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			slog.Warn("Rejected admin key", "ip", c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin key",
			})
		}

		return c.Next()
	}
}

// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pig-farm-server/services"
)

// TokenAuthMiddleware validates the Bearer session token on header-auth
// routes. Missing header is a 401; a token that fails verification (bad
// signature, malformed, expired) is a 403. The player ID lands in
// c.Locals("player_id") for handlers downstream.
func TokenAuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Printf("🚫 [AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "message": "Unauthorized",
			})
		}

		// Parse "Bearer <token>"
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			// no "Bearer " prefix — try raw value
			token = authHeader
		}

		playerID, err := tokens.Verify(token)
		if err != nil {
			log.Printf("❌ [AUTH] Invalid token for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false, "message": "Invalid token",
			})
		}

		c.Locals("player_id", playerID)
		return c.Next()
	}
}

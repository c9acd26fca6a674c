package middleware

import (
	"net/http"
	"strings"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/auth"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber locals key the verified identity is stored
// under.
const IdentityKey = "identity"

// Auth verifies the session token from the "token" cookie or the
// bearer header, then checks the account is still active and not
// deleted. The verified identity is placed in locals for handlers.
func Auth(secret string, uc usecase.UserUsecaseInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("token")
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			token = strings.TrimPrefix(header, "Bearer ")
			if token == header {
				token = ""
			}
		}
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}

		userID, err := auth.Subject(secret, token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		user, err := uc.GetUser(c.Context(), userID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unknown account"})
		}
		if !user.Active || user.Deleted {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "account disabled"})
		}

		c.Locals(IdentityKey, entities.Identity{ID: user.ID, Role: user.Role})
		return c.Next()
	}
}

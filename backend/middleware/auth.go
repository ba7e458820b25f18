package middleware

import (
	"github.com/Xornee/langify-your-daily-english-boost/backend/config"
	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "userID"
	localRole   = "role"
)

// AuthMiddleware проверяет JWT и кладет пользователя в locals
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := utils.ExtractSessionFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(localUserID, session.UserID)
		c.Locals(localRole, session.Role)
		return c.Next()
	}
}

// RequireRole пропускает только указанные роли. Админ проходит всегда.
// Должен стоять после AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := Session(c).Role
		for _, r := range roles {
			if models.HasRole(role, r) {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Forbidden - insufficient role")
	}
}

// Session returns the identity AuthMiddleware stored on the request.
func Session(c *fiber.Ctx) utils.Session {
	userID, _ := c.Locals(localUserID).(uint)
	role, _ := c.Locals(localRole).(string)
	return utils.Session{UserID: userID, Role: role}
}

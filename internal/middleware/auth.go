package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/config"
	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/utils"
)

const (
	adminIDKey   = "currentAdminID"
	adminRoleKey = "currentAdminRole"
)

// AdminAuth validates the bearer token and checks it against a live admin
// account. A valid token is not enough on its own: the account must still
// exist and be active, so deactivating an admin revokes their access
// immediately rather than at token expiry.
func AdminAuth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := db.Select("id", "role", "is_active").
			First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "account is deactivated")
		}

		c.Locals(adminIDKey, user.ID)
		c.Locals(adminRoleKey, user.Role)
		return c.Next()
	}
}

// CurrentAdminID extracts the authenticated admin's ID from context.
func CurrentAdminID(c *fiber.Ctx) (uuid.UUID, bool) {
	if id, ok := c.Locals(adminIDKey).(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}

// CurrentAdminRole extracts the authenticated admin's role from context.
func CurrentAdminRole(c *fiber.Ctx) string {
	role, _ := c.Locals(adminRoleKey).(string)
	return role
}

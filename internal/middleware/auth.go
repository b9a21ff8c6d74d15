package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/localnerve/sitebuilder/internal/types"
)

// SessionCookie is the Authorizer session cookie name
const SessionCookie = "cookie_session"

// UserIDKey is the Locals key holding the authenticated owner id
const UserIDKey = "userID"

// SessionValidator resolves a session cookie to its user
type SessionValidator func(cookie string, roles []string) (*services.SessionUser, error)

// AuthUser requires a valid user session. The Authorizer client is created on
// the first request so the redirect URL can be derived from it.
func AuthUser(cfg *config.Config) fiber.Handler {
	return AuthUserWith(services.ValidateSession, func(c *fiber.Ctx) error {
		return services.InitAuthorizer(c.UserContext(), cfg, c.Protocol(), c.Hostname())
	})
}

// AuthUserWith builds the user gate from an explicit validator and an optional
// initializer, run before each validation.
func AuthUserWith(validate SessionValidator, init func(c *fiber.Ctx) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if init != nil {
			if err := init(c); err != nil {
				return types.NewCustomError(fiber.StatusServiceUnavailable, "data.authorization.init",
					"Authorizer unavailable: %v", err)
			}
		}
		return authorize(c, validate, []string{"user"}, "data.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, validate SessionValidator, roles []string, errorType string) error {
	// Get session cookie
	session := c.Cookies(SessionCookie)
	if session == "" {
		return types.NewCustomError(fiber.StatusForbidden, errorType,
			"Authorizer cookie %q not found", SessionCookie)
	}

	// Validate session
	user, err := validate(session, roles)
	if err != nil {
		return types.NewCustomError(fiber.StatusForbidden, errorType, "Invalid session: %v", err)
	}

	// Owner ids are stored in char(36) columns
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return types.NewCustomError(fiber.StatusForbidden, errorType, "Invalid user id: %v", err)
	}

	c.Locals(UserIDKey, id.String())
	return c.Next()
}

// UserID returns the authenticated owner id stored by AuthUser
func UserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(UserIDKey).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return id, nil
}

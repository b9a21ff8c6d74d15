package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/sitebuilder/internal/types"
)

// APIVersion is the version served when the client does not ask for one
const APIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header and stores it in context.
// Only major version 1 is served.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get("X-Api-Version", APIVersion))

		// Support version aliases
		switch version {
		case "1", "1.0":
			version = APIVersion
		}

		major, _, _ := strings.Cut(version, ".")
		if major != "1" {
			return types.NewCustomError(fiber.StatusBadRequest, "version",
				"Unsupported API version %q", version)
		}

		// Store version in context
		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}

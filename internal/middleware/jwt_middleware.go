package middleware

import (
	"strings"

	"bakery/internal/services"
	pkgerrors "bakery/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return unauthorized(c, "Invalid or expired token")
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("staff_id", claims["staff_id"])
		c.Locals("username", claims["username"])

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	meta := pkgerrors.MetadataFor(pkgerrors.CodeUnauthorized)
	return c.Status(meta.HTTPStatus).JSON(fiber.Map{
		"message": meta.PublicMessage,
		"code":    pkgerrors.CodeUnauthorized,
		"error":   message,
	})
}

// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"strings"

	"pinboard/internal/token"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired enforces authentication for protected routes. On success the
// acting user's ID is stored in c.Locals("userID").
func AuthRequired(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		userID, err := tokens.ValidateAuth(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth decodes a bearer token when one is present but never rejects
// the request. Read endpoints use it to annotate per-viewer state (e.g.
// whether the viewer liked a pin) while staying public.
func OptionalAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw, ok := bearerToken(c); ok {
			if userID, err := tokens.ValidateAuth(raw); err == nil {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	}
}

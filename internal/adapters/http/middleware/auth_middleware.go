package middleware

import (
	"errors"
	"strings"

	"willeasy/internal/core/domain"
	"willeasy/internal/core/services"
	"willeasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session_token"

// Locals keys set by AuthMiddleware
const (
	LocalSession = "session"
	LocalRole    = "role"
)

// TokenFromRequest reads the session token from the Authorization header,
// falling back to the session cookie
func TokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token
		}
	}
	return c.Cookies(SessionCookie)
}

// AuthMiddleware requires a live session and stores it in Locals
func AuthMiddleware(sessions services.SessionSlot) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return response.Unauthorized(c, "Session token required")
		}

		session, err := sessions.Resolve(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionExpired):
				return response.Unauthorized(c, "Session expired, please sign in again")
			case errors.Is(err, domain.ErrSessionNotFound):
				return response.Unauthorized(c, "Invalid session")
			default:
				return response.InternalServerError(c, "Failed to resolve session")
			}
		}

		c.Locals(LocalSession, session)
		c.Locals(LocalRole, session.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only administrators
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdministrator)
}

// PreparerOnly middleware allows only preparers
func PreparerOnly() fiber.Handler {
	return RoleMiddleware(domain.RolePreparer)
}

// CurrentSession returns the session AuthMiddleware stored, if any
func CurrentSession(c *fiber.Ctx) (*domain.Session, bool) {
	session, ok := c.Locals(LocalSession).(*domain.Session)
	return session, ok && session != nil
}

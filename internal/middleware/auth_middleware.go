package middleware

import (
	"context"
	"errors"
	"myWellnessCentre/domain"
	"myWellnessCentre/pkg/logger"
	"net/http"
	"strings"
	"time"

	jsonres "myWellnessCentre/pkg/response"

	"github.com/labstack/echo/v4"
)

// SessionKey is the echo context key holding the request's domain.Session.
const SessionKey = "session"

// SessionResolver turns a bearer token into the session of one request.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Session, error)
}

func AuthMiddleware(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sess, err := resolver.Resolve(ctx, tokenParts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, jsonres.Error(
						"UNAUTHORIZED", "Token expired or invalid", nil,
					))
				}
				logger.Error("Failed to resolve session", err)
				return c.JSON(http.StatusInternalServerError, jsonres.Error(
					"INTERNAL_ERROR", "Failed to load session", nil,
				))
			}

			c.Set(SessionKey, sess)

			return next(c)
		}
	}
}

// CurrentSession returns the session stored by AuthMiddleware.
func CurrentSession(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(SessionKey).(domain.Session)
	return sess, ok
}

func AdminOnly() echo.MiddlewareFunc {
	return requireRole("Admin access required", func(role string) bool {
		return role == domain.RoleAdmin
	})
}

// StaffOnly admits managers and admins.
func StaffOnly() echo.MiddlewareFunc {
	return requireRole("Staff access required", domain.IsStaff)
}

func requireRole(message string, allowed func(role string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "User not authenticated", nil,
				))
			}

			if !allowed(sess.Profile.Role) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", message, nil,
				))
			}

			return next(c)
		}
	}
}

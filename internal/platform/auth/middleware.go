package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	CaregiverIDKey contextKey = "caregiver_id"
	UserRoleKey    contextKey = "user_role"
)

// Middleware validates the Authorization bearer token and places the resolved
// caregiver identity on the request context. Every route behind it can assume
// CaregiverIDFromContext returns a real caregiver ID.
func Middleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			caregiverID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, CaregiverIDKey, caregiverID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// WithCaregiverID returns a context carrying the given caregiver identity, as
// the middleware would set it.
func WithCaregiverID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, CaregiverIDKey, id)
}

// CaregiverIDFromContext returns the authenticated caregiver's ID, or uuid.Nil
// when the request was not authenticated.
func CaregiverIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(CaregiverIDKey).(uuid.UUID)
	return id
}

// RoleFromContext returns the authenticated user's role.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
)

// RequireOrganization rejects requests whose session has no active
// organization. Routes behind it can assume a valid organization ID in
// context.
func RequireOrganization() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			orgID, ok := common.GetOrganizationIDFromContext(c.Request().Context())
			if !ok || orgID == uuid.Nil {
				return echo.NewHTTPError(http.StatusForbidden, "No active organization")
			}
			return next(c)
		}
	}
}

// RequireRole gates a route on the session's resolved member role. An
// unresolvable role denies the request.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok || role == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

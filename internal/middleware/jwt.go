package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

// JWTMiddleware validates the bearer token and resolves the session's active
// organization. Requests from users with no organization membership are
// rejected except on routes that allow the no-organization state.
func JWTMiddleware(authSvc services.AuthService, authzSvc services.AuthzService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			member, err := authzSvc.ResolveActiveOrganization(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, services.ErrNoOrganization) {
					// Onboarding and invitation acceptance run before the
					// user has any membership.
					ctx := common.WithOrganizationContext(c.Request().Context(), userID, uuid.Nil, "")
					c.SetRequest(c.Request().WithContext(ctx))
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not resolve organization")
			}

			ctx := common.WithOrganizationContext(c.Request().Context(), userID, member.OrganizationID, member.Role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type AuthHandlers struct {
	authService  services.AuthService
	authzService services.AuthzService
}

func NewAuthHandlers(authService services.AuthService, authzService services.AuthzService) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		authzService: authzService,
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandlers) SignUp(c echo.Context) error {
	var req services.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tokens, err := h.authService.SignUp(c.Request().Context(), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, tokens)
}

// SignIn handles POST /auth/signin
func (h *AuthHandlers) SignIn(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		details := map[string]string{}
		if req.Email == "" {
			details["email"] = "is required"
		}
		if req.Password == "" {
			details["password"] = "is required"
		}
		return common.SendValidationErrors(c, details)
	}

	tokens, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.SendUnauthorizedError(c, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendClientError(c, "Refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendUnauthorizedError(c, "Invalid refresh token")
	}

	return c.JSON(http.StatusOK, tokens)
}

// SignOut handles POST /auth/signout. It revokes the refresh token and drops
// the cached session state; the access token simply expires.
func (h *AuthHandlers) SignOut(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.RefreshToken != "" {
		if err := h.authService.RevokeRefreshToken(c.Request().Context(), req.RefreshToken); err != nil {
			return common.SendClientError(c, "Invalid refresh token")
		}
	}

	if userID, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
		_ = h.authzService.ClearSession(c.Request().Context(), userID)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Signed out successfully",
	})
}

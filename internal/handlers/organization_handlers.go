package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type OrganizationHandlers struct {
	orgService  services.OrganizationService
	userService services.UserService
}

func NewOrganizationHandlers(orgService services.OrganizationService, userService services.UserService) *OrganizationHandlers {
	return &OrganizationHandlers{
		orgService:  orgService,
		userService: userService,
	}
}

// Onboard handles POST /organizations
func (h *OrganizationHandlers) Onboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User not authenticated")
	}

	var req services.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	org, err := h.orgService.Onboard(ctx, userID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Organization created successfully",
		"organization": org,
	})
}

// ListMine handles GET /organizations
func (h *OrganizationHandlers) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User not authenticated")
	}

	orgs, err := h.orgService.ListByUser(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"organizations": orgs,
	})
}

// GetCurrent handles GET /organizations/current
func (h *OrganizationHandlers) GetCurrent(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	org, err := h.orgService.GetByID(ctx, orgID)
	if err != nil {
		return common.SendNotFoundError(c, "Organization")
	}

	return c.JSON(http.StatusOK, org)
}

// Update handles PUT /organizations/current
func (h *OrganizationHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var req services.UpdateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = orgID

	if err := h.orgService.Update(ctx, userID, &req); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Organization updated successfully",
	})
}

// Delete handles DELETE /organizations/current
func (h *OrganizationHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	if err := h.orgService.Delete(ctx, userID, orgID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Organization deleted successfully",
	})
}

// Switch handles POST /organizations/:id/switch
func (h *OrganizationHandlers) Switch(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User not authenticated")
	}

	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	member, err := h.userService.SwitchOrganization(ctx, userID, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "Active organization switched",
		"organization_id": member.OrganizationID,
		"role":            member.Role,
	})
}

// Invite handles POST /organizations/current/invitations
func (h *OrganizationHandlers) Invite(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	invitation, err := h.orgService.Invite(ctx, userID, orgID, req.Email, req.Role)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Invitation sent",
		"invitation": invitation,
	})
}

// ListInvitations handles GET /organizations/current/invitations
func (h *OrganizationHandlers) ListInvitations(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invitations, err := h.orgService.ListInvitations(ctx, userID, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invitations": invitations,
	})
}

// CancelInvitation handles DELETE /organizations/current/invitations/:id
func (h *OrganizationHandlers) CancelInvitation(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invitationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.orgService.CancelInvitation(ctx, userID, orgID, invitationID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Invitation cancelled",
	})
}

// AcceptInvitation handles POST /invitations/:id/accept. It works without an
// active organization: a fresh user's first membership comes from here.
func (h *OrganizationHandlers) AcceptInvitation(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "User not authenticated")
	}

	invitationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return common.SendUnauthorizedError(c, "User not found")
	}

	member, err := h.orgService.AcceptInvitation(ctx, userID, user.Email, invitationID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Invitation accepted",
		"member":  member,
	})
}

// ListMembers handles GET /organizations/current/members
func (h *OrganizationHandlers) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	members, err := h.orgService.ListMembers(ctx, userID, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"members": members,
	})
}

// UpdateMemberRole handles PUT /organizations/current/members/:id/role
func (h *OrganizationHandlers) UpdateMemberRole(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	memberID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.orgService.UpdateMemberRole(ctx, userID, orgID, memberID, req.Role); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Member role updated",
	})
}

// RemoveMember handles DELETE /organizations/current/members/:id
func (h *OrganizationHandlers) RemoveMember(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	memberID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.orgService.RemoveMember(ctx, userID, orgID, memberID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Member removed",
	})
}

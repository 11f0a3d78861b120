package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type UnitHandlers struct {
	unitService services.UnitService
}

func NewUnitHandlers(unitService services.UnitService) *UnitHandlers {
	return &UnitHandlers{unitService: unitService}
}

// Create handles POST /units
func (h *UnitHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var unit models.Unit
	if err := c.Bind(&unit); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	unit.OrganizationID = orgID

	if err := h.unitService.Create(ctx, userID, &unit); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Unit created successfully",
		"unit":    unit,
	})
}

// Delete handles DELETE /units/:id
func (h *UnitHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	unitID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.unitService.Delete(ctx, userID, orgID, unitID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Unit deleted successfully",
	})
}

// List handles GET /units
func (h *UnitHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	units, err := h.unitService.List(ctx, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"units": units,
	})
}

// CreateConversion handles POST /units/:id/conversions
func (h *UnitHandlers) CreateConversion(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	unitID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var conversion models.UnitConversion
	if err := c.Bind(&conversion); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	conversion.OrganizationID = orgID
	conversion.UnitID = unitID

	if err := h.unitService.CreateConversion(ctx, userID, &conversion); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Unit conversion created successfully",
		"conversion": conversion,
	})
}

// ListConversions handles GET /units/:id/conversions
func (h *UnitHandlers) ListConversions(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	unitID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	conversions, err := h.unitService.ListConversions(ctx, orgID, unitID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversions": conversions,
	})
}

// DeleteConversion handles DELETE /units/conversions/:id
func (h *UnitHandlers) DeleteConversion(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	conversionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.unitService.DeleteConversion(ctx, userID, orgID, conversionID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Unit conversion deleted successfully",
	})
}

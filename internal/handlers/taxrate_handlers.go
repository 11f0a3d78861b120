package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type TaxRateHandlers struct {
	taxRateService services.TaxRateService
}

func NewTaxRateHandlers(taxRateService services.TaxRateService) *TaxRateHandlers {
	return &TaxRateHandlers{taxRateService: taxRateService}
}

// Create handles POST /tax-rates
func (h *TaxRateHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var taxRate models.TaxRate
	if err := c.Bind(&taxRate); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	taxRate.OrganizationID = orgID

	if err := h.taxRateService.Create(ctx, userID, &taxRate); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Tax rate created successfully",
		"tax_rate": taxRate,
	})
}

// Get handles GET /tax-rates/:id
func (h *TaxRateHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	taxRateID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	taxRate, err := h.taxRateService.GetByID(ctx, orgID, taxRateID)
	if err != nil {
		return common.SendNotFoundError(c, "Tax rate")
	}

	return c.JSON(http.StatusOK, taxRate)
}

// Update handles PUT /tax-rates/:id
func (h *TaxRateHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	taxRateID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var taxRate models.TaxRate
	if err := c.Bind(&taxRate); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	taxRate.ID = taxRateID
	taxRate.OrganizationID = orgID

	if err := h.taxRateService.Update(ctx, userID, &taxRate); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Tax rate updated successfully",
		"tax_rate": taxRate,
	})
}

// Delete handles DELETE /tax-rates/:id
func (h *TaxRateHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	taxRateID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.taxRateService.Delete(ctx, userID, orgID, taxRateID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Tax rate deleted successfully",
	})
}

// List handles GET /tax-rates
func (h *TaxRateHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	taxRates, err := h.taxRateService.List(ctx, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tax_rates": taxRates,
	})
}

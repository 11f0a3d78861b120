package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type PartyHandlers struct {
	partyService   services.PartyService
	paymentService services.PaymentService
}

func NewPartyHandlers(partyService services.PartyService, paymentService services.PaymentService) *PartyHandlers {
	return &PartyHandlers{
		partyService:   partyService,
		paymentService: paymentService,
	}
}

// Create handles POST /parties
func (h *PartyHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var party models.Party
	if err := c.Bind(&party); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	party.OrganizationID = orgID

	if err := h.partyService.Create(ctx, userID, &party); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Party created successfully",
		"party":   party,
	})
}

// Get handles GET /parties/:id
func (h *PartyHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	partyID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	party, err := h.partyService.GetByID(ctx, orgID, partyID)
	if err != nil {
		return common.SendNotFoundError(c, "Party")
	}

	return c.JSON(http.StatusOK, party)
}

// Update handles PUT /parties/:id
func (h *PartyHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	partyID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var party models.Party
	if err := c.Bind(&party); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	party.ID = partyID
	party.OrganizationID = orgID

	if err := h.partyService.Update(ctx, userID, &party); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Party updated successfully",
		"party":   party,
	})
}

// Delete handles DELETE /parties/:id
func (h *PartyHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	partyID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.partyService.Delete(ctx, userID, orgID, partyID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Party deleted successfully",
	})
}

// List handles GET /parties
func (h *PartyHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	limit, offset := paginationParams(c)
	parties, err := h.partyService.List(ctx, orgID, c.QueryParam("type"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"parties": parties,
		"limit":   limit,
		"offset":  offset,
	})
}

// ListPayments handles GET /parties/:id/payments
func (h *PartyHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	partyID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	limit, offset := paginationParams(c)
	payments, err := h.paymentService.ListByParty(ctx, orgID, partyID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}

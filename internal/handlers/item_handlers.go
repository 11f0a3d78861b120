package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type ItemHandlers struct {
	itemService services.ItemService
}

func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

// Create handles POST /items
func (h *ItemHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var item models.Item
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	item.OrganizationID = orgID

	if err := h.itemService.Create(ctx, userID, &item); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item created successfully",
		"item":    item,
	})
}

// Get handles GET /items/:id
func (h *ItemHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	item, err := h.itemService.GetByID(ctx, orgID, itemID)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}

	return c.JSON(http.StatusOK, item)
}

// GetStock handles GET /items/:id/stock
func (h *ItemHandlers) GetStock(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	view, err := h.itemService.GetStockView(ctx, orgID, itemID)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}

	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /items/:id
func (h *ItemHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var item models.Item
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	item.ID = itemID
	item.OrganizationID = orgID

	if err := h.itemService.Update(ctx, userID, &item); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Item updated successfully",
		"item":    item,
	})
}

// Delete handles DELETE /items/:id
func (h *ItemHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.itemService.Delete(ctx, userID, orgID, itemID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Item deleted successfully",
	})
}

// List handles GET /items. A "q" query switches to search mode.
func (h *ItemHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	limit, offset := paginationParams(c)

	if query := c.QueryParam("q"); query != "" {
		filter := &models.ItemSearchFilter{
			Query:     query,
			SortBy:    c.QueryParam("sort_by"),
			SortOrder: c.QueryParam("sort_order"),
			Limit:     limit,
			Offset:    offset,
		}
		items, err := h.itemService.Search(ctx, orgID, filter)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"items":  items,
			"limit":  limit,
			"offset": offset,
		})
	}

	items, err := h.itemService.List(ctx, orgID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// AdjustStock handles POST /items/:id/adjustments
func (h *ItemHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
		Note     string          `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.itemService.AdjustStock(ctx, userID, orgID, itemID, req.Quantity, req.Note); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Stock adjustment recorded",
	})
}

// ListMovements handles GET /items/:id/movements
func (h *ItemHandlers) ListMovements(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	limit, offset := paginationParams(c)
	movements, err := h.itemService.ListMovements(ctx, orgID, itemID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}

// LowStock handles GET /items/low-stock
func (h *ItemHandlers) LowStock(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	rows, err := h.itemService.LowStockItems(ctx, orgID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": rows,
	})
}

// UploadImage handles POST /items/:id/image
func (h *ItemHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "Image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "Could not read image file")
	}
	defer src.Close()

	objectName, err := h.itemService.UploadImage(ctx, userID, orgID, itemID, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Image uploaded successfully",
		"image_key": objectName,
	})
}

// GetImageURL handles GET /items/:id/image
func (h *ItemHandlers) GetImageURL(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	url, err := h.itemService.GetImageURL(ctx, orgID, itemID)
	if err != nil {
		return common.SendNotFoundError(c, "Image")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"url": url,
	})
}

// Package handlers binds HTTP routes to the service layer. Handlers parse
// and validate transport concerns only; business rules live in services.
package handlers

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

// serviceError maps service layer failures onto the JSON error envelope.
// Authorization failures surface as 403 regardless of whether the resource
// exists; rule violations the client can correct come back as a 400 field
// map; everything else is a generic 500 with the cause logged server-side.
func serviceError(c echo.Context, err error) error {
	var verr *common.ValidationError
	switch {
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c, "Insufficient permissions")
	case errors.Is(err, services.ErrNoOrganization):
		return common.SendForbiddenError(c, "No active organization")
	case errors.As(err, &verr):
		if verr.Field == "" {
			return common.SendClientError(c, verr.Message)
		}
		return common.SendValidationError(c, verr.Field, verr.Message)
	default:
		c.Logger().Error(err)
		return common.SendServerError(c, "operation could not be completed")
	}
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, common.Invalidf(name, "must be a valid UUID")
	}
	return id, nil
}

func paginationParams(c echo.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

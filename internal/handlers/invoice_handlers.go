package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type InvoiceHandlers struct {
	invoiceService services.InvoiceService
	paymentService services.PaymentService
	pdfService     services.PDFService
}

func NewInvoiceHandlers(invoiceService services.InvoiceService, paymentService services.PaymentService, pdfService services.PDFService) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		paymentService: paymentService,
		pdfService:     pdfService,
	}
}

// Create handles POST /invoices
func (h *InvoiceHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	var req services.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	invoice, err := h.invoiceService.Create(ctx, userID, orgID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// Get handles GET /invoices/:id
func (h *InvoiceHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	invoice, err := h.invoiceService.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return common.SendNotFoundError(c, "Invoice")
	}

	return c.JSON(http.StatusOK, invoice)
}

// List handles GET /invoices
func (h *InvoiceHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	limit, offset := paginationParams(c)
	invoices, err := h.invoiceService.List(ctx, orgID, c.QueryParam("status"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"limit":    limit,
		"offset":   offset,
	})
}

// Cancel handles POST /invoices/:id/cancel
func (h *InvoiceHandlers) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	if err := h.invoiceService.Cancel(ctx, userID, orgID, invoiceID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Invoice cancelled and stock restored",
	})
}

// RecordPayment handles POST /invoices/:id/payments
func (h *InvoiceHandlers) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var req services.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.InvoiceID = invoiceID

	payment, err := h.paymentService.Record(ctx, userID, orgID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

// ListPayments handles GET /invoices/:id/payments
func (h *InvoiceHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	payments, err := h.paymentService.ListByInvoice(ctx, orgID, invoiceID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}

// DownloadPDF handles GET /invoices/:id/pdf
func (h *InvoiceHandlers) DownloadPDF(c echo.Context) error {
	ctx := c.Request().Context()
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	pdfBytes, err := h.pdfService.RenderInvoice(ctx, orgID, invoiceID)
	if err != nil {
		return common.SendNotFoundError(c, "Invoice")
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoiceID))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// GSTReport handles GET /reports/gst
func (h *InvoiceHandlers) GSTReport(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := common.GetUserIDFromContext(ctx)
	orgID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.SendForbiddenError(c, "No active organization")
	}

	startDate, err := time.Parse("2006-01-02", c.QueryParam("start_date"))
	if err != nil {
		return common.SendValidationError(c, "start_date", "must be in YYYY-MM-DD format")
	}
	endDate, err := time.Parse("2006-01-02", c.QueryParam("end_date"))
	if err != nil {
		return common.SendValidationError(c, "end_date", "must be in YYYY-MM-DD format")
	}

	rows, err := h.invoiceService.GSTReport(ctx, userID, orgID, startDate, endDate)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"rows":       rows,
	})
}

package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/billing"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

// validStatusTransitions defines the allowed invoice status flow. Paid and
// cancelled are terminal except that a paid invoice never reverts.
var validStatusTransitions = map[string][]string{
	models.InvoiceUnpaid:        {models.InvoicePartiallyPaid, models.InvoicePaid, models.InvoiceOverdue, models.InvoiceCancelled},
	models.InvoicePartiallyPaid: {models.InvoicePaid, models.InvoiceOverdue, models.InvoiceCancelled},
	models.InvoiceOverdue:       {models.InvoicePartiallyPaid, models.InvoicePaid, models.InvoiceCancelled},
	models.InvoicePaid:          {},
	models.InvoiceCancelled:     {},
}

// CreateInvoiceLineRequest is one requested line; prices and tax rates are
// resolved from the live item at creation time and then snapshotted.
type CreateInvoiceLineRequest struct {
	ItemID   uuid.UUID        `json:"item_id" validate:"required"`
	Quantity decimal.Decimal  `json:"quantity" validate:"required"`
	Discount *decimal.Decimal `json:"discount"`
	// UnitPrice overrides the item's list price when set.
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	PartyID         uuid.UUID                  `json:"party_id" validate:"required"`
	GSTMode         string                     `json:"gst_mode" validate:"required"`
	RoundOffEnabled bool                       `json:"round_off_enabled"`
	IssuedDate      time.Time                  `json:"issued_date"`
	DueDate         time.Time                  `json:"due_date"`
	Notes           *string                    `json:"notes"`
	Lines           []CreateInvoiceLineRequest `json:"lines" validate:"required"`
}

type InvoiceService interface {
	Create(ctx context.Context, actorID, organizationID uuid.UUID, req *CreateInvoiceRequest) (*models.Invoice, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, organizationID uuid.UUID, status string, limit, offset int) ([]*models.Invoice, error)
	Cancel(ctx context.Context, actorID, organizationID, invoiceID uuid.UUID) error
	// MarkOverdueInvoices flips unpaid and partially paid invoices past their
	// due date to overdue. Returns the number of invoices updated.
	MarkOverdueInvoices(ctx context.Context, organizationID uuid.UUID, asOf time.Time) (int, error)
	GSTReport(ctx context.Context, actorID, organizationID uuid.UUID, startDate, endDate time.Time) ([]repositories.GSTReportRow, error)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	itemRepo    repositories.ItemRepository
	taxRateRepo repositories.TaxRateRepository
	partyRepo   repositories.PartyRepository
	stockRepo   repositories.StockRepository
	authzSvc    AuthzService
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, itemRepo repositories.ItemRepository, taxRateRepo repositories.TaxRateRepository, partyRepo repositories.PartyRepository, stockRepo repositories.StockRepository, authzSvc AuthzService) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		taxRateRepo: taxRateRepo,
		partyRepo:   partyRepo,
		stockRepo:   stockRepo,
		authzSvc:    authzSvc,
	}
}

// Create builds a complete invoice: resolves each line's item and tax rate,
// computes amounts, aggregates totals and writes invoice, line snapshots and
// stock-out movements in one transaction.
func (s *invoiceService) Create(ctx context.Context, actorID, organizationID uuid.UUID, req *CreateInvoiceRequest) (*models.Invoice, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, common.Invalidf("lines", "invoice must have at least one line")
	}
	if req.GSTMode != models.GSTIntraState && req.GSTMode != models.GSTInterState {
		return nil, common.Invalidf("gst_mode", "must be %q or %q", models.GSTIntraState, models.GSTInterState)
	}

	party, err := s.partyRepo.GetByID(ctx, organizationID, req.PartyID)
	if err != nil {
		return nil, common.Invalidf("party_id", "party not found in this organization")
	}

	issuedDate := req.IssuedDate
	if issuedDate.IsZero() {
		issuedDate = time.Now()
	}
	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = issuedDate.AddDate(0, 0, 30)
	}
	if dueDate.Before(issuedDate) {
		return nil, common.Invalidf("due_date", "cannot be before issued date")
	}

	mode := billing.GSTModeFromString(req.GSTMode)

	invoiceID := uuid.New()
	items := make([]*models.InvoiceItem, 0, len(req.Lines))
	movements := make([]*models.StockMovement, 0, len(req.Lines))
	lineResults := make([]billing.LineResult, 0, len(req.Lines))

	for i, line := range req.Lines {
		if !line.Quantity.IsPositive() {
			return nil, common.Invalidf("lines", "line %d: quantity must be positive", i+1)
		}

		item, err := s.itemRepo.GetByID(ctx, organizationID, line.ItemID)
		if err != nil {
			return nil, common.Invalidf("lines", "line %d: item not found in this organization", i+1)
		}

		unitPrice := item.Price
		if line.UnitPrice != nil {
			if line.UnitPrice.IsNegative() {
				return nil, common.Invalidf("lines", "line %d: unit price cannot be negative", i+1)
			}
			unitPrice = *line.UnitPrice
		}

		discount := decimal.Zero
		if line.Discount != nil {
			if line.Discount.IsNegative() {
				return nil, common.Invalidf("lines", "line %d: discount cannot be negative", i+1)
			}
			discount = *line.Discount
		}

		// A missing or stale tax rate reference resolves to zero GST; the
		// sale goes through and cess still applies.
		var taxRate *models.TaxRate
		if item.TaxRateID != nil {
			taxRate, err = s.taxRateRepo.GetByID(ctx, organizationID, *item.TaxRateID)
			if err != nil {
				log.Printf("Tax rate %s missing for item %s, billing with zero GST", *item.TaxRateID, item.ID)
				taxRate = nil
			}
		}
		cessRate := 0.0
		if item.CessRate != nil {
			cessRate = *item.CessRate
		}
		rates := billing.ResolveRates(taxRate, cessRate, mode)

		result := billing.ComputeLine(billing.LineInput{
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Discount:  discount,
			Rates:     rates,
		})
		lineResults = append(lineResults, result)

		items = append(items, &models.InvoiceItem{
			ID:             uuid.New(),
			InvoiceID:      invoiceID,
			OrganizationID: organizationID,
			ItemID:         item.ID,
			ItemName:       item.Name,
			HSNCode:        item.HSNCode,
			Quantity:       result.Quantity,
			UnitPrice:      result.UnitPrice,
			DiscountAmount: result.Discount,
			TaxRateID:      item.TaxRateID,
			CGSTRate:       rates.CGST,
			SGSTRate:       rates.SGST,
			IGSTRate:       rates.IGST,
			CessRate:       rates.Cess,
			TaxableAmount:  result.TaxableAmount,
			CGSTAmount:     result.CGSTAmount,
			SGSTAmount:     result.SGSTAmount,
			IGSTAmount:     result.IGSTAmount,
			CessAmount:     result.CessAmount,
			TotalPrice:     result.TotalPrice,
			NetAmount:      result.NetAmount,
		})

		reference := invoiceID.String()
		movements = append(movements, &models.StockMovement{
			ID:             uuid.New(),
			OrganizationID: organizationID,
			ItemID:         item.ID,
			Type:           models.StockMovementOut,
			Quantity:       line.Quantity,
			Reference:      &reference,
		})
	}

	totals := billing.Aggregate(lineResults, req.RoundOffEnabled)

	// InvoiceNumber is left empty; the repository claims it from the monthly
	// sequence inside the create transaction.
	invoice := &models.Invoice{
		ID:                  invoiceID,
		OrganizationID:      organizationID,
		PartyID:             party.ID,
		Status:              models.InvoiceUnpaid,
		GSTMode:             req.GSTMode,
		Subtotal:            totals.Subtotal,
		TotalDiscountAmount: totals.TotalDiscountAmount,
		TotalTaxAmount:      totals.TotalTaxAmount,
		GrandTotal:          totals.GrandTotal,
		RoundOffEnabled:     req.RoundOffEnabled,
		RoundOffAmount:      totals.RoundOffAmount,
		FinalTotal:          totals.FinalTotal,
		AmountPaid:          decimal.Zero,
		IssuedDate:          issuedDate,
		DueDate:             dueDate,
		Notes:               req.Notes,
		Items:               items,
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, movements); err != nil {
		return nil, common.SecureErrorMessage("create invoice", err)
	}

	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.GetItems(ctx, organizationID, id)
	if err != nil {
		return nil, common.SecureErrorMessage("load invoice items", err)
	}
	invoice.Items = items
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context, organizationID uuid.UUID, status string, limit, offset int) ([]*models.Invoice, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	if status != "" {
		if err := common.ValidateInvoiceStatus(status); err != nil {
			return nil, err
		}
		return s.invoiceRepo.ListByStatus(ctx, organizationID, status, limit, offset)
	}
	return s.invoiceRepo.List(ctx, organizationID, limit, offset)
}

// Cancel voids an invoice and restores the stock it consumed. Paid invoices
// cannot be cancelled; issue a credit adjustment instead.
func (s *invoiceService) Cancel(ctx context.Context, actorID, organizationID, invoiceID uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, organizationID, invoiceID)
	if err != nil {
		return common.SecureErrorMessage("load invoice", err)
	}
	if !isValidTransition(invoice.Status, models.InvoiceCancelled) {
		return common.Invalidf("", "cannot cancel an invoice in status %q", invoice.Status)
	}

	items, err := s.invoiceRepo.GetItems(ctx, organizationID, invoiceID)
	if err != nil {
		return common.SecureErrorMessage("load invoice items", err)
	}

	reference := invoiceID.String()
	note := "invoice cancelled"
	movements := make([]*models.StockMovement, 0, len(items))
	for _, item := range items {
		movements = append(movements, &models.StockMovement{
			ID:             uuid.New(),
			OrganizationID: organizationID,
			ItemID:         item.ItemID,
			Type:           models.StockMovementIn,
			Quantity:       item.Quantity,
			Reference:      &reference,
			Note:           &note,
		})
	}

	if err := s.invoiceRepo.CancelWithRestock(ctx, organizationID, invoiceID, movements); err != nil {
		return common.SecureErrorMessage("cancel invoice", err)
	}
	return nil
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, organizationID uuid.UUID, asOf time.Time) (int, error) {
	candidates, err := s.invoiceRepo.GetOverdueCandidates(ctx, organizationID, asOf)
	if err != nil {
		return 0, common.SecureErrorMessage("load overdue candidates", err)
	}

	updated := 0
	for _, invoice := range candidates {
		if !isValidTransition(invoice.Status, models.InvoiceOverdue) {
			continue
		}
		if err := s.invoiceRepo.UpdateStatus(ctx, organizationID, invoice.ID, models.InvoiceOverdue); err != nil {
			log.Printf("Failed to mark invoice %s overdue: %v", invoice.ID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *invoiceService) GSTReport(ctx context.Context, actorID, organizationID uuid.UUID, startDate, endDate time.Time) ([]repositories.GSTReportRow, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := common.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetGSTReportData(ctx, organizationID, startDate, endDate)
}

func isValidTransition(from, to string) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

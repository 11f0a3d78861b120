package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type RecordPaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required"`
	Reference *string         `json:"reference"`
	PaidAt    time.Time       `json:"paid_at"`
}

type PaymentService interface {
	// Record applies a payment to an invoice, moving its status to
	// partially_paid or paid and lowering the party's outstanding balance,
	// all atomically.
	Record(ctx context.Context, actorID, organizationID uuid.UUID, req *RecordPaymentRequest) (*models.Payment, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Payment, error)
	ListByInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.Payment, error)
	ListByParty(ctx context.Context, organizationID, partyID uuid.UUID, limit, offset int) ([]*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	invoiceRepo repositories.InvoiceRepository
	authzSvc    AuthzService
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, invoiceRepo repositories.InvoiceRepository, authzSvc AuthzService) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		authzSvc:    authzSvc,
	}
}

func (s *paymentService) Record(ctx context.Context, actorID, organizationID uuid.UUID, req *RecordPaymentRequest) (*models.Payment, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveAmount(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Method, "method"); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, organizationID, req.InvoiceID)
	if err != nil {
		return nil, common.SecureErrorMessage("load invoice", err)
	}

	switch invoice.Status {
	case models.InvoicePaid:
		return nil, common.Invalidf("", "invoice is already fully paid")
	case models.InvoiceCancelled:
		return nil, common.Invalidf("", "cannot record a payment against a cancelled invoice")
	}

	outstanding := invoice.FinalTotal.Sub(invoice.AmountPaid)
	if req.Amount.GreaterThan(outstanding) {
		return nil, common.Invalidf("amount", "payment of %s exceeds outstanding amount %s", req.Amount, outstanding)
	}

	newStatus := models.InvoicePartiallyPaid
	if invoice.AmountPaid.Add(req.Amount).GreaterThanOrEqual(invoice.FinalTotal) {
		newStatus = models.InvoicePaid
	}
	if !isValidTransition(invoice.Status, newStatus) {
		return nil, common.Invalidf("", "cannot move invoice from %q to %q", invoice.Status, newStatus)
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		InvoiceID:      invoice.ID,
		PartyID:        invoice.PartyID,
		Amount:         req.Amount,
		Method:         req.Method,
		Reference:      req.Reference,
		PaidAt:         paidAt,
	}

	if err := s.invoiceRepo.ApplyPayment(ctx, organizationID, invoice.ID, payment, newStatus); err != nil {
		return nil, common.SecureErrorMessage("apply payment", err)
	}

	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, organizationID, id)
}

func (s *paymentService) ListByInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, organizationID, invoiceID)
}

func (s *paymentService) ListByParty(ctx context.Context, organizationID, partyID uuid.UUID, limit, offset int) ([]*models.Payment, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByParty(ctx, organizationID, partyID, limit, offset)
}

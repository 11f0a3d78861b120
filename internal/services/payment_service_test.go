package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockAuthz       *MockAuthzService
	service         PaymentService

	userID uuid.UUID
	orgID  uuid.UUID
	member *models.Member
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = &MockPaymentRepository{}
	suite.mockInvoiceRepo = &MockInvoiceRepository{}
	suite.mockAuthz = &MockAuthzService{}
	suite.service = NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo, suite.mockAuthz)

	suite.userID = uuid.New()
	suite.orgID = uuid.New()
	suite.member = &models.Member{ID: uuid.New(), UserID: suite.userID, OrganizationID: suite.orgID, Role: models.RoleMember}
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockAuthz.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) invoice(status, finalTotal, amountPaid string) *models.Invoice {
	return &models.Invoice{
		ID:             uuid.New(),
		OrganizationID: suite.orgID,
		PartyID:        uuid.New(),
		Status:         status,
		FinalTotal:     dec(finalTotal),
		AmountPaid:     dec(amountPaid),
	}
}

func (suite *PaymentServiceTestSuite) TestRecord_PartialPayment() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoiceUnpaid, "1000", "0")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, suite.orgID, invoice.ID, mock.AnythingOfType("*models.Payment"), models.InvoicePartiallyPaid).Return(nil)

	payment, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("400"),
		Method:    "upi",
	})
	suite.NoError(err)
	suite.True(payment.Amount.Equal(dec("400")))
	suite.Equal(invoice.PartyID, payment.PartyID)
	suite.False(payment.PaidAt.IsZero())
}

func (suite *PaymentServiceTestSuite) TestRecord_FinalPaymentMarksPaid() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoicePartiallyPaid, "1000", "400")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, suite.orgID, invoice.ID, mock.AnythingOfType("*models.Payment"), models.InvoicePaid).Return(nil)

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("600"),
		Method:    "bank_transfer",
	})
	suite.NoError(err)
}

func (suite *PaymentServiceTestSuite) TestRecord_OverpaymentRejected() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoicePartiallyPaid, "1000", "400")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("600.01"),
		Method:    "cash",
	})
	suite.Error(err)
	suite.Contains(err.Error(), "exceeds outstanding")
}

func (suite *PaymentServiceTestSuite) TestRecord_PaidInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoicePaid, "1000", "1000")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("1"),
		Method:    "cash",
	})
	suite.Error(err)
	suite.Contains(err.Error(), "already fully paid")
}

func (suite *PaymentServiceTestSuite) TestRecord_CancelledInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoiceCancelled, "1000", "0")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("100"),
		Method:    "cash",
	})
	suite.Error(err)
}

func (suite *PaymentServiceTestSuite) TestRecord_OverduePaysOff() {
	ctx := context.Background()
	invoice := suite.invoice(models.InvoiceOverdue, "500", "0")

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil)
	suite.mockInvoiceRepo.On("GetByID", ctx, suite.orgID, invoice.ID).Return(invoice, nil)
	suite.mockInvoiceRepo.On("ApplyPayment", ctx, suite.orgID, invoice.ID, mock.AnythingOfType("*models.Payment"), models.InvoicePaid).Return(nil)

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    dec("500"),
		Method:    "cash",
	})
	suite.NoError(err)
}

func (suite *PaymentServiceTestSuite) TestRecord_ValidationFailures() {
	ctx := context.Background()

	suite.mockAuthz.On("Authorize", ctx, suite.userID, suite.orgID).Return(suite.member, nil).Twice()

	_, err := suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    dec("0"),
		Method:    "cash",
	})
	suite.Error(err)

	_, err = suite.service.Record(ctx, suite.userID, suite.orgID, &RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    dec("10"),
		Method:    "",
	})
	suite.Error(err)
}

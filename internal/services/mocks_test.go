package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Member, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, organizationID, id uuid.UUID, role string) error {
	args := m.Called(ctx, organizationID, id, role)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockMemberRepository) CountByRole(ctx context.Context, organizationID uuid.UUID, role string) (int, error) {
	args := m.Called(ctx, organizationID, role)
	return args.Int(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetItem(ctx context.Context, organizationID, itemID uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, organizationID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockCacheService) SetItem(ctx context.Context, organizationID uuid.UUID, item *models.Item, ttl time.Duration) error {
	args := m.Called(ctx, organizationID, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItem(ctx context.Context, organizationID, itemID uuid.UUID) error {
	args := m.Called(ctx, organizationID, itemID)
	return args.Error(0)
}

func (m *MockCacheService) GetActiveOrganization(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCacheService) SetActiveOrganization(ctx context.Context, userID, organizationID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, userID, organizationID, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteActiveOrganization(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateOrganizationCache(ctx context.Context, organizationID uuid.UUID) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockAuthzService struct {
	mock.Mock
}

func (m *MockAuthzService) ResolveActiveOrganization(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockAuthzService) Authorize(ctx context.Context, userID, organizationID uuid.UUID, allowedRoles ...string) (*models.Member, error) {
	callArgs := []interface{}{ctx, userID, organizationID}
	for _, role := range allowedRoles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockAuthzService) SwitchOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockAuthzService) ClearSession(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetBySKU(ctx context.Context, organizationID uuid.UUID, sku string) (*models.Item, error) {
	args := m.Called(ctx, organizationID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, organizationID uuid.UUID, filter *models.ItemSearchFilter) ([]*models.Item, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) Create(ctx context.Context, taxRate *models.TaxRate) error {
	args := m.Called(ctx, taxRate)
	return args.Error(0)
}

func (m *MockTaxRateRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.TaxRate, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) Update(ctx context.Context, taxRate *models.TaxRate) error {
	args := m.Called(ctx, taxRate)
	return args.Error(0)
}

func (m *MockTaxRateRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockTaxRateRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*models.TaxRate, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TaxRate), args.Error(1)
}

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, party *models.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Party, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Party), args.Error(1)
}

func (m *MockPartyRepository) Update(ctx context.Context, party *models.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockPartyRepository) List(ctx context.Context, organizationID uuid.UUID, partyType string, limit, offset int) ([]*models.Party, error) {
	args := m.Called(ctx, organizationID, partyType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Party), args.Error(1)
}

func (m *MockPartyRepository) AdjustBalance(ctx context.Context, organizationID, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, organizationID, id, delta)
	return args.Error(0)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) ListByItem(ctx context.Context, organizationID, itemID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, organizationID, itemID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

func (m *MockStockRepository) CurrentStock(ctx context.Context, organizationID, itemID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRepository) LowStockItems(ctx context.Context, organizationID uuid.UUID) ([]repositories.LowStockRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.LowStockRow), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateWithItems(ctx context.Context, invoice *models.Invoice, movements []*models.StockMovement) error {
	args := m.Called(ctx, invoice, movements)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetItems(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.InvoiceItem, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByStatus(ctx context.Context, organizationID uuid.UUID, status string, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, organizationID, invoiceID uuid.UUID, status string) error {
	args := m.Called(ctx, organizationID, invoiceID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelWithRestock(ctx context.Context, organizationID, invoiceID uuid.UUID, movements []*models.StockMovement) error {
	args := m.Called(ctx, organizationID, invoiceID, movements)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, organizationID, invoiceID uuid.UUID, payment *models.Payment, newStatus string) error {
	args := m.Called(ctx, organizationID, invoiceID, payment, newStatus)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetOverdueCandidates(ctx context.Context, organizationID uuid.UUID, asOf time.Time) ([]*models.Invoice, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetGSTReportData(ctx context.Context, organizationID uuid.UUID, startDate, endDate time.Time) ([]repositories.GSTReportRow, error) {
	args := m.Called(ctx, organizationID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.GSTReportRow), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByInvoice(ctx context.Context, organizationID, invoiceID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByParty(ctx context.Context, organizationID, partyID uuid.UUID, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, organizationID, partyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListAll(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Invitation, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) GetPendingByEmailAndOrganization(ctx context.Context, email string, organizationID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, email, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendEmail(ctx context.Context, organizationID uuid.UUID, recipient, subject, body string) error {
	args := m.Called(ctx, organizationID, recipient, subject, body)
	return args.Error(0)
}

func (m *MockNotificationService) SendInvitationEmail(ctx context.Context, organizationID uuid.UUID, recipient string, invitationID uuid.UUID) error {
	args := m.Called(ctx, organizationID, recipient, invitationID)
	return args.Error(0)
}

func (m *MockNotificationService) SendLowStockAlert(ctx context.Context, organizationID uuid.UUID, itemName string, currentStock, minStock decimal.Decimal) error {
	args := m.Called(ctx, organizationID, itemName, currentStock, minStock)
	return args.Error(0)
}

func (m *MockNotificationService) SendWebhook(ctx context.Context, organizationID uuid.UUID, eventType string, payload map[string]interface{}) error {
	args := m.Called(ctx, organizationID, eventType, payload)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/billing"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/caching"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

const (
	itemCacheTTL     = 15 * time.Minute
	imageURLExpiry   = 1 * time.Hour
	itemImagesBucket = "item-images"
)

// ItemStockView is an item together with its aggregated stock and optional
// converted-unit display values.
type ItemStockView struct {
	Item        *models.Item                `json:"item"`
	Stock       decimal.Decimal             `json:"stock"`
	Conversions []billing.ConvertedQuantity `json:"conversions,omitempty"`
}

type ItemService interface {
	Create(ctx context.Context, actorID uuid.UUID, item *models.Item) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, actorID uuid.UUID, item *models.Item) error
	Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Item, error)
	Search(ctx context.Context, organizationID uuid.UUID, filter *models.ItemSearchFilter) ([]*models.Item, error)

	GetStockView(ctx context.Context, organizationID, id uuid.UUID) (*ItemStockView, error)
	AdjustStock(ctx context.Context, actorID, organizationID, itemID uuid.UUID, quantity decimal.Decimal, note string) error
	ListMovements(ctx context.Context, organizationID, itemID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
	LowStockItems(ctx context.Context, organizationID uuid.UUID) ([]repositories.LowStockRow, error)

	UploadImage(ctx context.Context, actorID, organizationID, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	GetImageURL(ctx context.Context, organizationID, itemID uuid.UUID) (string, error)
}

type itemService struct {
	itemRepo    repositories.ItemRepository
	stockRepo   repositories.StockRepository
	taxRateRepo repositories.TaxRateRepository
	unitRepo    repositories.UnitRepository
	authzSvc    AuthzService
	minioSvc    MinioService
	cacheSvc    caching.CacheService
}

func NewItemService(itemRepo repositories.ItemRepository, stockRepo repositories.StockRepository, taxRateRepo repositories.TaxRateRepository, unitRepo repositories.UnitRepository, authzSvc AuthzService, minioSvc MinioService, cacheSvc caching.CacheService) ItemService {
	return &itemService{
		itemRepo:    itemRepo,
		stockRepo:   stockRepo,
		taxRateRepo: taxRateRepo,
		unitRepo:    unitRepo,
		authzSvc:    authzSvc,
		minioSvc:    minioSvc,
		cacheSvc:    cacheSvc,
	}
}

func (s *itemService) validateItem(ctx context.Context, item *models.Item) error {
	if err := common.ValidateRequiredString(item.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(item.SKU, "sku"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeAmount(item.Price, "price"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeAmount(item.CostPrice, "cost_price"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeAmount(item.OpeningStock, "opening_stock"); err != nil {
		return err
	}
	if item.HSNCode != nil {
		if err := common.ValidateHSNCode(*item.HSNCode, "hsn_code"); err != nil {
			return err
		}
	}
	if item.CessRate != nil {
		if err := common.ValidateCessRate(*item.CessRate, "cess_rate"); err != nil {
			return err
		}
	}
	// Referenced tax rate and unit must belong to the same organization
	if item.TaxRateID != nil {
		if _, err := s.taxRateRepo.GetByID(ctx, item.OrganizationID, *item.TaxRateID); err != nil {
			return common.Invalidf("tax_rate_id", "does not reference a tax rate in this organization")
		}
	}
	if item.UnitID != nil {
		if _, err := s.unitRepo.GetByID(ctx, item.OrganizationID, *item.UnitID); err != nil {
			return common.Invalidf("unit_id", "does not reference a unit in this organization")
		}
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, actorID uuid.UUID, item *models.Item) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, item.OrganizationID); err != nil {
		return err
	}
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	if existing, err := s.itemRepo.GetBySKU(ctx, item.OrganizationID, item.SKU); err == nil && existing != nil {
		return common.Invalidf("sku", "an item with SKU %s already exists", item.SKU)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return common.SecureErrorMessage("create item", err)
	}
	return nil
}

func (s *itemService) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Item, error) {
	if cached, err := s.cacheSvc.GetItem(ctx, organizationID, id); err == nil && cached != nil {
		return cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetItem(ctx, organizationID, item, itemCacheTTL); err != nil {
		log.Printf("Failed to cache item %s: %v", id, err)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, actorID uuid.UUID, item *models.Item) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, item.OrganizationID); err != nil {
		return err
	}
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	existing, err := s.itemRepo.GetByID(ctx, item.OrganizationID, item.ID)
	if err != nil {
		return common.SecureErrorMessage("load item", err)
	}
	// Opening stock is fixed at creation; corrections go through adjustments
	item.OpeningStock = existing.OpeningStock
	if item.ImageKey == nil {
		item.ImageKey = existing.ImageKey
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return common.SecureErrorMessage("update item", err)
	}
	if err := s.cacheSvc.DeleteItem(ctx, item.OrganizationID, item.ID); err != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", item.ID, err)
	}
	return nil
}

func (s *itemService) Delete(ctx context.Context, actorID, organizationID, id uuid.UUID) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	item, err := s.itemRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return common.SecureErrorMessage("load item", err)
	}
	if err := s.itemRepo.Delete(ctx, organizationID, id); err != nil {
		return common.SecureErrorMessage("delete item", err)
	}
	if err := s.cacheSvc.DeleteItem(ctx, organizationID, id); err != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", id, err)
	}
	if item.ImageKey != nil {
		if err := s.minioSvc.DeleteImage(ctx, itemImagesBucket, *item.ImageKey); err != nil {
			log.Printf("Failed to delete image %s for item %s: %v", *item.ImageKey, id, err)
		}
	}
	return nil
}

func (s *itemService) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.List(ctx, organizationID, limit, offset)
}

func (s *itemService) Search(ctx context.Context, organizationID uuid.UUID, filter *models.ItemSearchFilter) ([]*models.Item, error) {
	limit, offset, err := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = limit, offset
	return s.itemRepo.Search(ctx, organizationID, filter)
}

// GetStockView returns the item with its aggregated stock and, when the item
// has a unit with registered conversions, the converted display quantities.
func (s *itemService) GetStockView(ctx context.Context, organizationID, id uuid.UUID) (*ItemStockView, error) {
	item, err := s.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.CurrentStock(ctx, organizationID, id)
	if err != nil {
		return nil, common.SecureErrorMessage("aggregate stock", err)
	}

	view := &ItemStockView{Item: item, Stock: stock}
	if item.UnitID != nil {
		conversions, err := s.unitRepo.ListConversionsByUnit(ctx, organizationID, *item.UnitID)
		if err != nil {
			return nil, common.SecureErrorMessage("load unit conversions", err)
		}
		view.Conversions = billing.ConvertAll(stock, conversions)
	}
	return view, nil
}

// AdjustStock records a signed manual correction. Positive quantities add
// stock, negative quantities remove it; the ledger keeps both as adjustments.
func (s *itemService) AdjustStock(ctx context.Context, actorID, organizationID, itemID uuid.UUID, quantity decimal.Decimal, note string) error {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID, models.RoleOwner, models.RoleAdmin); err != nil {
		return err
	}
	if quantity.IsZero() {
		return common.Invalidf("quantity", "adjustment quantity cannot be zero")
	}
	if _, err := s.itemRepo.GetByID(ctx, organizationID, itemID); err != nil {
		return common.SecureErrorMessage("load item", err)
	}

	movement := &models.StockMovement{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		ItemID:         itemID,
		Type:           models.StockMovementAdjustment,
		Quantity:       quantity,
	}
	if note != "" {
		movement.Note = &note
	}
	if err := s.stockRepo.CreateMovement(ctx, movement); err != nil {
		return common.SecureErrorMessage("record stock adjustment", err)
	}
	return nil
}

func (s *itemService) ListMovements(ctx context.Context, organizationID, itemID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.stockRepo.ListByItem(ctx, organizationID, itemID, limit, offset)
}

func (s *itemService) LowStockItems(ctx context.Context, organizationID uuid.UUID) ([]repositories.LowStockRow, error) {
	return s.stockRepo.LowStockItems(ctx, organizationID)
}

func (s *itemService) UploadImage(ctx context.Context, actorID, organizationID, itemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.authzSvc.Authorize(ctx, actorID, organizationID); err != nil {
		return "", err
	}
	item, err := s.itemRepo.GetByID(ctx, organizationID, itemID)
	if err != nil {
		return "", common.SecureErrorMessage("load item", err)
	}

	objectName := fmt.Sprintf("%s/%s/%s", organizationID, itemID, uuid.New())
	if err := s.minioSvc.UploadImage(ctx, itemImagesBucket, objectName, reader, size, contentType); err != nil {
		return "", common.SecureErrorMessage("upload image", err)
	}

	old := item.ImageKey
	item.ImageKey = &objectName
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return "", common.SecureErrorMessage("update item", err)
	}
	if err := s.cacheSvc.DeleteItem(ctx, organizationID, itemID); err != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", itemID, err)
	}
	if old != nil {
		if err := s.minioSvc.DeleteImage(ctx, itemImagesBucket, *old); err != nil {
			log.Printf("Failed to delete replaced image %s: %v", *old, err)
		}
	}
	return objectName, nil
}

func (s *itemService) GetImageURL(ctx context.Context, organizationID, itemID uuid.UUID) (string, error) {
	item, err := s.GetByID(ctx, organizationID, itemID)
	if err != nil {
		return "", err
	}
	if item.ImageKey == nil {
		return "", errors.New("item has no image")
	}
	return s.minioSvc.GetPresignedURL(ctx, itemImagesBucket, *item.ImageKey, imageURLExpiry)
}

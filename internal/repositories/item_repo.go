package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Item, error)
	GetBySKU(ctx context.Context, organizationID uuid.UUID, sku string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Item, error)
	Search(ctx context.Context, organizationID uuid.UUID, filter *models.ItemSearchFilter) ([]*models.Item, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepository(db Database) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, organization_id, name, sku, description, hsn_code, price, cost_price, mrp, tax_rate_id, cess_rate, unit_id, opening_stock, min_stock, max_stock, image_key, created_at, updated_at`

func (r *itemRepo) scanItem(row interface{ Scan(dest ...any) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.OrganizationID, &item.Name, &item.SKU, &item.Description, &item.HSNCode, &item.Price, &item.CostPrice, &item.MRP, &item.TaxRateID, &item.CessRate, &item.UnitID, &item.OpeningStock, &item.MinStock, &item.MaxStock, &item.ImageKey, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, organization_id, name, sku, description, hsn_code, price, cost_price, mrp, tax_rate_id, cess_rate, unit_id, opening_stock, min_stock, max_stock, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.OrganizationID, item.Name, item.SKU, item.Description, item.HSNCode, item.Price, item.CostPrice, item.MRP, item.TaxRateID, item.CessRate, item.UnitID, item.OpeningStock, item.MinStock, item.MaxStock, item.ImageKey)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1 AND id = $2
	`
	return r.scanItem(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *itemRepo) GetBySKU(ctx context.Context, organizationID uuid.UUID, sku string) (*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1 AND sku = $2
	`
	return r.scanItem(r.db.QueryRow(ctx, query, organizationID, sku))
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, sku = $2, description = $3, hsn_code = $4, price = $5, cost_price = $6, mrp = $7, tax_rate_id = $8, cess_rate = $9, unit_id = $10, opening_stock = $11, min_stock = $12, max_stock = $13, image_key = $14, updated_at = NOW()
		WHERE organization_id = $15 AND id = $16
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.SKU, item.Description, item.HSNCode, item.Price, item.CostPrice, item.MRP, item.TaxRateID, item.CessRate, item.UnitID, item.OpeningStock, item.MinStock, item.MaxStock, item.ImageKey, item.OrganizationID, item.ID)
	return err
}

func (r *itemRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM items WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *itemRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) Search(ctx context.Context, organizationID uuid.UUID, filter *models.ItemSearchFilter) ([]*models.Item, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{organizationID}
	argPos := 2

	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}
	if filter.SKU != nil {
		conditions = append(conditions, fmt.Sprintf("sku = $%d", argPos))
		args = append(args, *filter.SKU)
		argPos++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argPos))
		args = append(args, *filter.MinPrice)
		argPos++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argPos))
		args = append(args, *filter.MaxPrice)
		argPos++
	}

	sortField := "name"
	switch filter.SortBy {
	case "created_at", "price":
		sortField = filter.SortBy
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT `+itemColumns+`
		FROM items
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), sortField, sortOrder, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

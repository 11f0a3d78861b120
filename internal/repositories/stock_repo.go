package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

// LowStockRow is an item whose aggregated stock has fallen to or below its
// configured minimum.
type LowStockRow struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
}

type StockRepository interface {
	CreateMovement(ctx context.Context, movement *models.StockMovement) error
	ListByItem(ctx context.Context, organizationID, itemID uuid.UUID, limit, offset int) ([]*models.StockMovement, error)
	// CurrentStock aggregates opening stock plus the signed sum of movements.
	CurrentStock(ctx context.Context, organizationID, itemID uuid.UUID) (decimal.Decimal, error)
	LowStockItems(ctx context.Context, organizationID uuid.UUID) ([]LowStockRow, error)
}

type stockRepo struct {
	db Database
}

func NewStockRepository(db Database) StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, organization_id, item_id, type, quantity, reference, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, movement.ID, movement.OrganizationID, movement.ItemID, movement.Type, movement.Quantity, movement.Reference, movement.Note)
	return err
}

func (r *stockRepo) ListByItem(ctx context.Context, organizationID, itemID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	query := `
		SELECT id, organization_id, item_id, type, quantity, reference, note, created_at
		FROM stock_movements
		WHERE organization_id = $1 AND item_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, organizationID, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		movement := &models.StockMovement{}
		if err := rows.Scan(&movement.ID, &movement.OrganizationID, &movement.ItemID, &movement.Type, &movement.Quantity, &movement.Reference, &movement.Note, &movement.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func (r *stockRepo) CurrentStock(ctx context.Context, organizationID, itemID uuid.UUID) (decimal.Decimal, error) {
	var stock decimal.Decimal
	// 'in' and positive adjustments add, 'out' subtracts
	query := `
		SELECT i.opening_stock + COALESCE(SUM(
			CASE sm.type
				WHEN 'out' THEN -sm.quantity
				ELSE sm.quantity
			END
		), 0)
		FROM items i
		LEFT JOIN stock_movements sm ON sm.item_id = i.id AND sm.organization_id = i.organization_id
		WHERE i.organization_id = $1 AND i.id = $2
		GROUP BY i.opening_stock
	`
	err := r.db.QueryRow(ctx, query, organizationID, itemID).Scan(&stock)
	if err != nil {
		return decimal.Zero, err
	}
	return stock, nil
}

func (r *stockRepo) LowStockItems(ctx context.Context, organizationID uuid.UUID) ([]LowStockRow, error) {
	query := `
		SELECT i.id, i.name, i.sku,
			i.opening_stock + COALESCE(SUM(
				CASE sm.type WHEN 'out' THEN -sm.quantity ELSE sm.quantity END
			), 0) AS stock,
			i.min_stock
		FROM items i
		LEFT JOIN stock_movements sm ON sm.item_id = i.id AND sm.organization_id = i.organization_id
		WHERE i.organization_id = $1 AND i.min_stock IS NOT NULL
		GROUP BY i.id, i.name, i.sku, i.opening_stock, i.min_stock
		HAVING i.opening_stock + COALESCE(SUM(
			CASE sm.type WHEN 'out' THEN -sm.quantity ELSE sm.quantity END
		), 0) <= i.min_stock
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lowStock []LowStockRow
	for rows.Next() {
		var row LowStockRow
		if err := rows.Scan(&row.ItemID, &row.Name, &row.SKU, &row.Stock, &row.MinStock); err != nil {
			return nil, err
		}
		lowStock = append(lowStock, row)
	}
	return lowStock, rows.Err()
}

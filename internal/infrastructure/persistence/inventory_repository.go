package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Find returns a page of items matching the filter
func (r *GormItemRepository) Find(ctx context.Context, filter shared.Filter) ([]*inventory.Item, error) {
	var items []*inventory.Item
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves with an optimistic version check. Stock adjustments
// go through here so concurrent sales cannot both consume the same units.
func (r *GormItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	currentVersion := item.Version
	item.Version++
	item.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Where("id = ? AND version = ?", item.ID, currentVersion).
		Updates(map[string]interface{}{
			"item_name":           item.ItemName,
			"category":            item.Category,
			"size":                item.Size,
			"color":               item.Color,
			"sku":                 item.SKU,
			"quantity":            item.Quantity,
			"unit_price":          item.UnitPrice,
			"low_stock_threshold": item.LowStockThreshold,
			"supplier_id":         item.SupplierID,
			"last_restocked":      item.LastRestocked,
			"version":             item.Version,
			"updated_at":          item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		item.Version = currentVersion
		return shared.NewDomainError(shared.ErrConcurrencyConflict.Code,
			"the item has been modified by another user")
	}
	return nil
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates the whole inventory in one query
func (r *GormItemRepository) Stats(ctx context.Context) (*inventory.Stats, error) {
	var row struct {
		TotalItems    int64
		TotalQuantity decimal.Decimal
		LowStockCount int64
		TotalValue    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(`COUNT(*) AS total_items,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(CASE WHEN low_stock_threshold > 0 AND quantity <= low_stock_threshold THEN 1 ELSE 0 END), 0) AS low_stock_count,
			COALESCE(SUM(quantity * unit_price), 0) AS total_value`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &inventory.Stats{
		TotalItems:    row.TotalItems,
		TotalQuantity: row.TotalQuantity.String(),
		LowStockCount: row.LowStockCount,
		TotalValue:    row.TotalValue.StringFixed(2),
	}, nil
}

func (r *GormItemRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("item_name ILIKE ? OR sku ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "low_stock":
			if isLow, ok := value.(bool); ok && isLow {
				query = query.Where("low_stock_threshold > 0 AND quantity <= low_stock_threshold")
			}
		}
	}
	return query
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)

package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/shared"
)

// Stats is the aggregate view of the whole inventory
type Stats struct {
	TotalItems    int64  `json:"total_items"`
	TotalQuantity string `json:"total_quantity"`
	LowStockCount int64  `json:"low_stock_count"`
	TotalValue    string `json:"total_value"`
}

// ItemRepository is the persistence contract for catalog items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	Find(ctx context.Context, filter shared.Filter) ([]*Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *Item) error
	SaveWithLock(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

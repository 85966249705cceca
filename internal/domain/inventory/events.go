package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// EventItemLowStock is emitted when stock falls to or below the threshold
const EventItemLowStock = "inventory.item.low_stock"

// ItemLowStockEvent signals that an item crossed its low stock threshold
type ItemLowStockEvent struct {
	shared.BaseDomainEvent
	ItemName  string          `json:"item_name"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
}

// NewItemLowStockEvent creates an ItemLowStockEvent
func NewItemLowStockEvent(itemID uuid.UUID, name, sku string, quantity, threshold decimal.Decimal) ItemLowStockEvent {
	return ItemLowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventItemLowStock, itemID),
		ItemName:        name,
		SKU:             sku,
		Quantity:        quantity,
		Threshold:       threshold,
	}
}

package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// AdjustOperation is the direction of a stock adjustment
type AdjustOperation string

const (
	AdjustAdd      AdjustOperation = "add"
	AdjustSubtract AdjustOperation = "subtract"
)

// IsValid reports whether the operation is a known value
func (op AdjustOperation) IsValid() bool {
	return op == AdjustAdd || op == AdjustSubtract
}

// Stock status labels derived from the quantity
const (
	StockStatusInStock    = "In Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// Item is a catalog entry with its current stock level
type Item struct {
	shared.BaseAggregateRoot
	ItemName          string          `gorm:"size:200;not null;index" json:"item_name"`
	Category          string          `gorm:"size:100;index" json:"category"`
	Size              string          `gorm:"size:50" json:"size"`
	Color             string          `gorm:"size:50" json:"color"`
	SKU               string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_price"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"low_stock_threshold"`
	SupplierID        *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	LastRestocked     *time.Time      `json:"last_restocked,omitempty"`
}

// TableName returns the table name for Item
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new catalog item
func NewItem(name, category, size, color, sku string, quantity, unitPrice, lowStockThreshold decimal.Decimal, supplierID *uuid.UUID) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "item name is required")
	}
	if sku == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "sku is required")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "unit price cannot be negative")
	}
	if lowStockThreshold.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "low stock threshold cannot be negative")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemName:          name,
		Category:          category,
		Size:              size,
		Color:             color,
		SKU:               sku,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		LowStockThreshold: lowStockThreshold,
		SupplierID:        supplierID,
	}, nil
}

// StockStatus returns the display status derived from the quantity
func (i *Item) StockStatus() string {
	if i.Quantity.IsPositive() {
		return StockStatusInStock
	}
	return StockStatusOutOfStock
}

// IsLowStock reports whether the quantity is at or below the threshold
func (i *Item) IsLowStock() bool {
	return i.LowStockThreshold.IsPositive() && i.Quantity.LessThanOrEqual(i.LowStockThreshold)
}

// UpdateDetails changes the descriptive fields
func (i *Item) UpdateDetails(name, category, size, color string, unitPrice, lowStockThreshold decimal.Decimal, supplierID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "item name is required")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeValidation, "unit price cannot be negative")
	}
	if lowStockThreshold.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeValidation, "low stock threshold cannot be negative")
	}
	i.ItemName = name
	i.Category = category
	i.Size = size
	i.Color = color
	i.UnitPrice = unitPrice
	i.LowStockThreshold = lowStockThreshold
	i.SupplierID = supplierID
	i.Touch()
	return nil
}

// AddStock increases the quantity and stamps the restock time
func (i *Item) AddStock(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError(shared.ErrCodeValidation, "quantity must be positive")
	}
	i.Quantity = i.Quantity.Add(qty)
	now := time.Now()
	i.LastRestocked = &now
	i.Touch()
	return nil
}

// SubtractStock decreases the quantity, never below zero. Crossing the
// low stock threshold emits an ItemLowStockEvent.
func (i *Item) SubtractStock(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError(shared.ErrCodeValidation, "quantity must be positive")
	}
	if qty.GreaterThan(i.Quantity) {
		return shared.NewDomainErrorf(shared.ErrInsufficientStock.Code,
			"cannot subtract %s from %s in stock for %q", qty.String(), i.Quantity.String(), i.ItemName)
	}
	wasLow := i.IsLowStock()
	i.Quantity = i.Quantity.Sub(qty)
	i.Touch()
	if !wasLow && i.IsLowStock() {
		i.AddEvent(NewItemLowStockEvent(i.ID, i.ItemName, i.SKU, i.Quantity, i.LowStockThreshold))
	}
	return nil
}

// Adjust applies an add or subtract operation
func (i *Item) Adjust(op AdjustOperation, qty decimal.Decimal) error {
	switch op {
	case AdjustAdd:
		return i.AddStock(qty)
	case AdjustSubtract:
		return i.SubtractStock(qty)
	default:
		return shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown adjust operation %q", op)
	}
}

// StockValue returns quantity times unit price
func (i *Item) StockValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

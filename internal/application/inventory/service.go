package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
)

// Service coordinates catalog and stock use cases
type Service struct {
	itemRepo inventory.ItemRepository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewService creates an inventory Service
func NewService(itemRepo inventory.ItemRepository, eventBus shared.EventBus, logger *zap.Logger) *Service {
	return &Service{itemRepo: itemRepo, eventBus: eventBus, logger: logger}
}

// CreateItemRequest is the application-level create input
type CreateItemRequest struct {
	ItemName          string
	Category          string
	Size              string
	Color             string
	SKU               string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	LowStockThreshold decimal.Decimal
	SupplierID        *uuid.UUID
}

// UpdateItemRequest is the application-level update input
type UpdateItemRequest struct {
	ItemName          string
	Category          string
	Size              string
	Color             string
	UnitPrice         decimal.Decimal
	LowStockThreshold decimal.Decimal
	SupplierID        *uuid.UUID
}

// ListItemsRequest carries list query options
type ListItemsRequest struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Category string
}

// ItemList is a page of items with the total count
type ItemList struct {
	Items []*inventory.Item
	Total int64
}

// Create adds a catalog item; the SKU must be unused
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*inventory.Item, error) {
	if existing, err := s.itemRepo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, shared.NewDomainErrorf(shared.ErrAlreadyExists.Code, "sku %q is already in use", req.SKU)
	}

	item, err := inventory.NewItem(req.ItemName, req.Category, req.Size, req.Color, req.SKU,
		req.Quantity, req.UnitPrice, req.LowStockThreshold, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("inventory item created",
		zap.String("item_id", item.ID.String()), zap.String("sku", item.SKU))
	return item, nil
}

// GetByID returns one item
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	return s.itemRepo.FindByID(ctx, id)
}

// List returns a page of items and the total count
func (s *Service) List(ctx context.Context, req ListItemsRequest) (*ItemList, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	filter.Normalize()
	if req.Category != "" {
		filter.Filters = map[string]any{"category": req.Category}
	}

	items, err := s.itemRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ItemList{Items: items, Total: total}, nil
}

// Update changes descriptive fields; stock moves only through Adjust
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*inventory.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdateDetails(req.ItemName, req.Category, req.Size, req.Color,
		req.UnitPrice, req.LowStockThreshold, req.SupplierID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Adjust adds or subtracts stock under optimistic locking
func (s *Service) Adjust(ctx context.Context, id uuid.UUID, op inventory.AdjustOperation, qty decimal.Decimal) (*inventory.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Adjust(op, qty); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item.PendingEvents())
	item.ClearEvents()

	s.logger.Info("inventory adjusted",
		zap.String("item_id", item.ID.String()),
		zap.String("operation", string(op)),
		zap.String("quantity", qty.String()),
		zap.String("new_quantity", item.Quantity.String()))
	return item, nil
}

// Delete removes a catalog item
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// Stats returns totals for the dashboard
func (s *Service) Stats(ctx context.Context) (*inventory.Stats, error) {
	return s.itemRepo.Stats(ctx)
}

func (s *Service) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	for _, event := range events {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
}

// RegisterLowStockLogger subscribes a handler that logs low stock
// warnings as they happen.
func RegisterLowStockLogger(bus shared.EventBus, logger *zap.Logger) {
	bus.Subscribe(inventory.EventItemLowStock, func(_ context.Context, event shared.DomainEvent) error {
		if e, ok := event.(inventory.ItemLowStockEvent); ok {
			logger.Warn("item is low on stock",
				zap.String("item_id", e.AggregateID().String()),
				zap.String("item_name", e.ItemName),
				zap.String("sku", e.SKU),
				zap.String("quantity", e.Quantity.String()),
				zap.String("threshold", e.Threshold.String()))
		}
		return nil
	})
}

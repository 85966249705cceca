package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// SalesInvoiceService coordinates sales invoice use cases.
// Creation commits the invoice and every stock decrement in one
// transaction: either the sale and all decrements land, or none do.
type SalesInvoiceService struct {
	scope       TransactionScope
	invoiceRepo trade.SalesInvoiceRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	eventBus    shared.EventBus
	logger      *zap.Logger
}

// NewSalesInvoiceService creates a SalesInvoiceService
func NewSalesInvoiceService(
	scope TransactionScope,
	invoiceRepo trade.SalesInvoiceRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *SalesInvoiceService {
	return &SalesInvoiceService{
		scope:       scope,
		invoiceRepo: invoiceRepo,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create builds, submits and persists a sales invoice. Every line
// bound to an inventory item has its stock re-checked and decremented
// inside the same transaction as the invoice insert.
func (s *SalesInvoiceService) Create(ctx context.Context, req CreateSalesInvoiceRequest) (*trade.SalesInvoice, error) {
	if err := s.guardDuplicate(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	var invoice *trade.SalesInvoice
	var itemEvents []shared.DomainEvent
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		itemEvents = itemEvents[:0]
		number, err := repos.SalesInvoices.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		invoice, err = buildSalesInvoice(ctx, number, req, repos.Items)
		if err != nil {
			return err
		}

		if err := invoice.Submit(); err != nil {
			return err
		}

		// Stock is re-checked here, under the transaction, so a
		// concurrent sale cannot drive quantities negative.
		for _, line := range invoice.BoundLines() {
			item, err := repos.Items.FindByID(ctx, *line.InventoryID)
			if err != nil {
				return err
			}
			if err := item.SubtractStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.Items.SaveWithLock(ctx, item); err != nil {
				return err
			}
			// Events are collected here and published only after the
			// transaction commits; a rollback must not broadcast them.
			itemEvents = append(itemEvents, item.PendingEvents()...)
			item.ClearEvents()
		}

		return repos.SalesInvoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, itemEvents)
	s.publishEvents(ctx, invoice.PendingEvents())
	invoice.ClearEvents()

	s.logger.Info("sales invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("grand_total", invoice.GrandTotal.String()))
	return invoice, nil
}

// buildSalesInvoice assembles the aggregate from the request, binding
// lines to inventory where an item reference is given.
func buildSalesInvoice(ctx context.Context, number string, req CreateSalesInvoiceRequest, items inventory.ItemRepository) (*trade.SalesInvoice, error) {
	invoice, err := trade.NewSalesInvoice(number, req.CustomerID, req.CustomerName, req.SaleDate)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "an invoice needs at least one line")
	}

	for idx, input := range req.Lines {
		if idx > 0 {
			if err := invoice.AddLine(); err != nil {
				return nil, err
			}
		}

		if input.InventoryID != nil {
			item, err := items.FindByID(ctx, *input.InventoryID)
			if err != nil {
				return nil, err
			}
			err = invoice.BindInventory(idx, trade.InventorySnapshot{
				InventoryID:    item.ID,
				ItemName:       item.ItemName,
				UnitPrice:      item.UnitPrice,
				QuantityOnHand: item.Quantity,
			})
			if err != nil {
				return nil, err
			}
		} else {
			if err := invoice.UpdateLineName(idx, input.ItemName); err != nil {
				return nil, err
			}
		}

		if err := invoice.UpdateLineQuantity(idx, input.Quantity); err != nil {
			return nil, err
		}
		// The requested price wins over the catalog snapshot so a
		// manual markdown at the till is kept.
		if err := invoice.UpdateLineUnitPrice(idx, input.UnitPrice); err != nil {
			return nil, err
		}
	}

	if req.TaxRate != nil {
		if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := invoice.ApplyDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		if err := invoice.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := invoice.ChangePaymentStatus(*req.PaymentStatus); err != nil {
			return nil, err
		}
	}
	return invoice, nil
}

// GetByID returns one invoice with its lines
func (s *SalesInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*trade.SalesInvoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// List returns a page of invoices and the total count
func (s *SalesInvoiceService) List(ctx context.Context, req ListInvoicesRequest) (*SalesInvoiceList, error) {
	filter := req.toFilter("payment_status")

	invoices, err := s.invoiceRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SalesInvoiceList{Invoices: invoices, Total: total}, nil
}

// UpdatePaymentStatus is the only mutation accepted after submission
func (s *SalesInvoiceService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status trade.PaymentStatus) (*trade.SalesInvoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.ChangePaymentStatus(status); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, invoice.PendingEvents())
	invoice.ClearEvents()
	return invoice, nil
}

// Delete removes an invoice. Stock consumed by the sale is not
// restored; corrections go through an inventory adjustment.
func (s *SalesInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sales invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// guardDuplicate rejects a replayed Idempotency-Key within the TTL
func (s *SalesInvoiceService) guardDuplicate(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, "sales:"+key, s.idemConfig.TTL)
	if err != nil {
		// The guard is best effort; a broken store must not block sales
		s.logger.Warn("idempotency store unavailable", zap.Error(err))
		return nil
	}
	if !fresh {
		return shared.NewDomainError(shared.ErrCodeDuplicateSubmission, "this submission was already processed")
	}
	return nil
}

func (s *SalesInvoiceService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

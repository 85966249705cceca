package trade

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// PurchaseInvoiceService coordinates purchase invoice use cases.
// Marking a purchase received restocks every bound item in the same
// transaction as the status change.
type PurchaseInvoiceService struct {
	scope       TransactionScope
	invoiceRepo trade.PurchaseInvoiceRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	eventBus    shared.EventBus
	logger      *zap.Logger
}

// NewPurchaseInvoiceService creates a PurchaseInvoiceService
func NewPurchaseInvoiceService(
	scope TransactionScope,
	invoiceRepo trade.PurchaseInvoiceRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *PurchaseInvoiceService {
	return &PurchaseInvoiceService{
		scope:       scope,
		invoiceRepo: invoiceRepo,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create builds, submits and persists a purchase invoice. An initial
// status of Received restocks bound items in the same transaction.
func (s *PurchaseInvoiceService) Create(ctx context.Context, req CreatePurchaseInvoiceRequest) (*trade.PurchaseInvoice, error) {
	if err := s.guardDuplicate(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	var invoice *trade.PurchaseInvoice
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		number, err := repos.PurchaseInvoices.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		invoice, err = trade.NewPurchaseInvoice(number, req.SupplierID, req.SupplierName, req.PurchaseDate)
		if err != nil {
			return err
		}
		if len(req.Lines) == 0 {
			return shared.NewDomainError(shared.ErrCodeValidation, "an invoice needs at least one line")
		}

		for idx, input := range req.Lines {
			if idx > 0 {
				if err := invoice.AddLine(); err != nil {
					return err
				}
			}
			name := input.ItemName
			if input.InventoryID != nil && name == "" {
				item, err := repos.Items.FindByID(ctx, *input.InventoryID)
				if err != nil {
					return err
				}
				name = item.ItemName
			}
			if err := invoice.UpdateLine(idx, name, input.Quantity, input.UnitPrice, input.InventoryID); err != nil {
				return err
			}
		}

		if req.TaxRate != nil {
			if err := invoice.SetTaxRate(*req.TaxRate); err != nil {
				return err
			}
		}
		if req.Discount != nil {
			if err := invoice.ApplyDiscount(*req.Discount); err != nil {
				return err
			}
		}
		if req.Notes != "" {
			if err := invoice.SetNotes(req.Notes); err != nil {
				return err
			}
		}

		if err := invoice.Submit(); err != nil {
			return err
		}

		if req.Status != nil && *req.Status != trade.PurchaseStatusOrdered {
			if err := s.transition(ctx, invoice, *req.Status, repos); err != nil {
				return err
			}
		}

		return repos.PurchaseInvoices.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice.PendingEvents())
	invoice.ClearEvents()

	s.logger.Info("purchase invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("status", string(invoice.PurchaseStatus)))
	return invoice, nil
}

// GetByID returns one invoice with its lines
func (s *PurchaseInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseInvoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// List returns a page of invoices and the total count
func (s *PurchaseInvoiceService) List(ctx context.Context, req ListInvoicesRequest) (*PurchaseInvoiceList, error) {
	filter := req.toFilter("purchase_status")

	invoices, err := s.invoiceRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PurchaseInvoiceList{Invoices: invoices, Total: total}, nil
}

// UpdateStatus is the only mutation accepted after submission.
// Moving to Received restocks bound items atomically with the save.
func (s *PurchaseInvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.PurchaseStatus) (*trade.PurchaseInvoice, error) {
	var invoice *trade.PurchaseInvoice
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.PurchaseInvoices.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.transition(ctx, invoice, status, repos); err != nil {
			return err
		}
		return repos.PurchaseInvoices.SaveWithLock(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice.PendingEvents())
	invoice.ClearEvents()
	return invoice, nil
}

// transition applies a status change and, on Received, adds the
// purchased quantities back to stock.
func (s *PurchaseInvoiceService) transition(ctx context.Context, invoice *trade.PurchaseInvoice, status trade.PurchaseStatus, repos TransactionalRepositories) error {
	if err := invoice.ChangeStatus(status); err != nil {
		return err
	}
	if status != trade.PurchaseStatusReceived {
		return nil
	}
	for _, line := range invoice.BoundLines() {
		item, err := repos.Items.FindByID(ctx, *line.InventoryID)
		if err != nil {
			return err
		}
		if err := item.AddStock(line.Quantity); err != nil {
			return err
		}
		if err := repos.Items.SaveWithLock(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an invoice
func (s *PurchaseInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("purchase invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

func (s *PurchaseInvoiceService) guardDuplicate(ctx context.Context, key string) error {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, "purchases:"+key, s.idemConfig.TTL)
	if err != nil {
		s.logger.Warn("idempotency store unavailable", zap.Error(err))
		return nil
	}
	if !fresh {
		return shared.NewDomainError(shared.ErrCodeDuplicateSubmission, "this submission was already processed")
	}
	return nil
}

func (s *PurchaseInvoiceService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

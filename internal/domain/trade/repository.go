package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/shared"
)

// SalesInvoiceRepository is the persistence contract for sales invoices
type SalesInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesInvoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*SalesInvoice, error)
	Find(ctx context.Context, filter shared.Filter) ([]*SalesInvoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *SalesInvoice) error
	SaveWithLock(ctx context.Context, invoice *SalesInvoice) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextInvoiceNumber returns the next free number, e.g. INV-2026-00042
	NextInvoiceNumber(ctx context.Context) (string, error)
}

// PurchaseInvoiceRepository is the persistence contract for purchase invoices
type PurchaseInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseInvoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*PurchaseInvoice, error)
	Find(ctx context.Context, filter shared.Filter) ([]*PurchaseInvoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *PurchaseInvoice) error
	SaveWithLock(ctx context.Context, invoice *PurchaseInvoice) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextInvoiceNumber returns the next free number, e.g. PUR-2026-00042
	NextInvoiceNumber(ctx context.Context) (string, error)
}

package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// InvoiceLineInput is one requested invoice line. InventoryID binds
// the line to a catalog item, which snapshots name, price and a stock
// cap before the requested quantity is applied.
type InvoiceLineInput struct {
	ItemName    string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	InventoryID *uuid.UUID
}

// CreateSalesInvoiceRequest is the application-level create input
type CreateSalesInvoiceRequest struct {
	CustomerID     *uuid.UUID
	CustomerName   string
	SaleDate       time.Time
	Lines          []InvoiceLineInput
	TaxRate        *decimal.Decimal
	Discount       *decimal.Decimal
	Notes          string
	PaymentStatus  *trade.PaymentStatus
	IdempotencyKey string
}

// CreatePurchaseInvoiceRequest is the application-level create input
type CreatePurchaseInvoiceRequest struct {
	SupplierID     *uuid.UUID
	SupplierName   string
	PurchaseDate   time.Time
	Lines          []InvoiceLineInput
	TaxRate        *decimal.Decimal
	Discount       *decimal.Decimal
	Notes          string
	Status         *trade.PurchaseStatus
	IdempotencyKey string
}

// ListInvoicesRequest carries list query options
type ListInvoicesRequest struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}

func (r ListInvoicesRequest) toFilter(statusField string) shared.Filter {
	filter := shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
		Search:   r.Search,
	}
	filter.Normalize()
	if r.Status != "" {
		filter.Filters = map[string]any{statusField: r.Status}
	}
	return filter
}

// SalesInvoiceList is a page of sales invoices with the total count
type SalesInvoiceList struct {
	Invoices []*trade.SalesInvoice
	Total    int64
}

// PurchaseInvoiceList is a page of purchase invoices with the total count
type PurchaseInvoiceList struct {
	Invoices []*trade.PurchaseInvoice
	Total    int64
}

package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// Event type names for the trade module
const (
	EventSalesInvoiceCreated        = "trade.sales_invoice.created"
	EventSalesInvoiceSubmitted      = "trade.sales_invoice.submitted"
	EventSalesInvoicePaymentChanged = "trade.sales_invoice.payment_changed"
	EventPurchaseInvoiceCreated     = "trade.purchase_invoice.created"
	EventPurchaseInvoiceReceived    = "trade.purchase_invoice.received"
)

// SalesInvoiceCreatedEvent is emitted when a sales invoice draft is created
type SalesInvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	CustomerName  string `json:"customer_name"`
}

// NewSalesInvoiceCreatedEvent creates a SalesInvoiceCreatedEvent
func NewSalesInvoiceCreatedEvent(invoiceID uuid.UUID, number, customerName string) SalesInvoiceCreatedEvent {
	return SalesInvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSalesInvoiceCreated, invoiceID),
		InvoiceNumber:   number,
		CustomerName:    customerName,
	}
}

// SalesInvoiceSubmittedEvent is emitted when a draft is finalized
type SalesInvoiceSubmittedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// NewSalesInvoiceSubmittedEvent creates a SalesInvoiceSubmittedEvent
func NewSalesInvoiceSubmittedEvent(invoiceID uuid.UUID, number string, grandTotal decimal.Decimal) SalesInvoiceSubmittedEvent {
	return SalesInvoiceSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSalesInvoiceSubmitted, invoiceID),
		InvoiceNumber:   number,
		GrandTotal:      grandTotal,
	}
}

// SalesInvoicePaymentChangedEvent is emitted when the payment status moves
type SalesInvoicePaymentChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoice_number"`
	OldStatus     PaymentStatus `json:"old_status"`
	NewStatus     PaymentStatus `json:"new_status"`
}

// NewSalesInvoicePaymentChangedEvent creates a SalesInvoicePaymentChangedEvent
func NewSalesInvoicePaymentChangedEvent(invoiceID uuid.UUID, number string, oldStatus, newStatus PaymentStatus) SalesInvoicePaymentChangedEvent {
	return SalesInvoicePaymentChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSalesInvoicePaymentChanged, invoiceID),
		InvoiceNumber:   number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// PurchaseInvoiceCreatedEvent is emitted when a purchase invoice draft is created
type PurchaseInvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	SupplierName  string `json:"supplier_name"`
}

// NewPurchaseInvoiceCreatedEvent creates a PurchaseInvoiceCreatedEvent
func NewPurchaseInvoiceCreatedEvent(invoiceID uuid.UUID, number, supplierName string) PurchaseInvoiceCreatedEvent {
	return PurchaseInvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseInvoiceCreated, invoiceID),
		InvoiceNumber:   number,
		SupplierName:    supplierName,
	}
}

// PurchaseInvoiceReceivedEvent is emitted when a purchase is marked received
type PurchaseInvoiceReceivedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewPurchaseInvoiceReceivedEvent creates a PurchaseInvoiceReceivedEvent
func NewPurchaseInvoiceReceivedEvent(invoiceID uuid.UUID, number string) PurchaseInvoiceReceivedEvent {
	return PurchaseInvoiceReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseInvoiceReceived, invoiceID),
		InvoiceNumber:   number,
	}
}

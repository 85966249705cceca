package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared/valueobject"
	"github.com/retailops/backend/internal/domain/trade"
)

// roundedMoney wraps a raw decimal as presentation money. The domain
// keeps full precision; responses carry 2 decimal places.
func roundedMoney(d decimal.Decimal) valueobject.Money {
	return valueobject.NewMoneySAR(d.Round(2))
}

// InvoiceLineResponse is the wire form of one invoice line
type InvoiceLineResponse struct {
	ID          uuid.UUID         `json:"id"`
	ItemName    string            `json:"item_name"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	LineTotal   valueobject.Money `json:"line_total"`
	InventoryID *uuid.UUID        `json:"inventory_id,omitempty"`
	MaxQuantity *decimal.Decimal  `json:"max_quantity,omitempty"`
}

// SalesInvoiceResponse is the wire form of a sales invoice
type SalesInvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerID     *uuid.UUID            `json:"customer_id,omitempty"`
	CustomerName   string                `json:"customer_name"`
	SaleDate       time.Time             `json:"sale_date"`
	Lines          []InvoiceLineResponse `json:"lines"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	DiscountAmount valueobject.Money     `json:"discount_amount"`
	Subtotal       valueobject.Money     `json:"subtotal"`
	TaxAmount      valueobject.Money     `json:"tax_amount"`
	GrandTotal     valueobject.Money     `json:"grand_total"`
	PaymentStatus  string                `json:"payment_status"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// PurchaseInvoiceResponse is the wire form of a purchase invoice
type PurchaseInvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	SupplierID     *uuid.UUID            `json:"supplier_id,omitempty"`
	SupplierName   string                `json:"supplier_name"`
	PurchaseDate   time.Time             `json:"purchase_date"`
	Lines          []InvoiceLineResponse `json:"lines"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	DiscountAmount valueobject.Money     `json:"discount_amount"`
	Subtotal       valueobject.Money     `json:"subtotal"`
	TaxAmount      valueobject.Money     `json:"tax_amount"`
	GrandTotal     valueobject.Money     `json:"grand_total"`
	PurchaseStatus string                `json:"purchase_status"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewSalesInvoiceResponse maps a sales invoice to its wire form
func NewSalesInvoiceResponse(inv *trade.SalesInvoice) SalesInvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:          line.ID,
			ItemName:    line.ItemName,
			Quantity:    line.Quantity,
			UnitPrice:   roundedMoney(line.UnitPrice),
			LineTotal:   roundedMoney(line.LineTotal),
			InventoryID: line.InventoryID,
			MaxQuantity: line.MaxQuantity,
		}
	}
	return SalesInvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerID:     inv.CustomerID,
		CustomerName:   inv.CustomerName,
		SaleDate:       inv.SaleDate,
		Lines:          lines,
		TaxRate:        inv.TaxRate,
		DiscountAmount: roundedMoney(inv.DiscountAmount),
		Subtotal:       roundedMoney(inv.Subtotal),
		TaxAmount:      roundedMoney(inv.TaxAmount),
		GrandTotal:     roundedMoney(inv.GrandTotal),
		PaymentStatus:  string(inv.PaymentStatus),
		Status:         string(inv.Status),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// NewSalesInvoiceListResponse maps a page of sales invoices
func NewSalesInvoiceListResponse(invoices []*trade.SalesInvoice) []SalesInvoiceResponse {
	out := make([]SalesInvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = NewSalesInvoiceResponse(inv)
	}
	return out
}

// NewPurchaseInvoiceResponse maps a purchase invoice to its wire form
func NewPurchaseInvoiceResponse(inv *trade.PurchaseInvoice) PurchaseInvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			ID:          line.ID,
			ItemName:    line.ItemName,
			Quantity:    line.Quantity,
			UnitPrice:   roundedMoney(line.UnitPrice),
			LineTotal:   roundedMoney(line.LineTotal),
			InventoryID: line.InventoryID,
		}
	}
	return PurchaseInvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		SupplierID:     inv.SupplierID,
		SupplierName:   inv.SupplierName,
		PurchaseDate:   inv.PurchaseDate,
		Lines:          lines,
		TaxRate:        inv.TaxRate,
		DiscountAmount: roundedMoney(inv.DiscountAmount),
		Subtotal:       roundedMoney(inv.Subtotal),
		TaxAmount:      roundedMoney(inv.TaxAmount),
		GrandTotal:     roundedMoney(inv.GrandTotal),
		PurchaseStatus: string(inv.PurchaseStatus),
		Status:         string(inv.Status),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// NewPurchaseInvoiceListResponse maps a page of purchase invoices
func NewPurchaseInvoiceListResponse(invoices []*trade.PurchaseInvoice) []PurchaseInvoiceResponse {
	out := make([]PurchaseInvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = NewPurchaseInvoiceResponse(inv)
	}
	return out
}

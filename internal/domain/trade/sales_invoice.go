package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// DocStatus is the editing lifecycle of an invoice
type DocStatus string

const (
	DocStatusDraft     DocStatus = "draft"
	DocStatusSubmitted DocStatus = "submitted"
)

// PaymentStatus is the settlement state of a sales invoice
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// IsValid reports whether the payment status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}

// DefaultTaxRate is the tax percentage applied when none is given
var DefaultTaxRate = decimal.NewFromInt(15)

// SalesInvoiceLine is a single line on a sales invoice.
// When bound to an inventory item it carries the item reference and a
// stock cap snapshot taken at bind time.
type SalesInvoiceLine struct {
	shared.BaseEntity
	SalesInvoiceID uuid.UUID        `gorm:"type:uuid;index;not null" json:"sales_invoice_id"`
	ItemName       string           `gorm:"size:200" json:"item_name"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	LineTotal      decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"line_total"`
	InventoryID    *uuid.UUID       `gorm:"type:uuid;index" json:"inventory_id,omitempty"`
	MaxQuantity    *decimal.Decimal `gorm:"type:decimal(20,4)" json:"max_quantity,omitempty"`
}

// TableName returns the table name for SalesInvoiceLine
func (SalesInvoiceLine) TableName() string {
	return "sales_invoice_lines"
}

// newPlaceholderLine returns the empty line a fresh invoice starts with
func newPlaceholderLine(invoiceID uuid.UUID) SalesInvoiceLine {
	return SalesInvoiceLine{
		BaseEntity:     shared.NewBaseEntity(),
		SalesInvoiceID: invoiceID,
		Quantity:       decimal.NewFromInt(1),
		UnitPrice:      decimal.Zero,
		LineTotal:      decimal.Zero,
	}
}

func (l *SalesInvoiceLine) recalculate() {
	l.LineTotal = l.Quantity.Mul(l.UnitPrice)
	l.Touch()
}

// exceedsCap reports whether qty is above the bound stock cap, if any
func (l *SalesInvoiceLine) exceedsCap(qty decimal.Decimal) bool {
	return l.MaxQuantity != nil && qty.GreaterThan(*l.MaxQuantity)
}

// SalesInvoice is the sales side of the invoicing core: a customer
// snapshot, a mutable set of lines while in draft, and totals that are
// recalculated on every mutation.
type SalesInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName   string             `gorm:"size:200;not null" json:"customer_name"`
	SaleDate       time.Time          `gorm:"not null" json:"sale_date"`
	Lines          []SalesInvoiceLine `gorm:"foreignKey:SalesInvoiceID" json:"lines"`
	TaxRate        decimal.Decimal    `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"discount_amount"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	GrandTotal     decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"grand_total"`
	PaymentStatus  PaymentStatus      `gorm:"size:20;not null;default:'Pending'" json:"payment_status"`
	Status         DocStatus          `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes          string             `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for SalesInvoice
func (SalesInvoice) TableName() string {
	return "sales_invoices"
}

// NewSalesInvoice creates a draft sales invoice with one placeholder line
func NewSalesInvoice(invoiceNumber string, customerID *uuid.UUID, customerName string, saleDate time.Time) (*SalesInvoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "invoice number is required")
	}
	if customerName == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "customer name is required")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	inv := &SalesInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		SaleDate:          saleDate,
		TaxRate:           DefaultTaxRate,
		DiscountAmount:    decimal.Zero,
		PaymentStatus:     PaymentStatusPending,
		Status:            DocStatusDraft,
	}
	inv.Lines = []SalesInvoiceLine{newPlaceholderLine(inv.ID)}
	inv.recalculateTotals()

	inv.AddEvent(NewSalesInvoiceCreatedEvent(inv.ID, inv.InvoiceNumber, inv.CustomerName))
	return inv, nil
}

// IsDraft reports whether the invoice is still editable
func (i *SalesInvoice) IsDraft() bool {
	return i.Status == DocStatusDraft
}

// CanModify reports whether lines and amounts may still change
func (i *SalesInvoice) CanModify() bool {
	return i.IsDraft()
}

// AddLine appends an empty placeholder line (quantity 1, price 0)
func (i *SalesInvoice) AddLine() error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot add lines to a submitted invoice")
	}
	i.Lines = append(i.Lines, newPlaceholderLine(i.ID))
	i.recalculateTotals()
	return nil
}

// RemoveLine drops the line at idx; the last remaining line cannot be removed
func (i *SalesInvoice) RemoveLine(idx int) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot remove lines from a submitted invoice")
	}
	if idx < 0 || idx >= len(i.Lines) {
		return shared.NewDomainError("INVALID_INPUT", "line index out of range")
	}
	if len(i.Lines) == 1 {
		return shared.NewDomainError("INVALID_STATE", "an invoice must keep at least one line")
	}
	i.Lines = append(i.Lines[:idx], i.Lines[idx+1:]...)
	i.recalculateTotals()
	return nil
}

// UpdateLineName sets the free-text item name of a line
func (i *SalesInvoice) UpdateLineName(idx int, name string) error {
	line, err := i.modifiableLine(idx)
	if err != nil {
		return err
	}
	line.ItemName = name
	line.Touch()
	return nil
}

// UpdateLineQuantity changes a line quantity. A quantity above the
// bound stock cap is rejected and the line is left unchanged.
func (i *SalesInvoice) UpdateLineQuantity(idx int, qty decimal.Decimal) error {
	line, err := i.modifiableLine(idx)
	if err != nil {
		return err
	}
	if !qty.IsPositive() {
		return shared.NewDomainError(shared.ErrCodeValidation, "quantity must be positive")
	}
	if line.exceedsCap(qty) {
		return shared.NewDomainErrorf(shared.ErrCodeQuantityExceedsMax,
			"only %s in stock for %q", line.MaxQuantity.String(), line.ItemName)
	}
	line.Quantity = qty
	line.recalculate()
	i.recalculateTotals()
	return nil
}

// UpdateLineUnitPrice changes a line unit price
func (i *SalesInvoice) UpdateLineUnitPrice(idx int, price decimal.Decimal) error {
	line, err := i.modifiableLine(idx)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeValidation, "unit price cannot be negative")
	}
	line.UnitPrice = price
	line.recalculate()
	i.recalculateTotals()
	return nil
}

// InventorySnapshot is the catalog state captured when a line is bound
type InventorySnapshot struct {
	InventoryID    uuid.UUID
	ItemName       string
	UnitPrice      decimal.Decimal
	QuantityOnHand decimal.Decimal
}

// BindInventory links a line to an inventory item. Name and price are
// overwritten from the snapshot, the stock cap is set to the quantity
// on hand, and a quantity above the cap is clamped down to it.
func (i *SalesInvoice) BindInventory(idx int, snap InventorySnapshot) error {
	line, err := i.modifiableLine(idx)
	if err != nil {
		return err
	}
	line.InventoryID = &snap.InventoryID
	line.ItemName = snap.ItemName
	line.UnitPrice = snap.UnitPrice
	maxQty := snap.QuantityOnHand
	line.MaxQuantity = &maxQty
	if line.Quantity.GreaterThan(maxQty) {
		line.Quantity = maxQty
	}
	line.recalculate()
	i.recalculateTotals()
	return nil
}

// SetTaxRate sets the tax percentage, 0 to 100
func (i *SalesInvoice) SetTaxRate(rate decimal.Decimal) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change tax rate on a submitted invoice")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError(shared.ErrCodeValidation, "tax rate must be between 0 and 100")
	}
	i.TaxRate = rate
	i.recalculateTotals()
	return nil
}

// ApplyDiscount sets a flat discount. The discount may not be negative
// and may not exceed the subtotal, so the grand total never goes below
// zero.
func (i *SalesInvoice) ApplyDiscount(amount decimal.Decimal) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change discount on a submitted invoice")
	}
	if amount.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeInvalidDiscount, "discount cannot be negative")
	}
	if amount.GreaterThan(i.Subtotal) {
		return shared.NewDomainError(shared.ErrCodeInvalidDiscount, "discount cannot exceed subtotal")
	}
	i.DiscountAmount = amount
	i.recalculateTotals()
	return nil
}

// SetNotes sets the free-text notes
func (i *SalesInvoice) SetNotes(notes string) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change notes on a submitted invoice")
	}
	i.Notes = notes
	i.Touch()
	return nil
}

// SetCustomer changes the customer snapshot
func (i *SalesInvoice) SetCustomer(customerID *uuid.UUID, customerName string) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change customer on a submitted invoice")
	}
	if customerName == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "customer name is required")
	}
	i.CustomerID = customerID
	i.CustomerName = customerName
	i.Touch()
	return nil
}

// SetSaleDate changes the sale date
func (i *SalesInvoice) SetSaleDate(date time.Time) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change sale date on a submitted invoice")
	}
	if date.IsZero() {
		return shared.NewDomainError(shared.ErrCodeValidation, "sale date is required")
	}
	i.SaleDate = date
	i.Touch()
	return nil
}

// Submit finalizes the draft. Every line must have a name and a
// positive quantity. After submission only the payment status can
// change.
func (i *SalesInvoice) Submit() error {
	if !i.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "invoice has already been submitted")
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError(shared.ErrCodeValidation, "an invoice needs at least one line")
	}
	for _, line := range i.Lines {
		if line.ItemName == "" {
			return shared.NewDomainError(shared.ErrCodeValidation, "every line needs an item name")
		}
		if !line.Quantity.IsPositive() {
			return shared.NewDomainError(shared.ErrCodeValidation, "every line needs a positive quantity")
		}
	}
	i.Status = DocStatusSubmitted
	i.Touch()
	i.AddEvent(NewSalesInvoiceSubmittedEvent(i.ID, i.InvoiceNumber, i.GrandTotal))
	return nil
}

// ChangePaymentStatus updates the settlement state. This is the only
// mutation allowed after submission.
func (i *SalesInvoice) ChangePaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown payment status %q", status)
	}
	if i.PaymentStatus == status {
		return nil
	}
	old := i.PaymentStatus
	i.PaymentStatus = status
	i.Touch()
	i.AddEvent(NewSalesInvoicePaymentChangedEvent(i.ID, i.InvoiceNumber, old, status))
	return nil
}

// BoundLines returns the lines linked to inventory items
func (i *SalesInvoice) BoundLines() []SalesInvoiceLine {
	var bound []SalesInvoiceLine
	for _, line := range i.Lines {
		if line.InventoryID != nil {
			bound = append(bound, line)
		}
	}
	return bound
}

func (i *SalesInvoice) modifiableLine(idx int) (*SalesInvoiceLine, error) {
	if !i.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "cannot modify lines of a submitted invoice")
	}
	if idx < 0 || idx >= len(i.Lines) {
		return nil, shared.NewDomainError("INVALID_INPUT", "line index out of range")
	}
	return &i.Lines[idx], nil
}

// recalculateTotals recomputes subtotal, tax and grand total from the
// lines. Full precision is kept; rounding is a presentation concern.
func (i *SalesInvoice) recalculateTotals() {
	subtotal := decimal.Zero
	for idx := range i.Lines {
		subtotal = subtotal.Add(i.Lines[idx].Quantity.Mul(i.Lines[idx].UnitPrice))
	}
	i.Subtotal = subtotal

	// A discount that was valid for a larger subtotal may now exceed it
	if i.DiscountAmount.GreaterThan(subtotal) {
		i.DiscountAmount = subtotal
	}

	i.TaxAmount = subtotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100))
	i.GrandTotal = subtotal.Sub(i.DiscountAmount).Add(i.TaxAmount)
	i.Touch()
}

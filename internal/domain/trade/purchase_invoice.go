package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// PurchaseStatus is the fulfilment state of a purchase invoice
type PurchaseStatus string

const (
	PurchaseStatusOrdered   PurchaseStatus = "Ordered"
	PurchaseStatusReceived  PurchaseStatus = "Received"
	PurchaseStatusCancelled PurchaseStatus = "Cancelled"
)

// IsValid reports whether the purchase status is a known value
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to target.
// Received and Cancelled are terminal.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	if s == target {
		return false
	}
	return s == PurchaseStatusOrdered &&
		(target == PurchaseStatusReceived || target == PurchaseStatusCancelled)
}

// PurchaseInvoiceLine is a single line on a purchase invoice.
// Purchases restock, so lines carry an optional item reference but no
// stock cap.
type PurchaseInvoiceLine struct {
	shared.BaseEntity
	PurchaseInvoiceID uuid.UUID       `gorm:"type:uuid;index;not null" json:"purchase_invoice_id"`
	ItemName          string          `gorm:"size:200" json:"item_name"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	LineTotal         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	InventoryID       *uuid.UUID      `gorm:"type:uuid;index" json:"inventory_id,omitempty"`
}

// TableName returns the table name for PurchaseInvoiceLine
func (PurchaseInvoiceLine) TableName() string {
	return "purchase_invoice_lines"
}

func newPurchasePlaceholderLine(invoiceID uuid.UUID) PurchaseInvoiceLine {
	return PurchaseInvoiceLine{
		BaseEntity:        shared.NewBaseEntity(),
		PurchaseInvoiceID: invoiceID,
		Quantity:          decimal.NewFromInt(1),
		UnitPrice:         decimal.Zero,
		LineTotal:         decimal.Zero,
	}
}

func (l *PurchaseInvoiceLine) recalculate() {
	l.LineTotal = l.Quantity.Mul(l.UnitPrice)
	l.Touch()
}

// PurchaseInvoice mirrors the sales side line and totals engine for
// incoming stock: supplier snapshot, draft-editable lines, and a
// fulfilment status that is the only mutable field after submission.
type PurchaseInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string                `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	SupplierID     *uuid.UUID            `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	SupplierName   string                `gorm:"size:200;not null" json:"supplier_name"`
	PurchaseDate   time.Time             `gorm:"not null" json:"purchase_date"`
	Lines          []PurchaseInvoiceLine `gorm:"foreignKey:PurchaseInvoiceID" json:"lines"`
	TaxRate        decimal.Decimal       `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	DiscountAmount decimal.Decimal       `gorm:"type:decimal(20,4);not null;default:0" json:"discount_amount"`
	Subtotal       decimal.Decimal       `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal       `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	GrandTotal     decimal.Decimal       `gorm:"type:decimal(20,4);not null" json:"grand_total"`
	PurchaseStatus PurchaseStatus        `gorm:"size:20;not null;default:'Ordered'" json:"purchase_status"`
	Status         DocStatus             `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes          string                `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for PurchaseInvoice
func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}

// NewPurchaseInvoice creates a draft purchase invoice with one placeholder line
func NewPurchaseInvoice(invoiceNumber string, supplierID *uuid.UUID, supplierName string, purchaseDate time.Time) (*PurchaseInvoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "invoice number is required")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "supplier name is required")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	inv := &PurchaseInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		PurchaseDate:      purchaseDate,
		TaxRate:           DefaultTaxRate,
		DiscountAmount:    decimal.Zero,
		PurchaseStatus:    PurchaseStatusOrdered,
		Status:            DocStatusDraft,
	}
	inv.Lines = []PurchaseInvoiceLine{newPurchasePlaceholderLine(inv.ID)}
	inv.recalculateTotals()

	inv.AddEvent(NewPurchaseInvoiceCreatedEvent(inv.ID, inv.InvoiceNumber, inv.SupplierName))
	return inv, nil
}

// IsDraft reports whether the invoice is still editable
func (i *PurchaseInvoice) IsDraft() bool {
	return i.Status == DocStatusDraft
}

// CanModify reports whether lines and amounts may still change
func (i *PurchaseInvoice) CanModify() bool {
	return i.IsDraft()
}

// AddLine appends an empty placeholder line (quantity 1, price 0)
func (i *PurchaseInvoice) AddLine() error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot add lines to a submitted invoice")
	}
	i.Lines = append(i.Lines, newPurchasePlaceholderLine(i.ID))
	i.recalculateTotals()
	return nil
}

// RemoveLine drops the line at idx; the last remaining line cannot be removed
func (i *PurchaseInvoice) RemoveLine(idx int) error {
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

// UpdateLine mutates one line's name, quantity and price at once.
// Purchases have no stock cap, only basic numeric validation.
func (i *PurchaseInvoice) UpdateLine(idx int, name string, qty, price decimal.Decimal, inventoryID *uuid.UUID) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot modify lines of a submitted invoice")
	}
	if idx < 0 || idx >= len(i.Lines) {
		return shared.NewDomainError("INVALID_INPUT", "line index out of range")
	}
	if !qty.IsPositive() {
		return shared.NewDomainError(shared.ErrCodeValidation, "quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.ErrCodeValidation, "unit price cannot be negative")
	}
	line := &i.Lines[idx]
	line.ItemName = name
	line.Quantity = qty
	line.UnitPrice = price
	line.InventoryID = inventoryID
	line.recalculate()
	i.recalculateTotals()
	return nil
}

// SetTaxRate sets the tax percentage, 0 to 100
func (i *PurchaseInvoice) SetTaxRate(rate decimal.Decimal) error {
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

// ApplyDiscount sets a flat discount bounded by the subtotal
func (i *PurchaseInvoice) ApplyDiscount(amount decimal.Decimal) error {
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
func (i *PurchaseInvoice) SetNotes(notes string) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change notes on a submitted invoice")
	}
	i.Notes = notes
	i.Touch()
	return nil
}

// SetSupplier changes the supplier snapshot
func (i *PurchaseInvoice) SetSupplier(supplierID *uuid.UUID, supplierName string) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change supplier on a submitted invoice")
	}
	if supplierName == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "supplier name is required")
	}
	i.SupplierID = supplierID
	i.SupplierName = supplierName
	i.Touch()
	return nil
}

// SetPurchaseDate changes the purchase date
func (i *PurchaseInvoice) SetPurchaseDate(date time.Time) error {
	if !i.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "cannot change purchase date on a submitted invoice")
	}
	if date.IsZero() {
		return shared.NewDomainError(shared.ErrCodeValidation, "purchase date is required")
	}
	i.PurchaseDate = date
	i.Touch()
	return nil
}

// Submit finalizes the draft. After submission only the fulfilment
// status can change.
func (i *PurchaseInvoice) Submit() error {
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
	return nil
}

// ChangeStatus moves the fulfilment status along Ordered -> Received
// or Ordered -> Cancelled. Receiving emits an event so stock can be
// replenished.
func (i *PurchaseInvoice) ChangeStatus(target PurchaseStatus) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown purchase status %q", target)
	}
	if i.PurchaseStatus == target {
		return nil
	}
	if !i.PurchaseStatus.CanTransitionTo(target) {
		return shared.NewDomainErrorf("INVALID_STATE",
			"cannot change status from %s to %s", i.PurchaseStatus, target)
	}
	i.PurchaseStatus = target
	i.Touch()
	if target == PurchaseStatusReceived {
		i.AddEvent(NewPurchaseInvoiceReceivedEvent(i.ID, i.InvoiceNumber))
	}
	return nil
}

// BoundLines returns the lines linked to inventory items
func (i *PurchaseInvoice) BoundLines() []PurchaseInvoiceLine {
	var bound []PurchaseInvoiceLine
	for _, line := range i.Lines {
		if line.InventoryID != nil {
			bound = append(bound, line)
		}
	}
	return bound
}

func (i *PurchaseInvoice) recalculateTotals() {
	subtotal := decimal.Zero
	for idx := range i.Lines {
		subtotal = subtotal.Add(i.Lines[idx].Quantity.Mul(i.Lines[idx].UnitPrice))
	}
	i.Subtotal = subtotal

	if i.DiscountAmount.GreaterThan(subtotal) {
		i.DiscountAmount = subtotal
	}

	i.TaxAmount = subtotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100))
	i.GrandTotal = subtotal.Sub(i.DiscountAmount).Add(i.TaxAmount)
	i.Touch()
}

package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/shared"
)

// ============================================================================
// Test Helpers
// ============================================================================

func createTestInvoice(t *testing.T) *SalesInvoice {
	t.Helper()
	customerID := uuid.New()
	inv, err := NewSalesInvoice("INV-2026-00001", &customerID, "Test Customer", time.Now())
	require.NoError(t, err)
	return inv
}

func fillLine(t *testing.T, inv *SalesInvoice, idx int, name string, qty, price float64) {
	t.Helper()
	require.NoError(t, inv.UpdateLineName(idx, name))
	require.NoError(t, inv.UpdateLineUnitPrice(idx, decimal.NewFromFloat(price)))
	require.NoError(t, inv.UpdateLineQuantity(idx, decimal.NewFromFloat(qty)))
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	de, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected a domain error, got %v", err)
	return de.Code
}

// ============================================================================
// Creation
// ============================================================================

func TestNewSalesInvoice(t *testing.T) {
	t.Run("starts as draft with one placeholder line", func(t *testing.T) {
		inv := createTestInvoice(t)

		assert.True(t, inv.IsDraft())
		assert.Equal(t, PaymentStatusPending, inv.PaymentStatus)
		require.Len(t, inv.Lines, 1)
		assert.True(t, inv.Lines[0].Quantity.Equal(decimal.NewFromInt(1)))
		assert.True(t, inv.Lines[0].UnitPrice.IsZero())
		assert.True(t, inv.TaxRate.Equal(decimal.NewFromInt(15)))
		assert.True(t, inv.GrandTotal.IsZero())
	})

	t.Run("records a created event", func(t *testing.T) {
		inv := createTestInvoice(t)

		events := inv.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventSalesInvoiceCreated, events[0].EventType())
	})

	t.Run("requires invoice number and customer name", func(t *testing.T) {
		_, err := NewSalesInvoice("", nil, "Customer", time.Now())
		assert.Error(t, err)

		_, err = NewSalesInvoice("INV-1", nil, "", time.Now())
		assert.Error(t, err)
	})
}

// ============================================================================
// Line management
// ============================================================================

func TestSalesInvoiceLines(t *testing.T) {
	t.Run("add appends a placeholder line", func(t *testing.T) {
		inv := createTestInvoice(t)

		require.NoError(t, inv.AddLine())
		require.Len(t, inv.Lines, 2)
		assert.True(t, inv.Lines[1].Quantity.Equal(decimal.NewFromInt(1)))
	})

	t.Run("remove refuses the last line", func(t *testing.T) {
		inv := createTestInvoice(t)

		err := inv.RemoveLine(0)
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
	})

	t.Run("remove drops a middle line and recalculates", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 2, 50)
		require.NoError(t, inv.AddLine())
		fillLine(t, inv, 1, "Shoes", 1, 200)

		require.NoError(t, inv.RemoveLine(1))
		require.Len(t, inv.Lines, 1)
		assert.Equal(t, "100", inv.Subtotal.String())
	})

	t.Run("rejects non-positive quantity and negative price", func(t *testing.T) {
		inv := createTestInvoice(t)

		err := inv.UpdateLineQuantity(0, decimal.Zero)
		assert.Error(t, err)

		err = inv.UpdateLineUnitPrice(0, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		inv := createTestInvoice(t)

		assert.Error(t, inv.UpdateLineName(5, "x"))
		assert.Error(t, inv.RemoveLine(-1))
	})
}

// ============================================================================
// Inventory binding
// ============================================================================

func TestSalesInvoiceBindInventory(t *testing.T) {
	snap := InventorySnapshot{
		InventoryID:    uuid.New(),
		ItemName:       "Blue Jacket",
		UnitPrice:      decimal.NewFromInt(120),
		QuantityOnHand: decimal.NewFromInt(5),
	}

	t.Run("overwrites name and price, sets cap", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.UpdateLineName(0, "typed by hand"))

		require.NoError(t, inv.BindInventory(0, snap))

		line := inv.Lines[0]
		assert.Equal(t, "Blue Jacket", line.ItemName)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(120)))
		require.NotNil(t, line.MaxQuantity)
		assert.True(t, line.MaxQuantity.Equal(decimal.NewFromInt(5)))
	})

	t.Run("clamps an excess quantity down to the cap", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.UpdateLineQuantity(0, decimal.NewFromInt(10)))

		require.NoError(t, inv.BindInventory(0, snap))

		assert.True(t, inv.Lines[0].Quantity.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "600", inv.Subtotal.String())
	})

	t.Run("later quantity above the cap is rejected, line unchanged", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.BindInventory(0, snap))
		require.NoError(t, inv.UpdateLineQuantity(0, decimal.NewFromInt(3)))

		err := inv.UpdateLineQuantity(0, decimal.NewFromInt(6))
		require.Error(t, err)
		assert.Equal(t, shared.ErrCodeQuantityExceedsMax, domainCode(t, err))
		assert.True(t, inv.Lines[0].Quantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("quantity at the cap is allowed", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.BindInventory(0, snap))

		assert.NoError(t, inv.UpdateLineQuantity(0, decimal.NewFromInt(5)))
	})
}

// ============================================================================
// Totals
// ============================================================================

func TestSalesInvoiceTotals(t *testing.T) {
	t.Run("subtotal, tax and grand total", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 2, 50) // 100
		require.NoError(t, inv.AddLine())
		fillLine(t, inv, 1, "Shoes", 1, 200) // 200

		// subtotal 300, tax 15% = 45, total 345
		assert.Equal(t, "300", inv.Subtotal.String())
		assert.Equal(t, "45", inv.TaxAmount.String())
		assert.Equal(t, "345", inv.GrandTotal.String())
	})

	t.Run("discount applied before tax is added", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 2, 50)

		require.NoError(t, inv.ApplyDiscount(decimal.NewFromInt(20)))

		// 100 - 20 + 15 = 95
		assert.Equal(t, "95", inv.GrandTotal.String())
	})

	t.Run("discount above subtotal is rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)

		err := inv.ApplyDiscount(decimal.NewFromInt(51))
		require.Error(t, err)
		assert.Equal(t, shared.ErrCodeInvalidDiscount, domainCode(t, err))
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)

		assert.Error(t, inv.ApplyDiscount(decimal.NewFromInt(-1)))
	})

	t.Run("discount shrinks with the subtotal so total never goes negative", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 2, 50)
		require.NoError(t, inv.ApplyDiscount(decimal.NewFromInt(80)))

		// Dropping the quantity makes the old discount exceed the new subtotal
		require.NoError(t, inv.UpdateLineQuantity(0, decimal.NewFromInt(1)))

		assert.False(t, inv.GrandTotal.IsNegative())
		assert.True(t, inv.DiscountAmount.LessThanOrEqual(inv.Subtotal))
	})

	t.Run("fractional precision is preserved", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Widget", 3, 10.99)

		assert.Equal(t, "32.97", inv.Subtotal.String())
		assert.Equal(t, "4.9455", inv.TaxAmount.String())
		assert.Equal(t, "37.9155", inv.GrandTotal.String())
	})

	t.Run("tax rate changes recalculate", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 100)

		require.NoError(t, inv.SetTaxRate(decimal.Zero))
		assert.Equal(t, "100", inv.GrandTotal.String())

		assert.Error(t, inv.SetTaxRate(decimal.NewFromInt(101)))
		assert.Error(t, inv.SetTaxRate(decimal.NewFromInt(-1)))
	})
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestSalesInvoiceSubmit(t *testing.T) {
	t.Run("submit moves draft to submitted", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)

		require.NoError(t, inv.Submit())
		assert.Equal(t, DocStatusSubmitted, inv.Status)
		assert.False(t, inv.CanModify())
	})

	t.Run("submit requires named lines", func(t *testing.T) {
		inv := createTestInvoice(t)

		err := inv.Submit()
		require.Error(t, err)
		assert.Equal(t, shared.ErrCodeValidation, domainCode(t, err))
	})

	t.Run("double submit is rejected", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)
		require.NoError(t, inv.Submit())

		assert.Error(t, inv.Submit())
	})

	t.Run("mutators are blocked after submission", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)
		require.NoError(t, inv.Submit())

		assert.Error(t, inv.AddLine())
		assert.Error(t, inv.RemoveLine(0))
		assert.Error(t, inv.UpdateLineQuantity(0, decimal.NewFromInt(2)))
		assert.Error(t, inv.ApplyDiscount(decimal.NewFromInt(5)))
		assert.Error(t, inv.SetTaxRate(decimal.NewFromInt(5)))
		assert.Error(t, inv.SetNotes("late note"))
		assert.Error(t, inv.SetCustomer(nil, "Someone Else"))
	})

	t.Run("payment status remains mutable after submission", func(t *testing.T) {
		inv := createTestInvoice(t)
		fillLine(t, inv, 0, "Shirt", 1, 50)
		require.NoError(t, inv.Submit())

		require.NoError(t, inv.ChangePaymentStatus(PaymentStatusPaid))
		assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
	})
}

func TestSalesInvoicePaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  PaymentStatus
		wantErr bool
	}{
		{"paid", PaymentStatusPaid, false},
		{"overdue", PaymentStatusOverdue, false},
		{"pending", PaymentStatusPending, false},
		{"unknown", PaymentStatus("Refunded"), true},
		{"empty", PaymentStatus(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := createTestInvoice(t)
			err := inv.ChangePaymentStatus(tt.status)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, inv.PaymentStatus)
			}
		})
	}

	t.Run("change emits an event", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.ClearEvents()

		require.NoError(t, inv.ChangePaymentStatus(PaymentStatusPaid))

		events := inv.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventSalesInvoicePaymentChanged, events[0].EventType())
	})

	t.Run("no-op change emits nothing", func(t *testing.T) {
		inv := createTestInvoice(t)
		inv.ClearEvents()

		require.NoError(t, inv.ChangePaymentStatus(PaymentStatusPending))
		assert.Empty(t, inv.PendingEvents())
	})
}

// ============================================================================
// Bound lines
// ============================================================================

func TestSalesInvoiceBoundLines(t *testing.T) {
	inv := createTestInvoice(t)
	fillLine(t, inv, 0, "Hand-typed item", 1, 10)
	require.NoError(t, inv.AddLine())
	require.NoError(t, inv.BindInventory(1, InventorySnapshot{
		InventoryID:    uuid.New(),
		ItemName:       "Catalog item",
		UnitPrice:      decimal.NewFromInt(25),
		QuantityOnHand: decimal.NewFromInt(10),
	}))

	bound := inv.BoundLines()
	require.Len(t, bound, 1)
	assert.Equal(t, "Catalog item", bound[0].ItemName)
}

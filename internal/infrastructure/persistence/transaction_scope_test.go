package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apptrade "github.com/retailops/backend/internal/application/trade"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

func setupTradeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&inventory.Item{},
		&trade.SalesInvoice{},
		&trade.SalesInvoiceLine{},
		&trade.PurchaseInvoice{},
		&trade.PurchaseInvoiceLine{},
	)
	require.NoError(t, err)

	return db
}

func seedDBItem(t *testing.T, db *gorm.DB, name string, qty int64) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(name, "", "", "", name+"-SKU",
		decimal.NewFromInt(qty), decimal.NewFromInt(100), decimal.Zero, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(context.Background(), item))
	return item
}

// A sale whose second decrement fails must leave the first one rolled
// back as well, with no invoice rows behind.
func TestGormTransactionScopeRollsBackStockDecrements(t *testing.T) {
	ctx := context.Background()
	db := setupTradeTestDB(t)
	item := seedDBItem(t, db, "Jacket", 5)

	service := apptrade.NewSalesInvoiceService(
		NewGormTransactionScope(db),
		NewGormSalesInvoiceRepository(db),
		nil,
		shared.DefaultIdempotencyConfig(),
		nil,
		zap.NewNop(),
	)

	// Each line passes its own bind-time cap of 5, but together they ask
	// for 6. The second in-transaction decrement fails after the first
	// one has already been written.
	_, err := service.Create(ctx, apptrade.CreateSalesInvoiceRequest{
		CustomerName: "Walk-in",
		Lines: []apptrade.InvoiceLineInput{
			{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100), InventoryID: &item.ID},
			{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100), InventoryID: &item.ID},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), shared.ErrInsufficientStock.Code)

	stored, err := NewGormItemRepository(db).FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", stored.Quantity.String())

	var invoices, lines int64
	require.NoError(t, db.Model(&trade.SalesInvoice{}).Count(&invoices).Error)
	require.NoError(t, db.Model(&trade.SalesInvoiceLine{}).Count(&lines).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
}

func TestGormTransactionScopeCommitsSaleAndDecrement(t *testing.T) {
	ctx := context.Background()
	db := setupTradeTestDB(t)
	item := seedDBItem(t, db, "Jacket", 5)

	service := apptrade.NewSalesInvoiceService(
		NewGormTransactionScope(db),
		NewGormSalesInvoiceRepository(db),
		nil,
		shared.DefaultIdempotencyConfig(),
		nil,
		zap.NewNop(),
	)

	inv, err := service.Create(ctx, apptrade.CreateSalesInvoiceRequest{
		CustomerName: "Walk-in",
		Lines: []apptrade.InvoiceLineInput{
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), InventoryID: &item.ID},
		},
	})
	require.NoError(t, err)

	stored, err := NewGormItemRepository(db).FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", stored.Quantity.String())

	found, err := NewGormSalesInvoiceRepository(db).FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNumber, found.InvoiceNumber)
	require.Len(t, found.Lines, 1)
}

package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/trade"
)

func seedSalesInvoiceNumber(t *testing.T, db *gorm.DB, number string) {
	t.Helper()
	inv, err := trade.NewSalesInvoice(number, nil, "Walk-in", time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Omit("Lines").Create(inv).Error)
}

func TestSalesInvoiceRepositoryNextInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	year := time.Now().Year()

	t.Run("starts the yearly sequence at one", func(t *testing.T) {
		db := setupTradeTestDB(t)
		repo := NewGormSalesInvoiceRepository(db)

		number, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-00001", year), number)
	})

	t.Run("continues past the highest existing number", func(t *testing.T) {
		db := setupTradeTestDB(t)
		repo := NewGormSalesInvoiceRepository(db)
		seedSalesInvoiceNumber(t, db, fmt.Sprintf("INV-%d-00007", year))

		number, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-00008", year), number)
	})

	t.Run("skips a taken number the string sort hides", func(t *testing.T) {
		db := setupTradeTestDB(t)
		repo := NewGormSalesInvoiceRepository(db)

		// Sorted as strings, 99999 ranks above 100000, so the naive
		// candidate is the already-taken 100000.
		seedSalesInvoiceNumber(t, db, fmt.Sprintf("INV-%d-99999", year))
		seedSalesInvoiceNumber(t, db, fmt.Sprintf("INV-%d-100000", year))

		number, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-100001", year), number)
	})
}

package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/retailops/backend/internal/application/trade"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. Repositories handed to fn are bound to the transaction,
// so an invoice save and its stock movements commit or roll back as one.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// the transaction back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := apptrade.TransactionalRepositories{
			SalesInvoices:    NewGormSalesInvoiceRepository(tx),
			PurchaseInvoices: NewGormPurchaseInvoiceRepository(tx),
			Items:            NewGormItemRepository(tx),
		}
		return fn(ctx, repos)
	})
}

var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

package trade

import (
	"context"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/trade"
)

// TransactionalRepositories are repositories bound to one database
// transaction. Invoice writes and stock movements that must commit or
// roll back together go through these.
type TransactionalRepositories struct {
	SalesInvoices    trade.SalesInvoiceRepository
	PurchaseInvoices trade.PurchaseInvoiceRepository
	Items            inventory.ItemRepository
}

// TransactionScope runs a function inside a database transaction.
// Any error returned by fn rolls the whole transaction back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}

// NoOpTransactionScope passes through to plain repositories without a
// transaction. Used in tests and wherever atomicity is not required.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn with the configured repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error {
	return fn(ctx, s.Repos)
}

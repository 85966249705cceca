package report

import (
	"context"

	"go.uber.org/zap"
)

// Repository is the read model behind the reports. Implemented with raw
// aggregate queries in the persistence layer.
type Repository interface {
	SalesSummary(ctx context.Context, r DateRange) (*SalesSummary, error)
	TopItems(ctx context.Context, r DateRange, limit int) ([]TopItem, error)
	InventoryValuation(ctx context.Context) (*InventoryValuation, error)
	Dashboard(ctx context.Context, r DateRange) (*Dashboard, error)
}

const defaultTopItemsLimit = 10

// Service exposes the reporting queries
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a report Service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SalesSummary returns invoice count, revenue, tax, discount and a
// payment-status breakdown over the range
func (s *Service) SalesSummary(ctx context.Context, r DateRange) (*SalesSummary, error) {
	return s.repo.SalesSummary(ctx, r)
}

// TopItems returns the best-selling line items by quantity
func (s *Service) TopItems(ctx context.Context, r DateRange, limit int) ([]TopItem, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultTopItemsLimit
	}
	return s.repo.TopItems(ctx, r, limit)
}

// InventoryValuation returns the current stock value report
func (s *Service) InventoryValuation(ctx context.Context) (*InventoryValuation, error) {
	return s.repo.InventoryValuation(ctx)
}

// Dashboard returns the headline KPIs
func (s *Service) Dashboard(ctx context.Context, r DateRange) (*Dashboard, error) {
	return s.repo.Dashboard(ctx, r)
}

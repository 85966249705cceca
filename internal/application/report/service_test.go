package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepo struct {
	lastLimit int
}

func (r *stubRepo) SalesSummary(_ context.Context, _ DateRange) (*SalesSummary, error) {
	return &SalesSummary{InvoiceCount: 3, TotalRevenue: "345.00"}, nil
}

func (r *stubRepo) TopItems(_ context.Context, _ DateRange, limit int) ([]TopItem, error) {
	r.lastLimit = limit
	return []TopItem{{ItemName: "Abaya", TotalQty: "12"}}, nil
}

func (r *stubRepo) InventoryValuation(_ context.Context) (*InventoryValuation, error) {
	return &InventoryValuation{TotalItems: 5}, nil
}

func (r *stubRepo) Dashboard(_ context.Context, _ DateRange) (*Dashboard, error) {
	return &Dashboard{SalesCount: 3}, nil
}

func TestTopItemsLimitClamping(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero falls back to default", 0, defaultTopItemsLimit},
		{"negative falls back to default", -5, defaultTopItemsLimit},
		{"oversized falls back to default", 500, defaultTopItemsLimit},
		{"valid limit passes through", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.TopItems(ctx, DateRange{}, tt.requested)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, repo.lastLimit)
		})
	}
}

package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
)

type memItemRepo struct {
	items map[uuid.UUID]*inventory.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]*inventory.Item)}
}

func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memItemRepo) FindBySKU(_ context.Context, sku string) (*inventory.Item, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) Find(_ context.Context, _ shared.Filter) ([]*inventory.Item, error) {
	out := make([]*inventory.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *memItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memItemRepo) Save(_ context.Context, item *inventory.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	return r.Save(ctx, item)
}

func (r *memItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) Stats(_ context.Context) (*inventory.Stats, error) {
	return &inventory.Stats{TotalItems: int64(len(r.items))}, nil
}

func newTestService() (*Service, *memItemRepo) {
	repo := newMemItemRepo()
	return NewService(repo, nil, zap.NewNop()), repo
}

func TestInventoryServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	req := CreateItemRequest{
		ItemName:  "Blue Jacket",
		SKU:       "JKT-BLU-M",
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(120),
	}

	item, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Blue Jacket", item.ItemName)

	t.Run("duplicate sku rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ALREADY_EXISTS")
	})
}

func TestInventoryServiceAdjust(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, err := svc.Create(ctx, CreateItemRequest{
		ItemName: "Jacket", SKU: "JKT-1",
		Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		updated, err := svc.Adjust(ctx, item.ID, inventory.AdjustAdd, decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.Equal(t, "10", updated.Quantity.String())
	})

	t.Run("subtract", func(t *testing.T) {
		updated, err := svc.Adjust(ctx, item.ID, inventory.AdjustSubtract, decimal.NewFromInt(4))
		require.NoError(t, err)
		assert.Equal(t, "6", updated.Quantity.String())
	})

	t.Run("oversubtract fails", func(t *testing.T) {
		_, err := svc.Adjust(ctx, item.ID, inventory.AdjustSubtract, decimal.NewFromInt(100))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INSUFFICIENT_STOCK")
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.Adjust(ctx, uuid.New(), inventory.AdjustAdd, decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestInventoryServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, err := svc.Create(ctx, CreateItemRequest{
		ItemName: "Jacket", SKU: "JKT-1",
		Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, UpdateItemRequest{
		ItemName:  "Jacket Deluxe",
		Category:  "Outerwear",
		UnitPrice: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jacket Deluxe", updated.ItemName)
	// Update never touches stock
	assert.Equal(t, "5", updated.Quantity.String())
}

func TestInventoryServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	item, err := svc.Create(ctx, CreateItemRequest{
		ItemName: "Jacket", SKU: "JKT-1",
		Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))
	_, err = repo.FindByID(ctx, item.ID)
	assert.Error(t, err)

	assert.Error(t, svc.Delete(ctx, uuid.New()))
}

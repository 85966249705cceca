package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/shared"
)

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		var got []string
		bus.Subscribe("inventory.item.low_stock", func(_ context.Context, e shared.DomainEvent) error {
			got = append(got, e.EventType())
			return nil
		})

		event := shared.NewBaseDomainEvent("inventory.item.low_stock", uuid.New())
		require.NoError(t, bus.Publish(ctx, &event))
		assert.Equal(t, []string{"inventory.item.low_stock"}, got)
	})

	t.Run("ignores events without handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		event := shared.NewBaseDomainEvent("trade.sales_invoice.created", uuid.New())
		assert.NoError(t, bus.Publish(ctx, &event))
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())

		called := 0
		bus.Subscribe("trade.sales_invoice.submitted", func(context.Context, shared.DomainEvent) error {
			return errors.New("boom")
		})
		bus.Subscribe("trade.sales_invoice.submitted", func(context.Context, shared.DomainEvent) error {
			called++
			return nil
		})

		event := shared.NewBaseDomainEvent("trade.sales_invoice.submitted", uuid.New())
		require.NoError(t, bus.Publish(ctx, &event))
		assert.Equal(t, 1, called)
	})

	t.Run("a panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		bus.Subscribe("trade.purchase_invoice.received", func(context.Context, shared.DomainEvent) error {
			panic("boom")
		})

		event := shared.NewBaseDomainEvent("trade.purchase_invoice.received", uuid.New())
		assert.NoError(t, bus.Publish(ctx, &event))
	})
}

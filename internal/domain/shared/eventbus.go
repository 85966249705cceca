package shared

import "context"

// EventHandler processes a published domain event
type EventHandler func(ctx context.Context, event DomainEvent) error

// EventBus publishes domain events to subscribed handlers
type EventBus interface {
	// Publish delivers an event to all handlers subscribed to its type
	Publish(ctx context.Context, event DomainEvent) error

	// Subscribe registers a handler for the given event type
	Subscribe(eventType string, handler EventHandler)
}

// PublishAll publishes every pending event of an aggregate and clears them
func PublishAll(ctx context.Context, bus EventBus, aggregate AggregateRoot) error {
	for _, event := range aggregate.PendingEvents() {
		if err := bus.Publish(ctx, event); err != nil {
			return err
		}
	}
	aggregate.ClearEvents()
	return nil
}

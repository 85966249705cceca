package shared

// AggregateRoot is the interface for aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	PendingEvents() []DomainEvent
	ClearEvents()
}

// BaseAggregateRoot provides common aggregate root behavior:
// optimistic-lock versioning and domain event collection.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"default:1" json:"version"`

	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates a new BaseAggregateRoot
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// GetVersion returns the aggregate version used for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the aggregate version
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddEvent records a domain event to be published after persistence
func (a *BaseAggregateRoot) AddEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// PendingEvents returns the recorded but not yet published events
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.domainEvents
}

// ClearEvents discards the recorded events, called after publishing
func (a *BaseAggregateRoot) ClearEvents() {
	a.domainEvents = nil
}

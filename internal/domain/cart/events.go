package cart

import "github.com/foodcheq/storefront/internal/domain/shared"

// EventTypeCartChanged is published after every successful cart mutation
const EventTypeCartChanged = "cart.changed"

// ChangedEvent signals that the persisted cart was mutated
type ChangedEvent struct {
	shared.BaseDomainEvent
	Count         int64 `json:"count"`
	TotalUSDCents int64 `json:"total_usd_cents"`
}

// NewChangedEvent creates a cart change event for the given storage key
func NewChangedEvent(storageKey string, c Cart) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartChanged, storageKey),
		Count:           c.Count(),
		TotalUSDCents:   c.TotalUSDCents(),
	}
}

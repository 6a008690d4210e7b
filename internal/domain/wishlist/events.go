package wishlist

import "github.com/foodcheq/storefront/internal/domain/shared"

// EventTypeWishlistChanged is published after every successful local mutation
const EventTypeWishlistChanged = "wishlist.changed"

// ChangedEvent signals that the persisted wishlist was mutated
type ChangedEvent struct {
	shared.BaseDomainEvent
	Count int `json:"count"`
}

// NewChangedEvent creates a wishlist change event for the given storage key
func NewChangedEvent(storageKey string, s IDSet) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWishlistChanged, storageKey),
		Count:           s.Count(),
	}
}

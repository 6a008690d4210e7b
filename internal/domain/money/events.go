package money

import "github.com/foodcheq/storefront/internal/domain/shared"

// EventTypeCurrencyChanged is published when the display currency selection
// changes, so price-rendering components can re-render
const EventTypeCurrencyChanged = "currency.changed"

// CurrencyChangedEvent signals a new display currency selection
type CurrencyChangedEvent struct {
	shared.BaseDomainEvent
	Currency Currency `json:"currency"`
}

// NewCurrencyChangedEvent creates a currency change event
func NewCurrencyChangedEvent(storageKey string, currency Currency) *CurrencyChangedEvent {
	return &CurrencyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCurrencyChanged, storageKey),
		Currency:        currency,
	}
}

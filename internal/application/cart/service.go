// Package cart implements the client cart store: a locally persisted list of
// line items with one-time migration of the two historical cart formats into
// the canonical USD-cents shape.
package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/domain/cart"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// Service is the storage-backed cart store. All operations are local state
// transformations; the network is never involved.
type Service struct {
	store  storage.Store
	events shared.EventPublisher
	logger *zap.Logger
}

// NewService creates a cart service over the given storage
func NewService(store storage.Store, events shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{store: store, events: events, logger: logger}
}

// Get returns the current cart. Any legacy-format cart found under the older
// keys is migrated first (destructively), and every record is normalized so
// callers never see a historical shape.
func (s *Service) Get(ctx context.Context) cart.Cart {
	s.migrateLegacyIfNeeded()

	var records []cart.Record
	if !s.store.Get(storage.KeyCartV2, &records) {
		return cart.Cart{}
	}
	return cart.Cart(cart.NormalizeAll(records))
}

// Add merges the product into the cart. Input without a resolvable product id
// is reported as skipped and leaves the cart untouched.
func (s *Service) Add(ctx context.Context, product cart.Record, qty int64) cart.AddResult {
	current := s.Get(ctx)
	next, result := current.Add(product, qty)
	if result.Outcome == cart.AddOutcomeSkipped {
		s.logger.Debug("add to cart skipped", zap.String("reason", result.Reason))
		return result
	}
	s.write(ctx, next)
	return result
}

// UpdateQty sets the quantity of the matching item, clamped to a minimum of
// 1. An unknown product id is a true no-op: nothing is written and no change
// event is published.
func (s *Service) UpdateQty(ctx context.Context, productID string, qty int64) {
	next, changed := s.Get(ctx).UpdateQty(productID, qty)
	if !changed {
		return
	}
	s.write(ctx, next)
}

// Remove deletes the matching item. An absent id is a true no-op: nothing is
// written and no change event is published.
func (s *Service) Remove(ctx context.Context, productID string) {
	next, changed := s.Get(ctx).Remove(productID)
	if !changed {
		return
	}
	s.write(ctx, next)
}

// Clear deletes the cart key entirely. Used once an order has been accepted,
// before handing off to the payment provider.
func (s *Service) Clear(ctx context.Context) {
	if err := s.store.Remove(storage.KeyCartV2); err != nil {
		s.logger.Warn("failed to clear cart", zap.Error(err))
		return
	}
	s.publish(ctx, cart.Cart{})
}

// TotalUSDCents returns the sum of price times quantity over all items
func (s *Service) TotalUSDCents(ctx context.Context) int64 {
	return s.Get(ctx).TotalUSDCents()
}

// Count returns the sum of quantities over all items
func (s *Service) Count(ctx context.Context) int64 {
	return s.Get(ctx).Count()
}

// write persists the cart and publishes a change event
func (s *Service) write(ctx context.Context, c cart.Cart) {
	if err := s.store.Set(storage.KeyCartV2, c); err != nil {
		// serialization/storage failures degrade silently; the in-memory view
		// stays correct for this operation and the next read falls back to
		// the stored state
		s.logger.Warn("failed to persist cart", zap.Error(err))
		return
	}
	s.publish(ctx, c)
}

func (s *Service) publish(ctx context.Context, c cart.Cart) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, cart.NewChangedEvent(storage.KeyCartV2, c))
}

// migrateLegacyIfNeeded upgrades v1 (kobo-priced) and unversioned legacy
// carts to the canonical v2 key. Migration runs at most once per legacy key:
// the old key is deleted after its records are rewritten. A populated v2 cart
// always wins over anything left under the old keys.
func (s *Service) migrateLegacyIfNeeded() {
	var current []cart.Record
	if s.store.Get(storage.KeyCartV2, &current) && len(current) > 0 {
		return
	}

	var v1 []cart.Record
	if s.store.Get(storage.KeyCartV1, &v1) && len(v1) > 0 {
		s.writeMigrated(v1)
		_ = s.store.Remove(storage.KeyCartV1)
		return
	}

	var legacy []cart.Record
	if s.store.Get(storage.KeyCartLegacy, &legacy) && len(legacy) > 0 {
		s.writeMigrated(legacy)
		_ = s.store.Remove(storage.KeyCartLegacy)
	}
}

func (s *Service) writeMigrated(records []cart.Record) {
	migrated := cart.NormalizeAll(records)
	if err := s.store.Set(storage.KeyCartV2, migrated); err != nil {
		s.logger.Warn("failed to write migrated cart", zap.Error(err))
	}
}

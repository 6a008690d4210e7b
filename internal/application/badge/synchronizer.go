// Package badge keeps every visible cart/wishlist counter consistent with
// the stores. Mutations in this process arrive over the event bus; mutations
// from other processes sharing the state arrive over the storage watch. Both
// paths converge on one recompute-and-render pass.
package badge

import (
	"context"
	"sync"

	"go.uber.org/zap"

	cartapp "github.com/foodcheq/storefront/internal/application/cart"
	wishlistapp "github.com/foodcheq/storefront/internal/application/wishlist"
	"github.com/foodcheq/storefront/internal/domain/cart"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/domain/wishlist"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// Counts is one consistent badge snapshot
type Counts struct {
	Cart     int64
	Wishlist int
}

// Renderer receives badge snapshots. The zero-count policy (hide the badge
// entirely rather than showing "0") is part of the renderer contract.
type Renderer interface {
	RenderBadges(counts Counts)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(Counts)

// RenderBadges implements Renderer
func (f RendererFunc) RenderBadges(counts Counts) { f(counts) }

// Synchronizer recomputes badge counts and pushes them to every registered
// renderer
type Synchronizer struct {
	carts     *cartapp.Service
	wishlists *wishlistapp.Service
	logger    *zap.Logger

	mu        sync.Mutex
	renderers []Renderer
}

// NewSynchronizer creates a badge synchronizer over the two stores
func NewSynchronizer(carts *cartapp.Service, wishlists *wishlistapp.Service, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{carts: carts, wishlists: wishlists, logger: logger}
}

// Register adds a renderer and immediately pushes the current counts to it
func (s *Synchronizer) Register(ctx context.Context, r Renderer) {
	s.mu.Lock()
	s.renderers = append(s.renderers, r)
	s.mu.Unlock()
	r.RenderBadges(s.counts(ctx))
}

// Refresh recomputes both counts and renders them everywhere. Stores call
// this indirectly by publishing change events; it is also safe to call
// directly after any mutation.
func (s *Synchronizer) Refresh(ctx context.Context) {
	counts := s.counts(ctx)
	s.mu.Lock()
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()
	for _, r := range renderers {
		r.RenderBadges(counts)
	}
}

// Bind wires the synchronizer to both change feeds: the in-process event bus
// and the cross-process storage watch. Storage watchers do not fire for the
// writing process, which is why same-process mutations must flow through the
// bus.
func (s *Synchronizer) Bind(bus shared.EventSubscriber, store storage.Store) {
	bus.Subscribe(s)
	store.Watch(func(evt storage.ChangeEvent) {
		switch evt.Key {
		case storage.KeyCartV2, storage.KeyCartV1, storage.KeyCartLegacy, storage.KeyWishlistIDs:
			s.Refresh(context.Background())
		}
	})
}

// Handle implements shared.EventHandler
func (s *Synchronizer) Handle(ctx context.Context, evt shared.DomainEvent) error {
	s.Refresh(ctx)
	return nil
}

// EventTypes implements shared.EventHandler
func (s *Synchronizer) EventTypes() []string {
	return []string{cart.EventTypeCartChanged, wishlist.EventTypeWishlistChanged}
}

func (s *Synchronizer) counts(ctx context.Context) Counts {
	return Counts{
		Cart:     s.carts.Count(ctx),
		Wishlist: s.wishlists.Count(ctx),
	}
}

// Ensure Synchronizer implements EventHandler
var _ shared.EventHandler = (*Synchronizer)(nil)

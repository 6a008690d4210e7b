// Package wishlist implements the client wishlist store. Local state is the
// fast path: mutations apply to storage immediately and, for signed-in users,
// a server call follows as post-hoc validation that can revert the optimistic
// update. The server owns the list; the local set is only a cache of it.
package wishlist

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/domain/wishlist"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// Outcome is the final state of an optimistic mutation
type Outcome string

const (
	// OutcomeLocalOnly means no user session exists; the mutation stayed local
	OutcomeLocalOnly Outcome = "local_only"
	// OutcomeCommitted means the server accepted the mutation
	OutcomeCommitted Outcome = "committed"
	// OutcomeRolledBack means the server rejected the mutation and the local
	// set was restored to its pre-call value
	OutcomeRolledBack Outcome = "rolled_back"
)

// MutationResult reports an optimistic mutation's transition explicitly:
// applied locally (pending), then committed or rolled back. Previous is the
// snapshot captured before the optimistic write; after a rollback it equals
// IDs exactly.
type MutationResult struct {
	Outcome  Outcome
	Active   bool
	IDs      wishlist.IDSet
	Previous wishlist.IDSet
}

// TokenSource reports whether a customer session exists. The wishlist is
// user-scoped: vendor sessions behave like guests here.
type TokenSource interface {
	UserToken() string
}

// Service is the storage-backed wishlist store with server reconciliation
type Service struct {
	store  storage.Store
	client *api.Client
	tokens TokenSource
	events shared.EventPublisher
	logger *zap.Logger
}

// NewService creates a wishlist service
func NewService(store storage.Store, client *api.Client, tokens TokenSource, events shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{store: store, client: client, tokens: tokens, events: events, logger: logger}
}

// IDs returns the current local id set without touching the network
func (s *Service) IDs(ctx context.Context) wishlist.IDSet {
	return s.read()
}

// Count returns the size of the local id set
func (s *Service) Count(ctx context.Context) int {
	return s.read().Count()
}

// idsResponse is the wire shape of GET /wishlist/ids
type idsResponse struct {
	ProductIDs []string `json:"productIds"`
}

// SyncFromServer reconciles the local cache with the server-owned list. For
// guests the local set is returned unchanged. For signed-in users the server
// response overwrites local state, so ids accumulated while logged out are
// discarded on the first sync after login. A network failure leaves local
// state untouched and is returned for logging.
func (s *Service) SyncFromServer(ctx context.Context) (wishlist.IDSet, error) {
	if s.tokens.UserToken() == "" {
		return s.read(), nil
	}

	var resp idsResponse
	if err := s.client.Get(ctx, "/wishlist/ids", api.AuthUser, &resp); err != nil {
		s.logger.Debug("wishlist sync failed, keeping local state", zap.Error(err))
		return s.read(), err
	}

	next := wishlist.NewIDSet(resp.ProductIDs...)
	s.write(ctx, next)
	return next, nil
}

// Add puts the product id at the front of the set, optimistically. When a
// user session exists the server call follows; rejection restores the exact
// pre-call set and the server's error is returned for UI display.
func (s *Service) Add(ctx context.Context, productID string) (MutationResult, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return MutationResult{}, shared.NewDomainError("INVALID_INPUT", "Missing product id")
	}

	prev := s.read()
	next := prev.Add(id)
	s.write(ctx, next)

	if s.tokens.UserToken() == "" {
		return MutationResult{Outcome: OutcomeLocalOnly, Active: true, IDs: next, Previous: prev}, nil
	}

	if err := s.client.Post(ctx, "/wishlist", map[string]string{"productId": id}, api.AuthUser, nil); err != nil {
		s.write(ctx, prev)
		return MutationResult{Outcome: OutcomeRolledBack, Active: prev.Contains(id), IDs: prev, Previous: prev}, err
	}
	return MutationResult{Outcome: OutcomeCommitted, Active: true, IDs: next, Previous: prev}, nil
}

// Remove drops the product id from the set, optimistically, with the same
// rollback contract as Add
func (s *Service) Remove(ctx context.Context, productID string) (MutationResult, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return MutationResult{}, shared.NewDomainError("INVALID_INPUT", "Missing product id")
	}

	prev := s.read()
	next := prev.Remove(id)
	s.write(ctx, next)

	if s.tokens.UserToken() == "" {
		return MutationResult{Outcome: OutcomeLocalOnly, Active: false, IDs: next, Previous: prev}, nil
	}

	if err := s.client.Delete(ctx, "/wishlist/"+url.PathEscape(id), api.AuthUser, nil); err != nil {
		s.write(ctx, prev)
		return MutationResult{Outcome: OutcomeRolledBack, Active: prev.Contains(id), IDs: prev, Previous: prev}, err
	}
	return MutationResult{Outcome: OutcomeCommitted, Active: false, IDs: next, Previous: prev}, nil
}

// Toggle dispatches to Add or Remove based on the caller-supplied current
// state. The caller (typically a button's visual state) is trusted as the
// source of truth for "currently active"; two sessions toggling concurrently
// can invert the real state.
func (s *Service) Toggle(ctx context.Context, productID string, currentlyActive bool) (MutationResult, error) {
	if currentlyActive {
		return s.Remove(ctx, productID)
	}
	return s.Add(ctx, productID)
}

// read loads and cleans the local id set, tolerating every historical blob
// shape
func (s *Service) read() wishlist.IDSet {
	raw, ok := s.store.GetRaw(storage.KeyWishlistIDs)
	if !ok {
		return wishlist.IDSet{}
	}
	return wishlist.ParseRaw(raw)
}

// write persists the set and publishes a change event
func (s *Service) write(ctx context.Context, set wishlist.IDSet) {
	if err := s.store.Set(storage.KeyWishlistIDs, set); err != nil {
		s.logger.Warn("failed to persist wishlist", zap.Error(err))
		return
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, wishlist.NewChangedEvent(storage.KeyWishlistIDs, set))
	}
}

package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcheq/storefront/internal/domain/cart"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/event"
	"github.com/foodcheq/storefront/internal/infrastructure/logger"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

type captureHandler struct {
	events []shared.DomainEvent
}

func (h *captureHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.events = append(h.events, evt)
	return nil
}

func (h *captureHandler) EventTypes() []string {
	return []string{cart.EventTypeCartChanged}
}

func newTestService(t *testing.T) (*Service, *storage.MemoryStore, *captureHandler) {
	t.Helper()
	store := storage.NewMemoryStore()
	bus := event.NewInMemoryEventBus(logger.Nop())
	handler := &captureHandler{}
	bus.Subscribe(handler)
	return NewService(store, bus, logger.Nop()), store, handler
}

func TestMigration(t *testing.T) {
	ctx := context.Background()

	t.Run("unversioned legacy cart migrates destructively", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		require.NoError(t, store.SetRaw(storage.KeyCartLegacy, []byte(`[{"name":"Tea","price":5,"qty":2}]`)))

		items := svc.Get(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, cart.Item{ProductID: "Tea", Name: "Tea", PriceUSDCents: 500, Quantity: 2}, items[0])

		_, ok := store.GetRaw(storage.KeyCartLegacy)
		assert.False(t, ok, "legacy key is removed after migration")
		_, ok = store.GetRaw(storage.KeyCartV2)
		assert.True(t, ok, "migrated cart lands under the canonical key")
	})

	t.Run("v1 kobo cart migrates at the fixed rate", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		require.NoError(t, store.SetRaw(storage.KeyCartV1, []byte(`[{"productId":"p1","priceKobo":1600000,"quantity":1}]`)))

		items := svc.Get(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1000), items[0].PriceUSDCents)

		_, ok := store.GetRaw(storage.KeyCartV1)
		assert.False(t, ok)
	})

	t.Run("a populated v2 cart wins over older keys", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		require.NoError(t, store.SetRaw(storage.KeyCartV2, []byte(`[{"productId":"new","priceUsdCents":100,"quantity":1}]`)))
		require.NoError(t, store.SetRaw(storage.KeyCartV1, []byte(`[{"productId":"old","priceKobo":160000,"quantity":1}]`)))

		items := svc.Get(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, "new", items[0].ProductID)

		_, ok := store.GetRaw(storage.KeyCartV1)
		assert.True(t, ok, "older keys are left alone while v2 has content")
	})

	t.Run("v1 takes precedence over the unversioned key", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		require.NoError(t, store.SetRaw(storage.KeyCartV1, []byte(`[{"productId":"from-v1","priceKobo":160000}]`)))
		require.NoError(t, store.SetRaw(storage.KeyCartLegacy, []byte(`[{"name":"from-legacy","price":1}]`)))

		items := svc.Get(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, "from-v1", items[0].ProductID)
	})
}

func TestServiceAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("add persists and publishes", func(t *testing.T) {
		svc, store, handler := newTestService(t)

		result := svc.Add(ctx, cart.Record{ProductID: "p1", Name: "Egusi", PriceUSDCents: 1050}, 2)
		assert.Equal(t, cart.AddOutcomeAdded, result.Outcome)

		var persisted []cart.Item
		require.True(t, store.Get(storage.KeyCartV2, &persisted))
		require.Len(t, persisted, 1)
		assert.Equal(t, int64(2), persisted[0].Quantity)

		require.Len(t, handler.events, 1)
		changed, ok := handler.events[0].(*cart.ChangedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(2), changed.Count)
		assert.Equal(t, int64(2100), changed.TotalUSDCents)
	})

	t.Run("skipped add writes and publishes nothing", func(t *testing.T) {
		svc, store, handler := newTestService(t)

		result := svc.Add(ctx, cart.Record{}, 1)
		assert.Equal(t, cart.AddOutcomeSkipped, result.Outcome)

		_, ok := store.GetRaw(storage.KeyCartV2)
		assert.False(t, ok)
		assert.Empty(t, handler.events)
	})
}

func TestServiceMutations(t *testing.T) {
	ctx := context.Background()
	svc, store, handler := newTestService(t)

	svc.Add(ctx, cart.Record{ProductID: "p1", PriceUSDCents: 500}, 1)
	svc.Add(ctx, cart.Record{ProductID: "p2", PriceUSDCents: 300}, 1)

	svc.UpdateQty(ctx, "p1", 4)
	assert.Equal(t, int64(5), svc.Count(ctx))
	assert.Equal(t, int64(4*500+300), svc.TotalUSDCents(ctx))

	svc.Remove(ctx, "p2")
	assert.Equal(t, int64(4), svc.Count(ctx))

	svc.Clear(ctx)
	assert.Equal(t, int64(0), svc.Count(ctx))
	_, ok := store.GetRaw(storage.KeyCartV2)
	assert.False(t, ok, "clear removes the key entirely")

	// add, add, update, remove, clear all announce themselves
	assert.Len(t, handler.events, 5)
	last, ok := handler.events[4].(*cart.ChangedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(0), last.Count)
}

func TestServiceNoOpMutations(t *testing.T) {
	ctx := context.Background()
	svc, store, handler := newTestService(t)

	svc.Add(ctx, cart.Record{ProductID: "p1", PriceUSDCents: 500}, 1)
	before, ok := store.GetRaw(storage.KeyCartV2)
	require.True(t, ok)
	baseline := len(handler.events)

	svc.UpdateQty(ctx, "nope", 3)
	svc.Remove(ctx, "nope")

	after, ok := store.GetRaw(storage.KeyCartV2)
	require.True(t, ok)
	assert.Equal(t, string(before), string(after), "unknown ids never rewrite the cart")
	assert.Len(t, handler.events, baseline, "unknown ids never publish a change")
}

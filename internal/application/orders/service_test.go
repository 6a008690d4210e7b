package orders

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcheq/storefront/internal/application/logistics"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/logger"
	"github.com/foodcheq/storefront/internal/interfaces/mockapi"
)

type stubTokens struct{ user string }

func (s *stubTokens) UserToken() string   { return s.user }
func (s *stubTokens) VendorToken() string { return "" }
func (s *stubTokens) AuthType() string    { return "user" }

func newBackend(t *testing.T) *api.Client {
	t.Helper()
	backend := httptest.NewServer(mockapi.New(mockapi.Config{}, logger.Nop()).Router())
	t.Cleanup(backend.Close)
	return api.New(backend.URL+"/api", backend.URL, 0, &stubTokens{user: "tok"}, logger.Nop())
}

func TestListAndGet(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)
	svc := NewService(client, logger.Nop())

	orderList, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orderList)

	// create one through the API, then read it back
	var created struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	payload := map[string]any{
		"items":         []map[string]any{{"productId": "p1", "quantity": 1}},
		"paymentMethod": "paystack",
		"shippingType":  "standard",
	}
	require.NoError(t, client.Post(ctx, "/orders", payload, api.AuthUser, &created))

	orderList, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orderList, 1)

	order, err := svc.Get(ctx, created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Order.ID, order.ID)
	assert.Equal(t, "pending_payment", order.Status)

	_, err = svc.Get(ctx, "nope")
	assert.True(t, api.IsStatus(err, 404))
}

func TestTrack(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)
	svc := NewService(client, logger.Nop())

	t.Run("empty code is rejected locally", func(t *testing.T) {
		_, err := svc.Track(ctx, "   ")
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "INVALID_INPUT", derr.Code)
	})

	t.Run("falls back from shipments to pickup requests", func(t *testing.T) {
		code, err := logistics.NewService(client, logger.Nop()).RequestPickup(ctx, logistics.PickupRequest{
			FullName:        "Ada O",
			Phone:           "+2348012345678",
			PickupLocation:  "Lagos",
			DropoffLocation: "Abuja",
		})
		require.NoError(t, err)

		shipment, err := svc.Track(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, code, shipment.TrackingCode)
		assert.Equal(t, "requested", shipment.Status)
		assert.Equal(t, "Lagos", shipment.PickupLocation)
	})

	t.Run("unknown code surfaces the API error", func(t *testing.T) {
		_, err := svc.Track(ctx, "FCQ-UNKNOWN")
		assert.True(t, api.IsStatus(err, 404))
	})
}

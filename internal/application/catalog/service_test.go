package catalog_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcheq/storefront/internal/application/catalog"

	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/logger"
	"github.com/foodcheq/storefront/internal/interfaces/mockapi"
)

type noTokens struct{}

func (noTokens) UserToken() string   { return "" }
func (noTokens) VendorToken() string { return "" }
func (noTokens) AuthType() string    { return "" }

func newTestService(t *testing.T) *catalog.Service {
	t.Helper()
	backend := httptest.NewServer(mockapi.New(mockapi.Config{}, logger.Nop()).Router())
	t.Cleanup(backend.Close)
	client := api.New(backend.URL+"/api", backend.URL, 0, noTokens{}, logger.Nop())
	return catalog.NewService(client, logger.Nop())
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	products := svc.List(ctx)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
	}
}

func TestListDegradesToEmpty(t *testing.T) {
	client := api.New("http://127.0.0.1:1", "", 0, noTokens{}, logger.Nop())
	svc := catalog.NewService(client, logger.Nop())

	assert.Nil(t, svc.List(context.Background()))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	byID, err := svc.Get(ctx, "p-palm-oil-1l")
	require.NoError(t, err)
	assert.Equal(t, "Palm Oil 1L", byID.Name)

	bySlug, err := svc.Get(ctx, "palm-oil-1l")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)

	_, err = svc.Get(ctx, "nope")
	assert.True(t, api.IsStatus(err, 404))
}

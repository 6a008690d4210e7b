package mockapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcheq/storefront/internal/infrastructure/logger"
)

func newServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(cfg, logger.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthRequired(t *testing.T) {
	srv := newServer(t, Config{})

	resp, err := http.Get(srv.URL + "/api/wishlist/ids")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWishlistScopedPerToken(t *testing.T) {
	srv := newServer(t, Config{})
	client := srv.Client()

	add := func(token, id string) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/wishlist", strings.NewReader(`{"productId":"`+id+`"}`))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	add("alice", "p1")
	add("bob", "p2")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/wishlist/ids", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer alice")
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "p1")
	assert.NotContains(t, string(buf[:n]), "p2")
}

func TestFxRate(t *testing.T) {
	srv := newServer(t, Config{Rate: 1700})

	resp, err := http.Get(srv.URL + "/api/fx/usd-ngn")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "1700")
}

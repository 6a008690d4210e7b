package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set("foodcheq_cart_v2", []string{"a", "b"}))

	var out []string
	require.True(t, store.Get("foodcheq_cart_v2", &out))
	assert.Equal(t, []string{"a", "b"}, out)

	// upserts replace
	require.NoError(t, store.SetRaw("foodcheq_cart_v2", []byte(`["c"]`)))
	raw, ok := store.GetRaw("foodcheq_cart_v2")
	require.True(t, ok)
	assert.JSONEq(t, `["c"]`, string(raw))

	require.NoError(t, store.SetRaw("selectedCurrency", []byte("NGN")))
	assert.ElementsMatch(t, []string{"foodcheq_cart_v2", "selectedCurrency"}, store.Keys())

	require.NoError(t, store.Remove("foodcheq_cart_v2"))
	assert.False(t, store.Get("foodcheq_cart_v2", &out))
	assert.NoError(t, store.Remove("foodcheq_cart_v2"))
	assert.ElementsMatch(t, []string{"selectedCurrency"}, store.Keys())
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.SetRaw("selectedCurrency", []byte("NGN")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	assert.Equal(t, "NGN", GetString(second, "selectedCurrency", ""))
}

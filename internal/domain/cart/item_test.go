package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordNormalize(t *testing.T) {
	t.Run("canonical record passes through", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"productId":"p1","name":"Palm Oil","priceUsdCents":1250,"quantity":3}`), &r))

		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, Item{ProductID: "p1", Name: "Palm Oil", PriceUSDCents: 1250, Quantity: 3}, item)
	})

	t.Run("unversioned legacy record migrates to cents", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Tea","price":5,"qty":2}`), &r))

		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, "Tea", item.ProductID, "name doubles as the id when nothing else is present")
		assert.Equal(t, "Tea", item.Name)
		assert.Equal(t, int64(500), item.PriceUSDCents)
		assert.Equal(t, int64(2), item.Quantity)
	})

	t.Run("kobo price converts at the migration rate", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p2","priceKobo":1600000,"quantity":1}`), &r))

		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, int64(1000), item.PriceUSDCents)
	})

	t.Run("id alias order", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"productId":"a","id":"b","slug":"c","name":"d"}`), &r))
		item, _ := r.Normalize()
		assert.Equal(t, "a", item.ProductID)

		r = Record{}
		require.NoError(t, json.Unmarshal([]byte(`{"id":"b","slug":"c"}`), &r))
		item, _ = r.Normalize()
		assert.Equal(t, "b", item.ProductID)

		r = Record{}
		require.NoError(t, json.Unmarshal([]byte(`{"slug":"c"}`), &r))
		item, _ = r.Normalize()
		assert.Equal(t, "c", item.ProductID)
	})

	t.Run("numeric and string field coercion", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"id":42,"price":"5.25","qty":"3"}`), &r))

		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, "42", item.ProductID)
		assert.Equal(t, int64(525), item.PriceUSDCents)
		assert.Equal(t, int64(3), item.Quantity)
	})

	t.Run("record without any identifier is dropped", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"price":5,"qty":2}`), &r))
		_, ok := r.Normalize()
		assert.False(t, ok)
	})

	t.Run("missing name gets the placeholder", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p9"}`), &r))
		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, DefaultItemName, item.Name)
		assert.Equal(t, int64(0), item.PriceUSDCents)
		assert.Equal(t, int64(1), item.Quantity, "quantity floor is 1")
	})

	t.Run("malformed values degrade instead of failing", func(t *testing.T) {
		var r Record
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","price":"not-a-number","qty":null}`), &r))
		item, ok := r.Normalize()
		require.True(t, ok)
		assert.Equal(t, int64(0), item.PriceUSDCents)
		assert.Equal(t, int64(1), item.Quantity)
	})
}

func TestNormalizeAll(t *testing.T) {
	var records []Record
	blob := `[{"productId":"a","priceUsdCents":100},{"price":1},{"name":"Tea","price":5,"qty":2}]`
	require.NoError(t, json.Unmarshal([]byte(blob), &records))

	items := NormalizeAll(records)
	require.Len(t, items, 2, "the id-less record is dropped")
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, "Tea", items[1].ProductID)
}

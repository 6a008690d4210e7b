package wishlist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRaw(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		set := ParseRaw([]byte(`["p1","p2"]`))
		assert.Equal(t, []string{"p1", "p2"}, set.IDs())
	})

	t.Run("numeric ids become strings", func(t *testing.T) {
		set := ParseRaw([]byte(`[1,2,"p3"]`))
		assert.Equal(t, []string{"1", "2", "p3"}, set.IDs())
	})

	t.Run("double-encoded array", func(t *testing.T) {
		set := ParseRaw([]byte(`"[\"p1\",\"p2\"]"`))
		assert.Equal(t, []string{"p1", "p2"}, set.IDs())
	})

	t.Run("bare unquoted id", func(t *testing.T) {
		set := ParseRaw([]byte(`p1`))
		assert.Equal(t, []string{"p1"}, set.IDs())
	})

	t.Run("quoted single id", func(t *testing.T) {
		set := ParseRaw([]byte(`"p1"`))
		assert.Equal(t, []string{"p1"}, set.IDs())
	})

	t.Run("duplicates and blanks are dropped", func(t *testing.T) {
		set := ParseRaw([]byte(`["p1"," p1 ","","p2"]`))
		assert.Equal(t, []string{"p1", "p2"}, set.IDs())
	})

	t.Run("undecodable input yields an empty set", func(t *testing.T) {
		assert.Equal(t, 0, ParseRaw([]byte(`{"not":"an array"}`)).Count())
		assert.Equal(t, 0, ParseRaw(nil).Count())
		assert.Equal(t, 0, ParseRaw([]byte("  ")).Count())
	})
}

func TestIDSetMutations(t *testing.T) {
	t.Run("add prepends", func(t *testing.T) {
		set := NewIDSet("p1").Add("p2")
		assert.Equal(t, []string{"p2", "p1"}, set.IDs())
	})

	t.Run("adding a present id is a no-op", func(t *testing.T) {
		set := NewIDSet("p1", "p2")
		assert.True(t, set.Add("p1").Equal(set))
	})

	t.Run("adding an empty id is a no-op", func(t *testing.T) {
		set := NewIDSet("p1")
		assert.True(t, set.Add("  ").Equal(set))
	})

	t.Run("remove keeps order", func(t *testing.T) {
		set := NewIDSet("p1", "p2", "p3").Remove("p2")
		assert.Equal(t, []string{"p1", "p3"}, set.IDs())
	})

	t.Run("mutations do not touch the receiver", func(t *testing.T) {
		set := NewIDSet("p1")
		_ = set.Add("p2")
		_ = set.Remove("p1")
		assert.Equal(t, []string{"p1"}, set.IDs())
	})
}

func TestIDSetContains(t *testing.T) {
	set := NewIDSet("p1")
	assert.True(t, set.Contains("p1"))
	assert.True(t, set.Contains(" p1 "), "lookups trim whitespace")
	assert.False(t, set.Contains("p2"))
}

func TestIDSetMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(NewIDSet("p1", "p2"))
	require.NoError(t, err)
	assert.JSONEq(t, `["p1","p2"]`, string(raw))

	raw, err = json.Marshal(IDSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw), "empty sets persist as an empty array, not null")
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSessionTokens(t *testing.T) {
	store := storage.NewMemoryStore()
	session := NewSession(store)

	assert.Empty(t, session.UserToken())
	assert.Equal(t, TypeUser, session.AuthType(), "defaults to user")

	require.NoError(t, session.SetUserToken("u-tok"))
	assert.Equal(t, "u-tok", session.UserToken())
	assert.Equal(t, TypeUser, session.AuthType())

	require.NoError(t, session.SetVendorToken("v-tok"))
	assert.Equal(t, "v-tok", session.VendorToken())
	assert.Equal(t, TypeVendor, session.AuthType(), "the most recent login wins")

	// legacy bare-string persistence is readable
	require.NoError(t, store.SetRaw(storage.KeyToken, []byte("bare-token")))
	assert.Equal(t, "bare-token", session.UserToken())
}

func TestLogout(t *testing.T) {
	store := storage.NewMemoryStore()
	session := NewSession(store)

	require.NoError(t, session.SetUserToken("u-tok"))
	require.NoError(t, session.SetRefreshToken("r-tok"))
	require.NoError(t, session.SetUserProfile([]byte(`{"name":"Ada"}`)))
	require.NoError(t, session.SetVendorToken("v-tok"))
	require.NoError(t, session.SetVendorProfile([]byte(`{"shop":"Spices"}`)))

	require.NoError(t, session.LogoutUser())
	assert.Empty(t, session.UserToken())
	assert.Empty(t, session.RefreshToken())
	_, ok := session.UserProfile()
	assert.False(t, ok)
	assert.Equal(t, "v-tok", session.VendorToken(), "vendor session survives a user logout")

	require.NoError(t, session.LogoutVendor())
	assert.Empty(t, session.VendorToken())
	_, ok = session.VendorProfile()
	assert.False(t, ok)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, exp)

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	_, err = TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	assert.False(t, IsExpired(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, IsExpired(signedToken(t, time.Now().Add(-time.Hour))))
	assert.True(t, IsExpired(""))
	assert.True(t, IsExpired("garbage"))
}

// Package auth holds the client-side session state: bearer tokens for the
// customer and vendor roles, the active auth type, and cached profiles. No
// verification happens here; tokens are opaque credentials minted by the
// marketplace API; the client only inspects expiry claims to avoid sending
// calls that are doomed to 401.
package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// Auth types persisted under the authType key
const (
	TypeUser   = "user"
	TypeVendor = "vendor"
)

// Session is the token store backing every authenticated API call
type Session struct {
	store storage.Store
}

// NewSession creates a session store over the given storage
func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// UserToken returns the customer bearer token, or empty when logged out
func (s *Session) UserToken() string {
	return storage.GetString(s.store, storage.KeyToken, "")
}

// SetUserToken stores the customer bearer token and marks the session a user
// session
func (s *Session) SetUserToken(token string) error {
	if err := s.store.Set(storage.KeyToken, token); err != nil {
		return err
	}
	return s.store.Set(storage.KeyAuthType, TypeUser)
}

// VendorToken returns the vendor bearer token, or empty when logged out
func (s *Session) VendorToken() string {
	return storage.GetString(s.store, storage.KeyVendorToken, "")
}

// SetVendorToken stores the vendor bearer token and marks the session a
// vendor session
func (s *Session) SetVendorToken(token string) error {
	if err := s.store.Set(storage.KeyVendorToken, token); err != nil {
		return err
	}
	return s.store.Set(storage.KeyAuthType, TypeVendor)
}

// AuthType returns which token auto-auth requests should use; defaults to
// the user token
func (s *Session) AuthType() string {
	t := storage.GetString(s.store, storage.KeyAuthType, TypeUser)
	if t != TypeVendor {
		return TypeUser
	}
	return TypeVendor
}

// RefreshToken returns the stored refresh token, if any
func (s *Session) RefreshToken() string {
	return storage.GetString(s.store, storage.KeyRefreshToken, "")
}

// SetRefreshToken stores the refresh token
func (s *Session) SetRefreshToken(token string) error {
	return s.store.Set(storage.KeyRefreshToken, token)
}

// SetUserProfile caches the user profile blob returned by the API
func (s *Session) SetUserProfile(profile json.RawMessage) error {
	return s.store.SetRaw(storage.KeyUser, profile)
}

// UserProfile returns the cached user profile blob, if any
func (s *Session) UserProfile() (json.RawMessage, bool) {
	return s.store.GetRaw(storage.KeyUser)
}

// SetVendorProfile caches the vendor profile blob returned by the API
func (s *Session) SetVendorProfile(profile json.RawMessage) error {
	return s.store.SetRaw(storage.KeyVendor, profile)
}

// VendorProfile returns the cached vendor profile blob, if any
func (s *Session) VendorProfile() (json.RawMessage, bool) {
	return s.store.GetRaw(storage.KeyVendor)
}

// LogoutUser clears the customer session
func (s *Session) LogoutUser() error {
	_ = s.store.Remove(storage.KeyToken)
	_ = s.store.Remove(storage.KeyUser)
	return s.store.Remove(storage.KeyRefreshToken)
}

// LogoutVendor clears the vendor session
func (s *Session) LogoutVendor() error {
	_ = s.store.Remove(storage.KeyVendorToken)
	return s.store.Remove(storage.KeyVendor)
}

// TokenExpiry extracts the exp claim without verifying the signature. The
// client has no signing key; this is a UX check only.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return exp.Time, nil
}

// IsExpired reports whether the token carries an exp claim in the past.
// Tokens that cannot be parsed are treated as expired.
func IsExpired(token string) bool {
	if token == "" {
		return true
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return time.Now().After(exp)
}

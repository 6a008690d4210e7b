package storage

// Persisted state keys. These are carried over verbatim from the legacy
// storefront; changing any of them breaks migration of existing state.
const (
	// KeyCartV2 is the canonical cart: a JSON array of
	// {productId, name, priceUsdCents, quantity}
	KeyCartV2 = "foodcheq_cart_v2"
	// KeyCartV1 is the kobo-priced v1 cart, migrated destructively on read
	KeyCartV1 = "foodcheq_cart_v1"
	// KeyCartLegacy is the unversioned original cart, price in major units
	KeyCartLegacy = "cart"

	// KeyWishlistIDs is a JSON array of product id strings
	KeyWishlistIDs = "wishlist_ids"

	// Auth session state
	KeyToken        = "token"
	KeyVendorToken  = "vendor_token"
	KeyAuthType     = "authType"
	KeyUser         = "user"
	KeyVendor       = "vendor"
	KeyRefreshToken = "refreshToken"

	// Currency / FX cache
	KeySelectedCurrency = "selectedCurrency"
	KeyFxUsdNgnRate     = "foodcheq_fx_usd_ngn_rate"
	KeyFxUsdNgnRateTime = "foodcheq_fx_usd_ngn_rate_time"
)

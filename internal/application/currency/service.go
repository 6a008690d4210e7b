// Package currency implements the FX helper: a cached USD→NGN rate with a
// 30-minute time-to-live and a hardcoded fallback, plus money display in the
// selected currency. Display policy: when no conversion rate is available,
// always fall back to USD rather than an error or a zero amount.
package currency

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/domain/money"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// DefaultCacheTTL matches the 30-minute cache the browser build used
const DefaultCacheTTL = 30 * time.Minute

// DefaultFallbackRate is the NGN-per-USD constant applied when the remote
// fetch fails and nothing is cached
const DefaultFallbackRate = 1600

// Service fetches, caches and applies the USD→NGN rate
type Service struct {
	store    storage.Store
	client   *api.Client
	events   shared.EventPublisher
	logger   *zap.Logger
	ttl      time.Duration
	fallback decimal.Decimal

	now func() time.Time
}

// NewService creates a currency service. Zero ttl and fallback select the
// defaults the browser build shipped with.
func NewService(store storage.Store, client *api.Client, events shared.EventPublisher, logger *zap.Logger, ttl time.Duration, fallbackRate float64) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if fallbackRate <= 0 {
		fallbackRate = DefaultFallbackRate
	}
	return &Service{
		store:    store,
		client:   client,
		events:   events,
		logger:   logger,
		ttl:      ttl,
		fallback: decimal.NewFromFloat(fallbackRate),
		now:      time.Now,
	}
}

// rateResponse is the wire shape of GET /fx/usd-ngn
type rateResponse struct {
	Rate float64 `json:"rate"`
}

// Rate returns the NGN-per-USD rate. A fresh cached value wins; otherwise the
// remote rate is fetched and cached. On failure a stale cached value is
// preferred over the fallback constant, and the fallback is the last resort.
// The returned rate is always positive.
func (s *Service) Rate(ctx context.Context) decimal.Decimal {
	cached, cachedAt := s.readCache()

	if cached.IsPositive() && s.now().Sub(cachedAt) < s.ttl {
		return cached
	}

	var resp rateResponse
	if err := s.client.Get(ctx, "/fx/usd-ngn", api.AuthNone, &resp); err != nil {
		s.logger.Debug("fx rate fetch failed", zap.Error(err))
		if cached.IsPositive() {
			return cached
		}
		return s.fallback
	}

	rate := decimal.NewFromFloat(resp.Rate)
	if !rate.IsPositive() {
		if cached.IsPositive() {
			return cached
		}
		return s.fallback
	}

	s.writeCache(rate)
	return rate
}

// Selected returns the persisted display currency, defaulting to USD
func (s *Service) Selected(ctx context.Context) money.Currency {
	c := money.Currency(storage.GetString(s.store, storage.KeySelectedCurrency, string(money.DefaultCurrency)))
	if c != money.NGN {
		return money.USD
	}
	return money.NGN
}

// SetSelected persists the display currency and announces the change
func (s *Service) SetSelected(ctx context.Context, currency money.Currency) error {
	if currency != money.NGN {
		currency = money.USD
	}
	if err := s.store.Set(storage.KeySelectedCurrency, string(currency)); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, money.NewCurrencyChangedEvent(storage.KeySelectedCurrency, currency))
	}
	return nil
}

// Format renders USD cents in the selected display currency, fetching the
// rate when NGN display needs one
func (s *Service) Format(ctx context.Context, usdCents int64) string {
	currency := s.Selected(ctx)
	if currency != money.NGN {
		return money.FormatUSDFromCents(usdCents)
	}
	return money.Format(usdCents, money.NGN, s.Rate(ctx))
}

// Kobo converts USD cents to NGN kobo at the current rate
func (s *Service) Kobo(ctx context.Context, usdCents int64) int64 {
	return money.UsdCentsToKobo(usdCents, s.Rate(ctx))
}

// readCache loads the persisted rate and its write time. The legacy
// storefront wrote both as bare strings; GetString tolerates either encoding.
func (s *Service) readCache() (decimal.Decimal, time.Time) {
	rateStr := storage.GetString(s.store, storage.KeyFxUsdNgnRate, "")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Zero, time.Time{}
	}

	msStr := storage.GetString(s.store, storage.KeyFxUsdNgnRateTime, "")
	ms, err := strconv.ParseInt(msStr, 10, 64)
	if err != nil {
		return rate, time.Time{}
	}
	return rate, time.UnixMilli(ms)
}

// writeCache persists the rate in the legacy bare-string format so state
// directories stay interchangeable with the browser build's exports
func (s *Service) writeCache(rate decimal.Decimal) {
	if err := s.store.SetRaw(storage.KeyFxUsdNgnRate, []byte(rate.String())); err != nil {
		s.logger.Warn("failed to cache fx rate", zap.Error(err))
		return
	}
	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.store.SetRaw(storage.KeyFxUsdNgnRateTime, []byte(ms)); err != nil {
		s.logger.Warn("failed to cache fx rate time", zap.Error(err))
	}
}

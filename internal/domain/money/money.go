package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a display currency code (ISO 4217)
type Currency string

const (
	// USD is the canonical pricing currency; carts always store USD cents
	USD Currency = "USD"
	// NGN is the local display currency, converted at the current FX rate
	NGN Currency = "NGN"
)

// DefaultCurrency is used when no display currency has been selected
const DefaultCurrency = USD

// printer applies en-style digit grouping, matching the storefront's
// toLocaleString output
var printer = message.NewPrinter(language.English)

// symbols maps currencies to their display prefix
var symbols = map[Currency]string{
	USD: "$",
	NGN: "₦",
}

// Symbol returns the display prefix for the currency
func Symbol(c Currency) string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return string(c) + " "
}

// UsdCentsToKobo converts USD cents to NGN kobo at the given NGN-per-USD rate.
// kobo = usdCents * rate, because cents/100 * rate * 100.
func UsdCentsToKobo(usdCents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(usdCents).Mul(rate).Round(0).IntPart()
}

// FormatUSDFromCents renders USD cents as a grouped two-decimal dollar amount,
// e.g. 1050 -> "$10.50"
func FormatUSDFromCents(usdCents int64) string {
	amount, _ := decimal.NewFromInt(usdCents).Div(decimal.NewFromInt(100)).Round(2).Float64()
	return symbols[USD] + printer.Sprintf("%.2f", amount)
}

// FormatNairaFromKobo renders kobo as a grouped naira amount with up to two
// decimals and no trailing zeros, e.g. 1680000 -> "₦16,800"
func FormatNairaFromKobo(kobo int64) string {
	if kobo%100 == 0 {
		return symbols[NGN] + printer.Sprintf("%d", kobo/100)
	}
	amount, _ := decimal.NewFromInt(kobo).Div(decimal.NewFromInt(100)).Round(2).Float64()
	s := printer.Sprintf("%.2f", amount)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return symbols[NGN] + s
}

// Format renders USD cents in the requested display currency. A missing or
// non-positive rate always falls back to USD display rather than an error or
// a zero amount.
func Format(usdCents int64, currency Currency, rate decimal.Decimal) string {
	if currency != NGN || !rate.IsPositive() {
		return FormatUSDFromCents(usdCents)
	}
	return FormatNairaFromKobo(UsdCentsToKobo(usdCents, rate))
}

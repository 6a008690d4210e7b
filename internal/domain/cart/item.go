package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultItemName is used when a record carries no usable name
const DefaultItemName = "Item"

// MigrationRateNGNPerUSD is the rough NGN-per-USD rate applied when migrating
// kobo-priced v1 records to USD cents. Historical estimate, kept stable so old
// carts migrate deterministically.
const MigrationRateNGNPerUSD = 1600

// Item is a canonical v2 cart line item, priced in USD cents
type Item struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	PriceUSDCents int64  `json:"priceUsdCents"`
	Quantity      int64  `json:"quantity"`
}

// Record is a raw persisted cart record. It tolerates every historical shape:
// v2 (productId/priceUsdCents/quantity), v1 (priceKobo), and the legacy
// unversioned cart (id/slug/name, price in major units, qty).
type Record struct {
	ProductID     FlexString `json:"productId"`
	ID            FlexString `json:"id"`
	Slug          FlexString `json:"slug"`
	Name          FlexString `json:"name"`
	PriceUSDCents FlexNumber `json:"priceUsdCents"`
	PriceKobo     FlexNumber `json:"priceKobo"`
	Price         FlexNumber `json:"price"`
	Quantity      FlexNumber `json:"quantity"`
	Qty           FlexNumber `json:"qty"`
}

// FlexString decodes a JSON string or number into a trimmed string
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		*s = FlexString(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*s = ""
		return nil
	}
	*s = FlexString(n.String())
	return nil
}

// FlexNumber decodes a JSON number or numeric string; anything else becomes 0
type FlexNumber float64

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*n = 0
			return nil
		}
		raw = strings.TrimSpace(v)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = FlexNumber(f)
	return nil
}

// resolveID returns the first usable product identifier, honouring the legacy
// alias order: productId, id, slug, name. Only persisted records get this
// tolerance; live adds go through addID.
func (r Record) resolveID() string {
	for _, v := range []string{string(r.ProductID), string(r.ID), string(r.Slug), string(r.Name)} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// addID resolves the identifier for an add operation: productId, then id.
// The slug/name aliases never apply here; a product without a proper id is
// not addable.
func (r Record) addID() string {
	for _, v := range []string{string(r.ProductID), string(r.ID)} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// resolvePriceUSDCents derives the canonical price from whichever legacy field
// is present. Preference order: priceUsdCents, priceKobo (converted at the
// migration rate), price in major units.
func (r Record) resolvePriceUSDCents() int64 {
	if r.PriceUSDCents > 0 {
		return int64(math.Round(float64(r.PriceUSDCents)))
	}
	if r.PriceKobo > 0 {
		return int64(math.Round(float64(r.PriceKobo) / MigrationRateNGNPerUSD))
	}
	if r.Price > 0 {
		return int64(math.Round(float64(r.Price) * 100))
	}
	return 0
}

// resolveQuantity coerces quantity/qty to an integer of at least 1
func (r Record) resolveQuantity() int64 {
	q := float64(r.Quantity)
	if q == 0 {
		q = float64(r.Qty)
	}
	n := int64(q)
	if n < 1 {
		n = 1
	}
	return n
}

// Normalize converts a raw record to a canonical v2 item. The second return
// value is false when no product identifier could be resolved; such records
// are dropped by callers.
func (r Record) Normalize() (Item, bool) {
	id := r.resolveID()
	if id == "" {
		return Item{}, false
	}

	name := strings.TrimSpace(string(r.Name))
	if name == "" {
		name = DefaultItemName
	}

	price := r.resolvePriceUSDCents()
	if price < 0 {
		price = 0
	}

	return Item{
		ProductID:     id,
		Name:          name,
		PriceUSDCents: price,
		Quantity:      r.resolveQuantity(),
	}, true
}

// NormalizeAll normalizes a record slice, dropping records without a
// resolvable product id
func NormalizeAll(records []Record) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		if item, ok := r.Normalize(); ok {
			items = append(items, item)
		}
	}
	return items
}

package cart

// AddOutcome describes what an add operation did to the cart
type AddOutcome string

const (
	// AddOutcomeAdded means a new line item was appended
	AddOutcomeAdded AddOutcome = "added"
	// AddOutcomeMerged means the quantity of an existing line item was increased
	AddOutcomeMerged AddOutcome = "merged"
	// AddOutcomeSkipped means the input carried no resolvable product id and
	// the cart was left untouched
	AddOutcomeSkipped AddOutcome = "skipped"
)

// AddResult reports the effect of an add operation. The legacy storefront
// silently no-oped on bad input; the explicit outcome lets callers tell
// "nothing to do" apart from "succeeded".
type AddResult struct {
	Outcome AddOutcome
	Reason  string
	Item    Item
}

// Cart is an ordered sequence of line items. Insertion order is preserved but
// irrelevant to total computation.
type Cart []Item

// indexOf returns the position of the item with the given product id, or -1
func (c Cart) indexOf(productID string) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges the product into the cart. An existing product id has its
// quantity increased by qty; name and price are backfilled only when the
// stored values are empty or zero, never overwritten. Quantities below 1 are
// clamped to 1. The id comes from productId or id only; the slug/name
// fallbacks that rescue persisted records do not make a product addable.
func (c Cart) Add(product Record, qty int64) (Cart, AddResult) {
	id := product.addID()
	if id == "" {
		return c, AddResult{Outcome: AddOutcomeSkipped, Reason: "no resolvable product id"}
	}

	if qty < 1 {
		qty = 1
	}

	name := DefaultItemName
	if n, ok := product.Normalize(); ok && n.Name != "" {
		name = n.Name
	}
	price := product.resolvePriceUSDCents()

	if i := c.indexOf(id); i >= 0 {
		next := append(Cart(nil), c...)
		next[i].Quantity += qty
		if next[i].PriceUSDCents == 0 && price > 0 {
			next[i].PriceUSDCents = price
		}
		if next[i].Name == "" || next[i].Name == DefaultItemName {
			next[i].Name = name
		}
		return next, AddResult{Outcome: AddOutcomeMerged, Item: next[i]}
	}

	item := Item{
		ProductID:     id,
		Name:          name,
		PriceUSDCents: price,
		Quantity:      qty,
	}
	return append(append(Cart(nil), c...), item), AddResult{Outcome: AddOutcomeAdded, Item: item}
}

// UpdateQty replaces the quantity of the matching item, clamped to a minimum
// of 1. The second return value reports whether a matching item was found;
// unknown product ids leave the cart unchanged.
func (c Cart) UpdateQty(productID string, qty int64) (Cart, bool) {
	if qty < 1 {
		qty = 1
	}
	if c.indexOf(productID) < 0 {
		return c, false
	}
	next := append(Cart(nil), c...)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = qty
		}
	}
	return next, true
}

// Remove filters out the matching item. The second return value reports
// whether anything was removed; removing an absent id leaves the cart
// unchanged.
func (c Cart) Remove(productID string) (Cart, bool) {
	if c.indexOf(productID) < 0 {
		return c, false
	}
	next := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next, true
}

// TotalUSDCents returns the sum of price times quantity over all items
func (c Cart) TotalUSDCents() int64 {
	var total int64
	for _, item := range c {
		total += item.PriceUSDCents * item.Quantity
	}
	return total
}

// Count returns the sum of quantities over all items
func (c Cart) Count() int64 {
	var count int64
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

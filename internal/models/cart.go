package models

// Cart is a session-scoped multiset of product identifiers: repetition
// encodes quantity. It is a plain value owned by the session; all operations
// return the updated value so the cart needs no storage of its own.
type Cart []string

// Add appends one unit of the product.
func (c Cart) Add(productID string) Cart {
	return append(c, productID)
}

// Remove strips every unit of the product from the cart, not just one.
func (c Cart) Remove(productID string) Cart {
	out := make(Cart, 0, len(c))
	for _, id := range c {
		if id != productID {
			out = append(out, id)
		}
	}
	return out
}

// Quantities collapses the multiset into a product id -> quantity map.
func (c Cart) Quantities() map[string]int {
	qty := make(map[string]int, len(c))
	for _, id := range c {
		qty[id]++
	}
	return qty
}

// ProductIDs returns the distinct product ids, in first-seen order.
func (c Cart) ProductIDs() []string {
	seen := make(map[string]bool, len(c))
	ids := make([]string, 0, len(c))
	for _, id := range c {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// IsEmpty reports whether the cart holds no units at all.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

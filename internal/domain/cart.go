package domain

// CartItem is a single cart line. Quantity is always at least 1; a line
// whose quantity would drop to 0 is removed instead.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     Amount `json:"price"`
	Quantity  int    `json:"quantity"`
	GiftWrap  bool   `json:"gift_wrap,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Subtotal is price times quantity for this line.
func (i CartItem) Subtotal() Amount {
	return i.Price * Amount(i.Quantity)
}

// CartTotal sums the subtotals of all lines.
func CartTotal(items []CartItem) Amount {
	var total Amount
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// CartCount sums the quantities of all lines.
func CartCount(items []CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

package domain

// WishlistItem is a saved product reference. Items are unique by ID within
// a wishlist; toggling an absent item inserts it at the front, toggling a
// present one removes it.
type WishlistItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    *Amount `json:"price,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

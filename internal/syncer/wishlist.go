package syncer

import (
	"context"
	"log/slog"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
)

// Wishlist synchronizes the wishlist collection. Unlike the cart it belongs
// to signed-in users only: anonymous toggles are silently ignored so the UI
// can always render the heart button.
type Wishlist struct {
	*Syncer[domain.WishlistItem]
}

// NewWishlist creates a wishlist syncer over the given local store and
// optional remote backend.
func NewWishlist(local store.Store, remote Remote[domain.WishlistItem], logger *slog.Logger) *Wishlist {
	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID }, local, remote, logger)
	return &Wishlist{Syncer: s}
}

// Toggle adds the item when absent and removes it when present. For guest
// sessions this is a no-op.
func (w *Wishlist) Toggle(ctx context.Context, item domain.WishlistItem) error {
	if w.UserID() == "" {
		return nil
	}
	return w.Syncer.Toggle(ctx, item)
}

// Contains reports whether the product is on the wishlist.
func (w *Wishlist) Contains(id string) bool {
	for _, it := range w.Items() {
		if it.ID == id {
			return true
		}
	}
	return false
}

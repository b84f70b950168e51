package syncer

import (
	"context"
	"log/slog"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"
)

// Cart synchronizes the shopping cart collection. It works for both guest
// and signed-in sessions; guest contents migrate to the user scope on
// sign-in.
type Cart struct {
	*Syncer[domain.CartItem]
}

// NewCart creates a cart syncer over the given local store and optional
// remote backend.
func NewCart(local store.Store, remote Remote[domain.CartItem], logger *slog.Logger) *Cart {
	s := New("cart", func(it domain.CartItem) string { return it.ProductID }, local, remote, logger)
	return &Cart{Syncer: s}
}

// Add merges the item into the cart: an existing line for the same product
// gains its quantity, otherwise the item is prepended as a new line.
func (c *Cart) Add(ctx context.Context, item domain.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return c.Mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i, existing := range items {
			if existing.ProductID == item.ProductID {
				items[i].Quantity += item.Quantity
				return items
			}
		}
		return append([]domain.CartItem{item}, items...)
	})
}

// Increment raises the quantity of the line by one.
func (c *Cart) Increment(ctx context.Context, productID string) error {
	return c.adjust(ctx, productID, +1)
}

// Decrement lowers the quantity of the line by one, removing it when the
// quantity reaches zero.
func (c *Cart) Decrement(ctx context.Context, productID string) error {
	return c.adjust(ctx, productID, -1)
}

func (c *Cart) adjust(ctx context.Context, productID string, delta int) error {
	found := false
	err := c.Mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i, existing := range items {
			if existing.ProductID != productID {
				continue
			}
			found = true
			items[i].Quantity += delta
			if items[i].Quantity <= 0 {
				return append(items[:i], items[i+1:]...)
			}
			return items
		}
		return items
	})
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("cart item", productID)
	}
	return nil
}

// SetGiftWrap flips gift wrapping for the line.
func (c *Cart) SetGiftWrap(ctx context.Context, productID string, wrap bool) error {
	found := false
	err := c.Mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i, existing := range items {
			if existing.ProductID == productID {
				found = true
				items[i].GiftWrap = wrap
			}
		}
		return items
	})
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("cart item", productID)
	}
	return nil
}

// Total is the sum of line subtotals.
func (c *Cart) Total() domain.Amount {
	return domain.CartTotal(c.Items())
}

// Count is the total number of units across lines.
func (c *Cart) Count() int {
	return domain.CartCount(c.Items())
}

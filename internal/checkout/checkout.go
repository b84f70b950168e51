// Package checkout turns a cart into a WhatsApp order: the storefront has
// no payment processing, orders are finalized over chat with the boutique.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// Service composes WhatsApp order links for a configured business number.
type Service struct {
	phone     string
	storeName string
}

// NewService creates a checkout service. phone is the business number in
// international format without the leading plus, e.g. "919876543210".
func NewService(phone, storeName string) *Service {
	return &Service{phone: phone, storeName: storeName}
}

// Order is a composed WhatsApp checkout.
type Order struct {
	Message string        `json:"message"`
	Link    string        `json:"link"`
	Total   domain.Amount `json:"total"`
	Count   int           `json:"count"`
}

// Compose builds the order message and wa.me link for the given cart.
// An empty cart is rejected.
func (s *Service) Compose(items []domain.CartItem, customerName string) (*Order, error) {
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cannot check out an empty cart")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I would like to place an order:\n\n", s.storeName)
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s x%d", i+1, it.Name, it.Quantity)
		if it.GiftWrap {
			b.WriteString(" (gift wrapped)")
		}
		fmt.Fprintf(&b, " - Rs. %d\n", it.Subtotal())
	}
	fmt.Fprintf(&b, "\nTotal: Rs. %d", domain.CartTotal(items))
	if customerName != "" {
		fmt.Fprintf(&b, "\n\n- %s", customerName)
	}

	msg := b.String()
	return &Order{
		Message: msg,
		Link:    fmt.Sprintf("https://wa.me/%s?text=%s", s.phone, url.QueryEscape(msg)),
		Total:   domain.CartTotal(items),
		Count:   domain.CartCount(items),
	}, nil
}

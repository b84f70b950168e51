package syncer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
)

// Manager hands out loaded cart and wishlist syncers per user session,
// creating and caching them on first use. The guest session shares one
// instance.
type Manager struct {
	local      store.Store
	cartRemote Remote[domain.CartItem]
	wishRemote Remote[domain.WishlistItem]
	logger     *slog.Logger

	mu        sync.Mutex
	carts     map[string]*Cart
	wishlists map[string]*Wishlist
}

// NewManager creates a session manager. Either remote may be nil.
func NewManager(local store.Store, cartRemote Remote[domain.CartItem], wishRemote Remote[domain.WishlistItem], logger *slog.Logger) *Manager {
	return &Manager{
		local:      local,
		cartRemote: cartRemote,
		wishRemote: wishRemote,
		logger:     logger,
		carts:      make(map[string]*Cart),
		wishlists:  make(map[string]*Wishlist),
	}
}

// Cart returns the loaded cart syncer for userID ("" for guest).
func (m *Manager) Cart(ctx context.Context, userID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[userID]; ok {
		return c, nil
	}

	c := NewCart(m.local, m.cartRemote, m.logger)
	if err := c.Load(ctx, userID); err != nil {
		c.Close()
		return nil, err
	}
	m.carts[userID] = c
	return c, nil
}

// Wishlist returns the loaded wishlist syncer for userID ("" for guest).
func (m *Manager) Wishlist(ctx context.Context, userID string) (*Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.wishlists[userID]; ok {
		return w, nil
	}

	w := NewWishlist(m.local, m.wishRemote, m.logger)
	if err := w.Load(ctx, userID); err != nil {
		w.Close()
		return nil, err
	}
	m.wishlists[userID] = w
	return w, nil
}

// Close shuts down every cached syncer and waits for in-flight persists.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		c.Close()
	}
	for _, w := range m.wishlists {
		w.Close()
	}
	m.carts = make(map[string]*Cart)
	m.wishlists = make(map[string]*Wishlist)
}

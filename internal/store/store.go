// Package store defines the scoped key-value port the cart and wishlist
// synchronizers commit to. A collection lives under a scope key: the signed
// in user's ID, or the shared guest scope for anonymous visitors. Every
// write is published to subscribers of the same key so other consumers in
// the same browsing context converge without polling.
package store

import "context"

// Scope is the namespace a collection is stored under.
type Scope string

// GuestScope holds collections of anonymous visitors.
const GuestScope Scope = "guest"

// UserScope returns the scope for a signed-in user.
func UserScope(userID string) Scope {
	return Scope("user:" + userID)
}

// IsGuest reports whether the scope is the anonymous one.
func (s Scope) IsGuest() bool {
	return s == GuestScope
}

// Key addresses one collection within one scope, e.g. cart:user:42.
type Key struct {
	Collection string
	Scope      Scope
}

func (k Key) String() string {
	return k.Collection + ":" + string(k.Scope)
}

// Store is the local-store port. Get returns an error wrapping
// errors.ErrNotFound when the key holds nothing. Set must publish the new
// payload to subscribers before any other consumer can observe a stale
// read of the same key.
//
// Subscribers receive full snapshots, so delivery may coalesce
// intermediate writes; only the latest payload matters.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, data []byte) error
	Delete(ctx context.Context, key Key) error

	// Subscribe registers fn for every subsequent write to key and returns
	// a cancel function. fn is invoked on the store's dispatch goroutine,
	// never on the writer's.
	Subscribe(key Key, fn func(data []byte)) (func(), error)
}

// Package syncer keeps a client-scoped collection (cart, wishlist) in two
// places at once: a fast local store that is the source of truth for reads,
// and a durable remote backend written to in the background. Local writes
// commit before any call returns; remote persistence is fire-and-forget.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"
)

// Remote is the durable backend for one collection.
type Remote[T any] interface {
	Fetch(ctx context.Context, userID string) ([]T, error)
	Replace(ctx context.Context, userID string, items []T) error
}

const defaultPersistTimeout = 10 * time.Second

// Syncer reconciles one collection across the local store and the remote
// backend. All exported methods are safe for concurrent use.
type Syncer[T any] struct {
	collection string
	key        func(T) string
	local      store.Store
	remote     Remote[T]
	logger     *slog.Logger

	persistTimeout time.Duration

	mu          sync.Mutex
	scope       store.Scope
	userID      string
	items       []T
	unsubscribe func()

	wg sync.WaitGroup
}

// New creates a Syncer for collection. key extracts the identity used to
// match items; remote may be nil, in which case everything stays local.
func New[T any](collection string, key func(T) string, local store.Store, remote Remote[T], logger *slog.Logger) *Syncer[T] {
	return &Syncer[T]{
		collection:     collection,
		key:            key,
		local:          local,
		remote:         remote,
		logger:         logger.With(slog.String("collection", collection)),
		persistTimeout: defaultPersistTimeout,
		scope:          store.GuestScope,
	}
}

// Load switches the syncer to userID ("" for guest) and reconciles state.
//
// On sign-in, guest items are migrated once: if the user scope is empty
// they are copied in, and the guest scope is cleared either way so a later
// sign-out starts fresh. Then, if a remote backend is configured, its
// non-empty contents supersede whatever is local; an empty remote paired
// with non-empty local data triggers a repair push instead. Remote fetch
// failures are logged and swallowed so the local copy keeps working.
func (s *Syncer[T]) Load(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}

	s.userID = userID
	if userID == "" {
		s.scope = store.GuestScope
	} else {
		s.scope = store.UserScope(userID)
	}

	items, err := s.readLocked(ctx, s.scope)
	if err != nil {
		return err
	}

	if userID != "" {
		items, err = s.migrateGuestLocked(ctx, items)
		if err != nil {
			return err
		}
		items = s.reconcileRemoteLocked(ctx, items)
	}

	s.items = items

	scope := s.scope
	cancel, err := s.local.Subscribe(s.keyFor(scope), func(data []byte) {
		s.applySnapshot(scope, data)
	})
	if err != nil {
		return err
	}
	s.unsubscribe = cancel
	return nil
}

// migrateGuestLocked moves guest items into the user scope. User data wins
// when both exist; the guest scope is cleared in every case.
func (s *Syncer[T]) migrateGuestLocked(ctx context.Context, items []T) ([]T, error) {
	guestKey := s.keyFor(store.GuestScope)
	guestItems, err := s.readLocked(ctx, store.GuestScope)
	if err != nil {
		return nil, err
	}
	if len(guestItems) == 0 {
		return items, nil
	}

	if len(items) == 0 {
		items = guestItems
		if err := s.writeLocked(ctx, items); err != nil {
			return nil, err
		}
	}
	if err := s.local.Delete(ctx, guestKey); err != nil {
		s.logger.Warn("clear guest scope after migration", slog.Any("error", err))
	}
	return items, nil
}

// reconcileRemoteLocked applies the remote copy of the collection. Only a
// successful fetch changes anything: non-empty remote data replaces local,
// an empty remote gets repaired from non-empty local data.
func (s *Syncer[T]) reconcileRemoteLocked(ctx context.Context, items []T) []T {
	if s.remote == nil {
		return items
	}

	remoteItems, err := s.remote.Fetch(ctx, s.userID)
	if err != nil {
		s.logger.Warn("fetch remote collection", slog.Any("error", err))
		return items
	}

	if len(remoteItems) > 0 {
		if err := s.writeItems(ctx, s.scope, remoteItems); err != nil {
			s.logger.Warn("write remote collection locally", slog.Any("error", err))
			return items
		}
		return remoteItems
	}

	if len(items) > 0 {
		s.persistAsyncLocked(items)
	}
	return items
}

// Items returns a copy of the current collection.
func (s *Syncer[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// UserID returns the signed-in user, or "" for a guest session.
func (s *Syncer[T]) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Toggle removes the item when one with the same key is present, otherwise
// prepends it.
func (s *Syncer[T]) Toggle(ctx context.Context, item T) error {
	id := s.key(item)
	return s.Mutate(ctx, func(items []T) []T {
		for i, existing := range items {
			if s.key(existing) == id {
				return append(items[:i], items[i+1:]...)
			}
		}
		return append([]T{item}, items...)
	})
}

// Remove deletes the item with the given key, if present.
func (s *Syncer[T]) Remove(ctx context.Context, id string) error {
	return s.Mutate(ctx, func(items []T) []T {
		for i, existing := range items {
			if s.key(existing) == id {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// Clear empties the collection.
func (s *Syncer[T]) Clear(ctx context.Context) error {
	return s.Mutate(ctx, func([]T) []T {
		return nil
	})
}

// Mutate applies fn to a copy of the collection, commits the result locally
// and schedules a background remote persist. The local write completes
// before Mutate returns.
func (s *Syncer[T]) Mutate(ctx context.Context, fn func(items []T) []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := make([]T, len(s.items))
	copy(working, s.items)

	next := fn(working)
	if next == nil {
		next = []T{}
	}

	if err := s.writeLocked(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.persistAsyncLocked(next)
	return nil
}

// persistAsyncLocked pushes a snapshot to the remote backend without
// blocking the caller. Failures are logged; the local copy already holds
// the truth.
func (s *Syncer[T]) persistAsyncLocked(items []T) {
	if s.remote == nil || s.userID == "" {
		return
	}
	userID := s.userID
	snapshot := make([]T, len(items))
	copy(snapshot, items)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		defer cancel()
		if err := s.remote.Replace(ctx, userID, snapshot); err != nil {
			s.logger.Warn("persist remote collection",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}()
}

// Flush blocks until all in-flight remote persists finish.
func (s *Syncer[T]) Flush() {
	s.wg.Wait()
}

// Close stops the store subscription and waits for background persists.
func (s *Syncer[T]) Close() {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// applySnapshot handles snapshots published by the local store, keeping
// multiple syncer instances over the same store converged. Deliveries for a
// scope the syncer has since left are dropped.
func (s *Syncer[T]) applySnapshot(scope store.Scope, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scope != s.scope {
		return
	}
	if len(data) == 0 {
		s.items = nil
		return
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("decode store snapshot", slog.Any("error", err))
		return
	}
	s.items = items
}

func (s *Syncer[T]) keyFor(scope store.Scope) store.Key {
	return store.Key{Collection: s.collection, Scope: scope}
}

func (s *Syncer[T]) readLocked(ctx context.Context, scope store.Scope) ([]T, error) {
	data, err := s.local.Get(ctx, s.keyFor(scope))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("decode stored collection", slog.Any("error", err))
		return nil, nil
	}
	return items, nil
}

func (s *Syncer[T]) writeLocked(ctx context.Context, items []T) error {
	return s.writeItems(ctx, s.scope, items)
}

func (s *Syncer[T]) writeItems(ctx context.Context, scope store.Scope, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.local.Set(ctx, s.keyFor(scope), data)
}

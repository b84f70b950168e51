package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// fakeRemote is an in-memory Remote with switchable failure modes.
type fakeRemote[T any] struct {
	mu       sync.Mutex
	items    map[string][]T
	fetchErr error
	replaces int
}

func newFakeRemote[T any]() *fakeRemote[T] {
	return &fakeRemote[T]{items: make(map[string][]T)}
}

func (r *fakeRemote[T]) Fetch(_ context.Context, userID string) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.items[userID], nil
}

func (r *fakeRemote[T]) Replace(_ context.Context, userID string, items []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	r.items[userID] = items
	return nil
}

func (r *fakeRemote[T]) stored(userID string) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[userID]
}

func (r *fakeRemote[T]) replaceCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replaces
}

func wishlistItem(id string) domain.WishlistItem {
	return domain.WishlistItem{ID: id, Name: "Item " + id}
}

func TestSyncerToggleTwiceRestoresOriginal(t *testing.T) {
	ctx := context.Background()
	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		memory.New(), nil, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, ""))

	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))
	require.NoError(t, s.Toggle(ctx, wishlistItem("b")))
	before := s.Items()

	require.NoError(t, s.Toggle(ctx, wishlistItem("c")))
	require.NoError(t, s.Toggle(ctx, wishlistItem("c")))

	assert.Equal(t, before, s.Items())
}

func TestSyncerTogglePrepends(t *testing.T) {
	ctx := context.Background()
	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		memory.New(), nil, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, ""))

	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))
	require.NoError(t, s.Toggle(ctx, wishlistItem("b")))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestSyncerLocalWriteCommitsBeforeReturn(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		local, nil, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, ""))

	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))

	data, err := local.Get(ctx, store.Key{Collection: "wishlist", Scope: store.GuestScope})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a"`)
}

func TestSyncerGuestMigration(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	s := New("cart", func(it domain.CartItem) string { return it.ProductID },
		local, nil, testLogger())
	defer s.Close()

	require.NoError(t, s.Load(ctx, ""))
	require.NoError(t, s.Mutate(ctx, func(items []domain.CartItem) []domain.CartItem {
		return append(items, domain.CartItem{ProductID: "a", Quantity: 1}, domain.CartItem{ProductID: "b", Quantity: 2})
	}))

	require.NoError(t, s.Load(ctx, "u1"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ProductID)

	// The guest scope is cleared so a later sign-out starts empty.
	_, err := local.Get(ctx, store.Key{Collection: "cart", Scope: store.GuestScope})
	require.Error(t, err)

	require.NoError(t, s.Load(ctx, ""))
	assert.Empty(t, s.Items())
}

func TestSyncerGuestMigrationUserDataWins(t *testing.T) {
	ctx := context.Background()
	local := memory.New()

	userKey := store.Key{Collection: "cart", Scope: store.UserScope("u1")}
	require.NoError(t, local.Set(ctx, userKey, []byte(`[{"product_id":"kept","quantity":1}]`)))
	guestKey := store.Key{Collection: "cart", Scope: store.GuestScope}
	require.NoError(t, local.Set(ctx, guestKey, []byte(`[{"product_id":"dropped","quantity":1}]`)))

	s := New("cart", func(it domain.CartItem) string { return it.ProductID },
		local, nil, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, "u1"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].ProductID)

	_, err := local.Get(ctx, guestKey)
	require.Error(t, err)
}

func TestSyncerRemoteSupersedesLocal(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	userKey := store.Key{Collection: "wishlist", Scope: store.UserScope("u1")}
	require.NoError(t, local.Set(ctx, userKey, []byte(`[{"id":"stale"}]`)))

	remote := newFakeRemote[domain.WishlistItem]()
	remote.items["u1"] = []domain.WishlistItem{wishlistItem("fresh")}

	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		local, remote, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, "u1"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)

	data, err := local.Get(ctx, userKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fresh")
}

func TestSyncerEmptyRemoteRepairedFromLocal(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	userKey := store.Key{Collection: "wishlist", Scope: store.UserScope("u1")}
	require.NoError(t, local.Set(ctx, userKey, []byte(`[{"id":"a"},{"id":"b"},{"id":"c"}]`)))

	remote := newFakeRemote[domain.WishlistItem]()

	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		local, remote, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, "u1"))
	s.Flush()

	assert.Len(t, s.Items(), 3)
	assert.Len(t, remote.stored("u1"), 3)
}

func TestSyncerFetchFailureKeepsLocal(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	userKey := store.Key{Collection: "wishlist", Scope: store.UserScope("u1")}
	require.NoError(t, local.Set(ctx, userKey, []byte(`[{"id":"a"}]`)))

	remote := newFakeRemote[domain.WishlistItem]()
	remote.fetchErr = errors.New("backend down")

	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		local, remote, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, "u1"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	// No repair push happens on a failed fetch.
	assert.Zero(t, remote.replaceCalls())
}

func TestSyncerMutationPersistsRemotely(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote[domain.WishlistItem]()

	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		memory.New(), remote, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, "u1"))

	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))
	s.Flush()

	stored := remote.stored("u1")
	require.Len(t, stored, 1)
	assert.Equal(t, "a", stored[0].ID)
}

func TestSyncerGuestSessionNeverPersists(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote[domain.WishlistItem]()

	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		memory.New(), remote, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, ""))

	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))
	s.Flush()

	assert.Zero(t, remote.replaceCalls())
}

func TestSyncerInstancesConvergeViaSharedStore(t *testing.T) {
	ctx := context.Background()
	local := memory.New()

	a := New("cart", func(it domain.CartItem) string { return it.ProductID },
		local, nil, testLogger())
	defer a.Close()
	b := New("cart", func(it domain.CartItem) string { return it.ProductID },
		local, nil, testLogger())
	defer b.Close()

	require.NoError(t, a.Load(ctx, ""))
	require.NoError(t, b.Load(ctx, ""))

	require.NoError(t, a.Toggle(ctx, domain.CartItem{ProductID: "p1", Quantity: 1}))

	require.Eventually(t, func() bool {
		return len(b.Items()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "p1", b.Items()[0].ProductID)
}

func TestSyncerItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New("wishlist", func(it domain.WishlistItem) string { return it.ID },
		memory.New(), nil, testLogger())
	defer s.Close()
	require.NoError(t, s.Load(ctx, ""))
	require.NoError(t, s.Toggle(ctx, wishlistItem("a")))

	items := s.Items()
	items[0].ID = "mutated"

	assert.Equal(t, "a", s.Items()[0].ID)
}

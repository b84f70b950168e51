// Package memory provides the in-process store.Store used by a single
// browsing context: the Go analogue of window.localStorage plus its
// storage events.
package memory

import (
	"context"
	"sync"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
)

type subscriber struct {
	ch   chan []byte
	done chan struct{}
}

// Store is an in-memory scoped store with snapshot fan-out.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	subs   map[string]map[int]*subscriber
	nextID int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
		subs: make(map[string]map[int]*subscriber),
	}
}

// Get returns the payload stored under key.
func (s *Store) Get(_ context.Context, key store.Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[key.String()]
	if !ok {
		return nil, apperrors.NotFound("collection", key.String())
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of data and publishes it to subscribers of key.
func (s *Store) Set(_ context.Context, key store.Key, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.data[key.String()] = cp
	s.publishLocked(key.String(), cp)
	s.mu.Unlock()
	return nil
}

// Delete removes the payload under key and publishes an empty snapshot.
func (s *Store) Delete(_ context.Context, key store.Key) error {
	s.mu.Lock()
	delete(s.data, key.String())
	s.publishLocked(key.String(), nil)
	s.mu.Unlock()
	return nil
}

// Subscribe registers fn for writes to key. Each subscriber has its own
// dispatch goroutine; a slow subscriber sees the latest snapshot, not every
// intermediate one.
func (s *Store) Subscribe(key store.Key, fn func(data []byte)) (func(), error) {
	sub := &subscriber{
		ch:   make(chan []byte, 1),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	k := key.String()
	if s.subs[k] == nil {
		s.subs[k] = make(map[int]*subscriber)
	}
	s.subs[k][id] = sub
	s.mu.Unlock()

	go func() {
		for {
			select {
			case data := <-sub.ch:
				fn(data)
			case <-sub.done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[k], id)
			s.mu.Unlock()
			close(sub.done)
		})
	}
	return cancel, nil
}

// publishLocked pushes the snapshot to every subscriber of k, replacing any
// undelivered older snapshot.
func (s *Store) publishLocked(k string, data []byte) {
	for _, sub := range s.subs[k] {
		select {
		case sub.ch <- data:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- data:
			default:
			}
		}
	}
}

// Package redis provides the redis-backed store.Store. Collections are
// JSON blobs under <collection>:<scope> keys with a TTL; writes are relayed
// over Pub/Sub so consumers in other processes observe them, covering the
// cross-context case the in-memory store cannot.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store"
)

const channelPrefix = "storefront:"

// Store is a redis-backed scoped store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a store keeping collections alive for ttl.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Get returns the payload stored under key.
func (s *Store) Get(ctx context.Context, key store.Key) ([]byte, error) {
	data, err := s.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("collection", key.String())
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores data under key and publishes it to the key's channel.
func (s *Store) Set(ctx context.Context, key store.Key, data []byte) error {
	if err := s.client.Set(ctx, key.String(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if err := s.client.Publish(ctx, channelPrefix+key.String(), data).Err(); err != nil {
		// Persisted but not announced; subscribers converge on next write.
		s.logger.WarnContext(ctx, "redis publish failed",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Delete removes the payload under key and announces an empty snapshot.
func (s *Store) Delete(ctx context.Context, key store.Key) error {
	if err := s.client.Del(ctx, key.String()).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	if err := s.client.Publish(ctx, channelPrefix+key.String(), []byte{}).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis publish failed",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Subscribe relays every write to key via redis Pub/Sub. Delivery runs on
// the subscription's receive goroutine.
func (s *Store) Subscribe(key store.Key, fn func(data []byte)) (func(), error) {
	pubsub := s.client.Subscribe(context.Background(), channelPrefix+key.String())

	// Confirm the subscription before returning so callers do not miss
	// writes that race with setup.
	if _, err := pubsub.Receive(context.Background()); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", key, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			fn([]byte(msg.Payload))
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

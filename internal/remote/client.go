// Package remote talks to the durable collection API: one endpoint per
// collection, keyed by user ID. Responses may be a bare JSON array or an
// {"items": [...]} envelope depending on backend version; both are
// accepted.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/httpclient"
)

// Doer is what Collection needs from an HTTP client; both httpclient.Client
// and httpclient.BreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Collection is a typed client for one remote collection.
type Collection[T any] struct {
	baseURL string
	name    string
	client  Doer
}

// NewCollection creates a client for <baseURL>/<name>/<userID>.
func NewCollection[T any](baseURL, name string, client Doer) *Collection[T] {
	return &Collection[T]{baseURL: baseURL, name: name, client: client}
}

type envelope[T any] struct {
	Items []T `json:"items"`
}

// Fetch returns the user's collection. A 404 means the backend has never
// seen this user and reads as an empty collection.
func (c *Collection[T]) Fetch(ctx context.Context, userID string) ([]T, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.name, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s fetch request: %w", c.name, err)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []T{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: status %d: %s", c.name, resp.StatusCode, body)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.name, err)
	}

	return decodeItems[T](raw)
}

// Replace overwrites the user's collection with items.
func (c *Collection[T]) Replace(ctx context.Context, userID string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(envelope[T]{Items: items})
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", c.name, err)
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.name, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s replace request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("replace %s: status %d: %s", c.name, resp.StatusCode, body)
	}
	return nil
}

// decodeItems accepts both payload shapes the backend has shipped: a bare
// array and the {"items": [...]} envelope.
func decodeItems[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode array payload: %w", err)
		}
		return items, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope payload: %w", err)
	}
	if env.Items == nil {
		return []T{}, nil
	}
	return env.Items, nil
}

// NewDefaultDoer builds the protected HTTP client used for collection
// traffic: retrying transport wrapped in a circuit breaker.
func NewDefaultDoer(name string, logger *slog.Logger) Doer {
	return httpclient.NewBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultBreakerConfig(name),
		logger,
	)
}

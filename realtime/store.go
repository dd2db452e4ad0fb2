// Package realtime wraps the external last-write-wins key-value service that
// carries live driver positions. The core only writes records and discloses
// subscription handles; tracking clients read the store directly.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// DriverLocation is the record held per order. Only the latest sample is
// kept; concurrent publishes for the same order simply overwrite.
type DriverLocation struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	DriverID uint    `json:"driver_id"`
}

// OrderPath returns the deterministic key of one order's location stream.
func OrderPath(orderID uint) string {
	return fmt.Sprintf("/order_locations/%d", orderID)
}

// Store is the client interface handlers receive at construction.
type Store interface {
	// Set overwrites the record at path.
	Set(ctx context.Context, path string, loc DriverLocation) error
	// URL is the address clients subscribe to, disclosed in tracking handles.
	URL() string
}

// RedisStore backs Store with a Redis instance.
type RedisStore struct {
	client *redis.Client
	url    string
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		url:    "redis://" + addr,
	}
}

func (s *RedisStore) Set(ctx context.Context, path string, loc DriverLocation) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, path, payload, 0).Err(); err != nil {
		return fmt.Errorf("realtime set %s: %w", path, err)
	}
	return nil
}

func (s *RedisStore) URL() string {
	return s.url
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

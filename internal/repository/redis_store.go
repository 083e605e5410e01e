package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/quotepad/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the snapshot in a Redis string
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, opts *redis.Options, key string) (*RedisStore, error) {
	if key == "" {
		key = DefaultKey
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, key: key}, nil
}

// Load reads the snapshot
func (s *RedisStore) Load(ctx context.Context) (*domain.Invoice, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decode(s.key, data)
}

// Save replaces the snapshot
func (s *RedisStore) Save(ctx context.Context, inv *domain.Invoice) error {
	data, err := encode(inv)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

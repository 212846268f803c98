package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Keyer maps board names to keys; nil means [DefaultKeyer].
	Keyer Keyer
}

// RedisStore keeps each board as a JSON string value.
type RedisStore struct {
	client *redis.Client
	keyer  Keyer
	retry  Backoff
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return newRedisStore(client, cfg.Keyer), nil
}

func newRedisStore(client *redis.Client, keyer Keyer) *RedisStore {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &RedisStore{client: client, keyer: keyer, retry: newBackoff(redisTransient)}
}

func (s *RedisStore) Get(ctx context.Context, name string) (*Record, error) {
	var data []byte
	err := s.retry.Do(ctx, func() error {
		b, err := s.client.Get(ctx, s.keyer.BoardKey(name)).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	if data == nil {
		return nil, nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse board %s: %w", name, err)
	}
	return &rec, nil
}

func (s *RedisStore) Set(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	err = s.retry.Do(ctx, func() error {
		return s.client.Set(ctx, s.keyer.BoardKey(rec.Name), data, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", rec.Name, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	err := s.retry.Do(ctx, func() error {
		return s.client.Del(ctx, s.keyer.BoardKey(name)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	prefix := keyPrefix(s.keyer)
	var names []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisTransient reports connection-level failures.
func redisTransient(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) || errors.Is(err, io.EOF)
}

var _ Store = (*RedisStore)(nil)

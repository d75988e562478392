package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"leadengine/pkg/platform/sentinel"
)

var (
	opDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leadengine_visitor_store_redis_duration_ms",
		Help:    "Latency of visitor storage operations against Redis in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"op"})
)

const keyPrefix = "leadengine:"

// Store is a Redis-backed visitor storage adapter. It is the production choice
// when several engine instances serve the same visitors.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires visitor keys after ttl of inactivity. Zero keeps them forever,
// matching localStorage, which never expires on its own.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New constructs a Redis visitor store. The client lifecycle is managed by the caller.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	defer observe("get", time.Now())
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return v, nil
}

// Set overwrites the value. Uses SET with expiry when a TTL is configured.
func (s *Store) Set(ctx context.Context, key, value string) error {
	defer observe("set", time.Now())
	if err := s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	defer observe("delete", time.Now())
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return nil
}

func observe(op string, start time.Time) {
	opDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

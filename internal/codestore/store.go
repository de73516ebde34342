package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// codeKeyPrefix namespaces verification records; other consumers of the same
// Redis instance must use a disjoint prefix.
const codeKeyPrefix = "code_"

var (
	// ErrNotFound means no live record exists for the recipient.
	ErrNotFound = errors.New("verification code not found")
	// ErrUnavailable means the store could not be reached or answered with a
	// transport/protocol error.
	ErrUnavailable = errors.New("code store unavailable")
)

// Store wraps the Redis client holding verification records. All methods are
// safe for concurrent use; the client is process-scoped and shared across
// invocations.
type Store struct {
	rdb *redis.Client
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Open connects to Redis and verifies the connection before returning.
func Open(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Store{rdb: rdb}, nil
}

// New wraps an existing client. Used by tests and by callers that manage the
// client lifecycle themselves.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func key(email string) string {
	return codeKeyPrefix + email
}

// Fetch returns the live code for email, ErrNotFound if none exists, or
// ErrUnavailable on any transport error.
func (s *Store) Fetch(ctx context.Context, email string) (string, error) {
	code, err := s.rdb.Get(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return code, nil
}

// Exists reports whether a live record exists for email without reading it.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Save writes the code for email with the given TTL. The write and the expiry
// are a single SET, so a reported success guarantees the record expires; on
// ErrUnavailable the caller must not assume the record was stored.
func (s *Store) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCredentialKey is the fixed storage slot holding the raw token.
const DefaultCredentialKey = "console:auth:token"

// CredentialStorage is the durable single-slot store for the raw bearer
// token. Load returns "" with a nil error when no credential is persisted.
type CredentialStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// RedisStorage persists the credential in a single redis key.
type RedisStorage struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// RedisOption configures RedisStorage.
type RedisOption func(*RedisStorage)

// WithKey overrides the storage key.
func WithKey(key string) RedisOption {
	return func(s *RedisStorage) { s.key = key }
}

// WithTTL sets an expiry on the persisted credential. Zero keeps it until
// logout.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStorage) { s.ttl = ttl }
}

// NewRedisStorage creates a redis-backed credential slot.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisOption) *RedisStorage {
	s := &RedisStorage{client: client, key: DefaultCredentialKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStorage) Save(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, s.ttl).Err()
}

func (s *RedisStorage) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// MemoryStorage is an in-process credential slot used in tests and
// single-binary setups without redis.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStorage creates an empty in-memory slot.
func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (s *MemoryStorage) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStorage) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

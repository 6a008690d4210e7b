package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements Store on Redis. It is meant for kiosk fleets where
// several terminals share one cart/wishlist state; change notifications
// travel over a pub/sub channel so every terminal sees writes made by the
// others. Messages carry the writer's instance id, and a subscriber drops its
// own, preserving the no-self-notification contract.
type RedisStore struct {
	client     *redis.Client
	keyPrefix  string
	instanceID string
	logger     *zap.Logger

	mu        sync.Mutex
	watchers  []WatchFunc
	pubsub    *redis.PubSub
	closeOnce sync.Once
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisStore creates a Redis-backed store and verifies the connection
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.KeyPrefix, logger), nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "storefront:state:"
	}
	s := &RedisStore{
		client:     client,
		keyPrefix:  keyPrefix,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
	s.pubsub = client.Subscribe(context.Background(), s.channel())
	go s.subscribeLoop()
	return s
}

// Get decodes the value under key into out
func (s *RedisStore) Get(key string, out any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, out)
}

// GetRaw returns the stored bytes under key
func (s *RedisStore) GetRaw(key string) ([]byte, bool) {
	raw, err := s.client.Get(context.Background(), s.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Set stores the JSON encoding of value under key
func (s *RedisStore) Set(key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.SetRaw(key, raw)
}

// SetRaw stores raw bytes under key and announces the change
func (s *RedisStore) SetRaw(key string, raw []byte) error {
	ctx := context.Background()
	if err := s.client.Set(ctx, s.keyPrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	s.announce(ctx, key)
	return nil
}

// Remove deletes the key and announces the change
func (s *RedisStore) Remove(key string) error {
	ctx := context.Background()
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	s.announce(ctx, key)
	return nil
}

// Keys lists every stored key under this store's prefix
func (s *RedisStore) Keys() []string {
	raw, err := s.client.Keys(context.Background(), s.keyPrefix+"*").Result()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, s.keyPrefix))
	}
	return keys
}

// Watch registers fn for changes made by other instances
func (s *RedisStore) Watch(fn WatchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Close stops the subscriber and closes the client
func (s *RedisStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		_ = s.pubsub.Close()
		err = s.client.Close()
	})
	return err
}

func (s *RedisStore) channel() string {
	return s.keyPrefix + "changes"
}

// announce publishes "<instanceID>|<key>" on the change channel
func (s *RedisStore) announce(ctx context.Context, key string) {
	if err := s.client.Publish(ctx, s.channel(), s.instanceID+"|"+key).Err(); err != nil {
		s.logger.Warn("failed to announce state change", zap.String("key", key), zap.Error(err))
	}
}

// subscribeLoop dispatches change messages from other instances
func (s *RedisStore) subscribeLoop() {
	for msg := range s.pubsub.Channel() {
		origin, key, ok := strings.Cut(msg.Payload, "|")
		if !ok || origin == s.instanceID {
			continue
		}
		s.mu.Lock()
		watchers := append([]WatchFunc(nil), s.watchers...)
		s.mu.Unlock()
		for _, fn := range watchers {
			fn(ChangeEvent{Key: key})
		}
	}
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

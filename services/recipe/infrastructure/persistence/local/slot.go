package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Slot is a single named value holding the whole serialised collection.
type Slot interface {
	// Load returns the stored bytes; present is false when the slot is empty.
	Load(ctx context.Context) (data []byte, present bool, err error)
	Store(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
}

// RedisSlot keeps the collection under one Redis key with no expiry.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot returns a slot stored at key.
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, true, nil
}

func (s *RedisSlot) Store(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSlot) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// MemorySlot is a process-local slot for development and tests.
type MemorySlot struct {
	mu      sync.Mutex
	data    []byte
	present bool
}

// NewMemorySlot returns an empty slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith returns a slot pre-filled with raw.
func NewMemorySlotWith(raw string) *MemorySlot {
	return &MemorySlot{data: []byte(raw), present: true}
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, true, nil
}

func (s *MemorySlot) Store(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data[:0:0], data...)
	s.present = true
	return nil
}

func (s *MemorySlot) Ping(context.Context) error { return nil }

// Raw returns the stored bytes as a string.
func (s *MemorySlot) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data)
}

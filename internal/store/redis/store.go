// Package redis implements the batch cache on Redis. The whole batch lives
// in a single hash key written with one HSET, so readers never see a torn
// batch.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"ticket-analyzer/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const batchKey = "tickets:batch:latest"

// Config configures the Redis store.
type Config struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// Store is a Redis-backed batch cache.
type Store struct {
	client *goredis.Client
}

// Client returns the underlying Redis client for health checks.
func (s *Store) Client() *goredis.Client { return s.client }

// New creates a Store and pings the server.
func New(cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Store{client: client}, nil
}

// Save replaces the latest batch. uploaded_at and data land in one HSET call.
func (s *Store) Save(ctx context.Context, batch model.TicketBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	err = s.client.HSet(ctx, batchKey,
		"uploaded_at", strconv.FormatInt(batch.UploadedAt.UnixNano(), 10),
		"data", string(data),
	).Err()
	if err != nil {
		return fmt.Errorf("redis save batch: %w", err)
	}
	return nil
}

// LoadLatest returns the cached batch, or (nil, nil) when the key is absent.
func (s *Store) LoadLatest(ctx context.Context) (*model.TicketBatch, error) {
	fields, err := s.client.HGetAll(ctx, batchKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read latest batch: %w", err)
	}
	data, ok := fields["data"]
	if !ok {
		return nil, nil
	}

	var batch model.TicketBatch
	if err := json.Unmarshal([]byte(data), &batch); err != nil {
		return nil, fmt.Errorf("unmarshal batch: %w", err)
	}
	return &batch, nil
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-arith/internal/engine"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const resultKeyPrefix = "arith:result:"

// ErrResultNotFound is returned when no result is stored for a request
var ErrResultNotFound = errors.New("result not found")

// ResultStore persists evaluation results as JSON in Redis
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultStore creates a new result store. A zero ttl keeps results
// until they are deleted.
func NewResultStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultStore {
	return &ResultStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func resultKey(requestID string) string {
	return resultKeyPrefix + requestID
}

// Save stores a result under its request ID
func (s *ResultStore) Save(ctx context.Context, result *engine.Result) error {
	if result.RequestID == "" {
		return fmt.Errorf("result has no request id")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := s.client.Set(ctx, resultKey(result.RequestID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// Load loads the result of a request
func (s *ResultStore) Load(ctx context.Context, requestID string) (*engine.Result, error) {
	data, err := s.client.Get(ctx, resultKey(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrResultNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var result engine.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Delete deletes a stored result
func (s *ResultStore) Delete(ctx context.Context, requestID string) error {
	if err := s.client.Del(ctx, resultKey(requestID)).Err(); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

// Exists checks if a result is stored for a request
func (s *ResultStore) Exists(ctx context.Context, requestID string) (bool, error) {
	n, err := s.client.Exists(ctx, resultKey(requestID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}

// List returns the request IDs that have stored results
func (s *ResultStore) List(ctx context.Context) ([]string, error) {
	var ids []string

	iter := s.client.Scan(ctx, 0, resultKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if len(key) > len(resultKeyPrefix) {
			ids = append(ids, key[len(resultKeyPrefix):])
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return ids, nil
}

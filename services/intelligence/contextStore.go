// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"tidyhive/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "ai:ctx:"

// ContextStore keeps per-customer conversation state.
type ContextStore interface {
	Get(ctx context.Context, customerID string) (*models.ChatContext, error)
	Set(ctx context.Context, customerID string, chatCtx *models.ChatContext) error
	Clear(ctx context.Context, customerID string) error
}

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, customerID string) (*models.ChatContext, error) {
	key := chatContextPrefix + customerID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ChatContext{CustomerID: customerID}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, customerID string, chatCtx *models.ChatContext) error {
	key := chatContextPrefix + customerID
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, customerID string) error {
	key := chatContextPrefix + customerID
	return s.client.Del(ctx, key).Err()
}

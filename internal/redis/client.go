package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

const (
	chatPrefix       = "chat:"
	cachePrefix      = "cache:"
	catalogPromptKey = "catalog_prompt"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(ctx context.Context, redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Anonymous chat history

func (c *Client) GetChatHistory(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := c.getJSON(ctx, chatKey(sessionID), &history)
	if errors.Is(err, ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

// SetChatHistory stores the history and restarts its TTL, so idle sessions
// expire on their own.
func (c *Client) SetChatHistory(ctx context.Context, sessionID string, history []models.ChatMessage, ttl time.Duration) error {
	return c.setJSON(ctx, chatKey(sessionID), history, ttl)
}

func (c *Client) DeleteChatHistory(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, chatKey(sessionID)).Err()
}

// Catalog prompt cache

func (c *Client) GetCatalogPrompt(ctx context.Context) (string, error) {
	var prompt string
	if err := c.getJSON(ctx, cachePrefix+catalogPromptKey, &prompt); err != nil {
		return "", err
	}
	return prompt, nil
}

func (c *Client) SetCatalogPrompt(ctx context.Context, prompt string, ttl time.Duration) error {
	return c.setJSON(ctx, cachePrefix+catalogPromptKey, prompt, ttl)
}

func (c *Client) InvalidateCatalogPrompt(ctx context.Context) error {
	return c.rdb.Del(ctx, cachePrefix+catalogPromptKey).Err()
}

func (c *Client) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) getJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func chatKey(sessionID string) string {
	return chatPrefix + sessionID
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

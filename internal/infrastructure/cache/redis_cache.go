package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	configKeyPrefix  = "simple-gifting:config:"
	webhookKeyPrefix = "simple-gifting:webhook:"
	oauthKeyPrefix   = "simple-gifting:oauth:"
)

// NewRedisClient connects to the Redis instance behind url, accepting either a
// redis:// URL or a bare host:port
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return redis.NewClient(&redis.Options{Addr: url})
	}
	return redis.NewClient(opt)
}

// ShopConfigurationCache caches shop configurations as JSON
type ShopConfigurationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewShopConfigurationCache creates a new configuration cache
func NewShopConfigurationCache(client *redis.Client, ttl time.Duration) ports.ShopConfigurationCache {
	return &ShopConfigurationCache{client: client, ttl: ttl}
}

// Get returns the cached configuration, or nil on a miss
func (c *ShopConfigurationCache) Get(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	raw, err := c.client.Get(ctx, configKeyPrefix+shop).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached configuration: %w", err)
	}

	var config domain.ShopConfiguration
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to decode cached configuration: %w", err)
	}
	return &config, nil
}

// Set stores a configuration until the TTL expires
func (c *ShopConfigurationCache) Set(ctx context.Context, config *domain.ShopConfiguration) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := c.client.Set(ctx, configKeyPrefix+config.Shop, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache configuration: %w", err)
	}
	return nil
}

// Invalidate drops the cached configuration of a shop
func (c *ShopConfigurationCache) Invalidate(ctx context.Context, shop string) error {
	if err := c.client.Del(ctx, configKeyPrefix+shop).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached configuration: %w", err)
	}
	return nil
}

// WebhookDeduplicator remembers webhook ids for a limited time
type WebhookDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWebhookDeduplicator creates a new deduplicator
func NewWebhookDeduplicator(client *redis.Client, ttl time.Duration) ports.WebhookDeduplicator {
	return &WebhookDeduplicator{client: client, ttl: ttl}
}

// FirstDelivery records webhookID and reports whether it is new
func (d *WebhookDeduplicator) FirstDelivery(ctx context.Context, webhookID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, webhookKeyPrefix+webhookID, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record webhook id: %w", err)
	}
	return ok, nil
}

// Forget releases webhookID
func (d *WebhookDeduplicator) Forget(ctx context.Context, webhookID string) error {
	if err := d.client.Del(ctx, webhookKeyPrefix+webhookID).Err(); err != nil {
		return fmt.Errorf("failed to release webhook id: %w", err)
	}
	return nil
}

// OAuthStateStore keeps pending install states until they are used or expire
type OAuthStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOAuthStateStore creates a new state store
func NewOAuthStateStore(client *redis.Client, ttl time.Duration) ports.OAuthStateStore {
	return &OAuthStateStore{client: client, ttl: ttl}
}

// Save records state for shop
func (s *OAuthStateStore) Save(ctx context.Context, state, shop string) error {
	if err := s.client.Set(ctx, oauthKeyPrefix+state, shop, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Consume returns the shop of state and deletes it in one step
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", nil
	}
	shop, err := s.client.GetDel(ctx, oauthKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return shop, nil
}

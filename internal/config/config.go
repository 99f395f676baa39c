package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port     string
	LogLevel string
	AppURL   string
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Shopify  ShopifyConfig

	// AllowedOrigins may call the admin API from a browser
	AllowedOrigins []string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URL             string
	ConfigCacheTTL  time.Duration
	WebhookDedupTTL time.Duration
	OAuthStateTTL   time.Duration
}

type ShopifyConfig struct {
	APIKey     string
	APISecret  string
	APIVersion string
	MaxRetries int
	Scopes     []string
	// AdminAccessToken is used for shops without a stored offline session
	AdminAccessToken string
}

// Load reads the configuration. Values come from the process environment,
// which main fills from .env beforehand.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_URL", "http://localhost:8080")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "simple_gifting")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("SHOPIFY_API_VERSION", "2025-01")
	v.SetDefault("SHOPIFY_MAX_RETRIES", 3)
	v.SetDefault("CONFIG_CACHE_TTL", "5m")
	v.SetDefault("WEBHOOK_DEDUP_TTL", "24h")
	v.SetDefault("OAUTH_STATE_TTL", "10m")
	v.SetDefault("SHOPIFY_SCOPES", "read_products,write_products,read_themes,write_themes")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "https://admin.shopify.com")
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("PORT"),
		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		AppURL:   strings.TrimRight(v.GetString("APP_URL"), "/"),
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
		},
		Redis: RedisConfig{
			URL:             v.GetString("REDIS_URL"),
			ConfigCacheTTL:  v.GetDuration("CONFIG_CACHE_TTL"),
			WebhookDedupTTL: v.GetDuration("WEBHOOK_DEDUP_TTL"),
			OAuthStateTTL:   v.GetDuration("OAUTH_STATE_TTL"),
		},
		Shopify: ShopifyConfig{
			APIKey:           strings.TrimSpace(v.GetString("SHOPIFY_API_KEY")),
			APISecret:        strings.TrimSpace(v.GetString("SHOPIFY_API_SECRET")),
			APIVersion:       v.GetString("SHOPIFY_API_VERSION"),
			MaxRetries:       v.GetInt("SHOPIFY_MAX_RETRIES"),
			Scopes:           splitList(v.GetString("SHOPIFY_SCOPES")),
			AdminAccessToken: strings.TrimSpace(v.GetString("SHOPIFY_ADMIN_API_ACCESS_TOKEN")),
		},
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Shopify.APIKey == "" {
		return nil, fmt.Errorf("SHOPIFY_API_KEY is required")
	}
	if cfg.Shopify.APISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_SECRET is required")
	}
	if cfg.Redis.ConfigCacheTTL <= 0 {
		return nil, fmt.Errorf("CONFIG_CACHE_TTL must be a positive duration")
	}
	if cfg.Redis.WebhookDedupTTL <= 0 {
		return nil, fmt.Errorf("WEBHOOK_DEDUP_TTL must be a positive duration")
	}
	if cfg.Redis.OAuthStateTTL <= 0 {
		return nil, fmt.Errorf("OAUTH_STATE_TTL must be a positive duration")
	}

	return cfg, nil
}

// splitList splits a comma separated value, dropping empty entries
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

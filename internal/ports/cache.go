package ports

import (
	"context"

	"simple-gifting/internal/domain"
)

// ShopConfigurationCache is a read-through cache in front of the configuration repository.
// Get returns nil, nil on a miss.
type ShopConfigurationCache interface {
	Get(ctx context.Context, shop string) (*domain.ShopConfiguration, error)
	Set(ctx context.Context, config *domain.ShopConfiguration) error
	Invalidate(ctx context.Context, shop string) error
}

// WebhookDeduplicator remembers delivered webhook ids
type WebhookDeduplicator interface {
	// FirstDelivery records id and reports whether it had not been seen before
	FirstDelivery(ctx context.Context, webhookID string) (bool, error)
	// Forget releases id so a retried delivery is processed again
	Forget(ctx context.Context, webhookID string) error
}

// OAuthStateStore holds the one-time state values of pending installs
type OAuthStateStore interface {
	Save(ctx context.Context, state, shop string) error
	// Consume returns the shop state was issued for and removes it. An unknown
	// or expired state yields "", nil.
	Consume(ctx context.Context, state string) (string, error)
}

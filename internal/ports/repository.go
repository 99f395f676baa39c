package ports

import (
	"context"

	"simple-gifting/internal/domain"
)

// ShopConfigurationRepository persists one configuration per shop domain.
// GetByShop returns nil, nil when the shop has no configuration.
type ShopConfigurationRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.ShopConfiguration, error)
	// Create returns domain.ErrConfigurationExists when the shop already has one
	Create(ctx context.Context, config *domain.ShopConfiguration) error
	Update(ctx context.Context, shop string, patch *domain.ShopConfigurationPatch) (*domain.ShopConfiguration, error)
	Delete(ctx context.Context, shop string) error
}

// SessionRepository stores the offline sessions written by the OAuth install
type SessionRepository interface {
	GetOfflineSession(ctx context.Context, shop string) (*domain.Session, error)
	// SaveSession inserts or replaces the session with the same id
	SaveSession(ctx context.Context, session *domain.Session) error
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// WebhookEventRepository logs webhook deliveries
type WebhookEventRepository interface {
	LogWebhook(ctx context.Context, event *domain.WebhookEvent) error
}

// ThemeOperationRepository stores the audit trail of theme mutations
type ThemeOperationRepository interface {
	Save(ctx context.Context, op *domain.ThemeOperation) error
	ListByShop(ctx context.Context, shop string, limit int64) ([]*domain.ThemeOperation, error)
}

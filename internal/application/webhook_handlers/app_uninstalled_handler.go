package webhook_handlers

import (
	"context"

	"simple-gifting/internal/application"
	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler handles app uninstalled webhook events
type AppUninstalledHandler struct {
	logger   zerolog.Logger
	sessions ports.SessionRepository
	configs  *application.ShopConfigurationService
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler
func NewAppUninstalledHandler(
	logger zerolog.Logger,
	sessions ports.SessionRepository,
	configs *application.ShopConfigurationService,
) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger:   logger,
		sessions: sessions,
		configs:  configs,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle drops the sessions of the shop and its cached configuration.
// The stored configuration is kept until shop/redact.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shop := event.Shop

	if h.sessions != nil {
		deleted, err := h.sessions.DeleteByShop(ctx, shop)
		if err != nil {
			h.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to delete sessions")
		} else {
			h.logger.Info().Str("shop", shop).Int64("sessions", deleted).Msg("Deleted sessions")
		}
	}

	h.configs.Evict(ctx, shop)

	h.logger.Info().Str("shop", shop).Msg("App uninstalled - cleanup completed")
	return nil
}

package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"simple-gifting/internal/application"
	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

// ComplianceHandler handles the mandatory privacy webhooks
type ComplianceHandler struct {
	logger  zerolog.Logger
	configs *application.ShopConfigurationService
}

// NewComplianceHandler creates a new compliance webhook handler
func NewComplianceHandler(logger zerolog.Logger, configs *application.ShopConfigurationService) *ComplianceHandler {
	return &ComplianceHandler{
		logger:  logger,
		configs: configs,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ComplianceHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCustomersDataRequest ||
		topic == domain.TopicCustomersRedact ||
		topic == domain.TopicShopRedact
}

// Handle processes a compliance webhook event. No customer data is stored,
// so customer requests are only logged; shop/redact deletes the shop configuration.
func (h *ComplianceHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	switch event.Topic {
	case domain.TopicShopRedact:
		var payload domain.ShopRedactPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to parse shop redact payload: %w", err)
		}
		shop := payload.ShopDomain
		if shop == "" {
			shop = event.Shop
		}
		if err := h.configs.Delete(ctx, shop); err != nil {
			return err
		}
		h.logger.Info().Str("shop", shop).Int64("shopId", payload.ShopID).Msg("Shop data redacted")

	default:
		var payload domain.CustomerPrivacyPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("failed to parse customer privacy payload: %w", err)
		}
		h.logger.Info().
			Str("topic", event.Topic).
			Str("shop", event.Shop).
			Int64("customerId", payload.Customer.ID).
			Msg("Customer privacy request received, no customer data stored")
	}
	return nil
}

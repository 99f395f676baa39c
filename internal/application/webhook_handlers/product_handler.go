package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"simple-gifting/internal/application"
	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related webhook events
type ProductHandler struct {
	logger   zerolog.Logger
	products *application.GiftingProductService
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(logger zerolog.Logger, products *application.GiftingProductService) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsCreate
}

// Handle auto-tags a newly created product
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload domain.ProductWebhookPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}
	if payload.ID == 0 {
		return fmt.Errorf("product webhook payload has no id")
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int64("productId", payload.ID).
		Str("title", payload.Title).
		Msg("Processing product webhook event")

	tagged, err := h.products.AutoTagNewProduct(ctx, event.Shop, payload)
	if err != nil {
		return err
	}
	if !tagged {
		h.logger.Debug().Str("shop", event.Shop).Int64("productId", payload.ID).Msg("Product left untagged")
	}
	return nil
}

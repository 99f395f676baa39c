package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"simple-gifting/internal/domain"
)

// webhook receives a platform webhook. A non-2xx answer makes the platform retry.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	topic := r.Header.Get("X-Shopify-Topic")
	if topic == "" {
		h.logger.Warn().Msg("Missing X-Shopify-Topic header")
		http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
		return
	}

	if h.deps.WebhookVerifier == nil || !h.deps.WebhookVerifier.VerifyWebhook(r) {
		h.logger.Warn().Str("topic", topic).Msg("Webhook signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read webhook payload")
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !json.Valid(payload) {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	event := &domain.WebhookEvent{
		WebhookID:  r.Header.Get("X-Shopify-Webhook-Id"),
		Topic:      topic,
		Shop:       r.Header.Get("X-Shopify-Shop-Domain"),
		APIVersion: r.Header.Get("X-Shopify-API-Version"),
		Payload:    payload,
		Verified:   true,
		CreatedAt:  time.Now(),
	}

	if err := h.deps.Webhooks.ProcessWebhook(r.Context(), event); err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Str("shop", event.Shop).Msg("Failed to process webhook event")
		http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

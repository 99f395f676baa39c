package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// WebhookHandler processes the webhook topics it accepts
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookService logs verified deliveries and routes them to handlers
type WebhookService struct {
	events   ports.WebhookEventRepository
	dedup    ports.WebhookDeduplicator
	handlers []WebhookHandler
	activity ports.ActivityPublisher
	metrics  ports.MetricsRecorder
	logger   zerolog.Logger
}

// NewWebhookService creates a new webhook service. dedup may be nil.
func NewWebhookService(events ports.WebhookEventRepository, dedup ports.WebhookDeduplicator, metrics ports.MetricsRecorder, logger zerolog.Logger) *WebhookService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &WebhookService{
		events:  events,
		dedup:   dedup,
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterHandler adds a handler; every handler accepting a topic is invoked
func (s *WebhookService) RegisterHandler(h WebhookHandler) {
	s.handlers = append(s.handlers, h)
}

// SetActivityPublisher streams processed deliveries to live subscribers
func (s *WebhookService) SetActivityPublisher(p ports.ActivityPublisher) {
	s.activity = p
}

// ProcessWebhook handles one verified delivery. Repeated deliveries of the
// same webhook id are acknowledged without running the handlers again.
func (s *WebhookService) ProcessWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if s.dedup != nil && event.WebhookID != "" {
		first, err := s.dedup.FirstDelivery(ctx, event.WebhookID)
		if err != nil {
			s.logger.Warn().Err(err).Str("webhookId", event.WebhookID).Msg("Webhook de-duplication unavailable")
		} else if !first {
			s.logger.Info().Str("topic", event.Topic).Str("shop", event.Shop).Str("webhookId", event.WebhookID).Msg("Duplicate webhook ignored")
			s.metrics.WebhookReceived(event.Topic, "duplicate")
			return nil
		}
	}

	var errs []error
	matched := false
	for _, h := range s.handlers {
		if !h.CanHandle(event.Topic) {
			continue
		}
		matched = true
		if err := h.Handle(ctx, event); err != nil {
			s.logger.Error().Err(err).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Webhook handler failed")
			errs = append(errs, err)
		}
	}
	handleErr := errors.Join(errs...)

	event.Handled = matched && handleErr == nil
	if handleErr != nil {
		event.Error = handleErr.Error()
	}
	if !matched {
		s.logger.Warn().Str("topic", event.Topic).Str("shop", event.Shop).Msg("No handler for webhook topic")
	}

	if err := s.events.LogWebhook(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("topic", event.Topic).Str("shop", event.Shop).Msg("Failed to log webhook")
	}
	if s.activity != nil {
		s.activity.Publish(&domain.Activity{
			Kind:      domain.ActivityWebhook,
			Shop:      event.Shop,
			Topic:     event.Topic,
			Success:   handleErr == nil,
			CreatedAt: event.CreatedAt,
		})
	}

	if handleErr != nil {
		s.metrics.WebhookReceived(event.Topic, "error")
		s.release(ctx, event.WebhookID)
		return fmt.Errorf("failed to handle webhook %s: %w", event.Topic, handleErr)
	}

	status := "handled"
	if !matched {
		status = "unhandled"
	}
	s.metrics.WebhookReceived(event.Topic, status)
	s.logger.Info().Str("topic", event.Topic).Str("shop", event.Shop).Bool("verified", event.Verified).Msg("Webhook processed")
	return nil
}

// release forgets a delivery so the platform's retry is processed
func (s *WebhookService) release(ctx context.Context, webhookID string) {
	if s.dedup == nil || webhookID == "" {
		return
	}
	if err := s.dedup.Forget(ctx, webhookID); err != nil {
		s.logger.Warn().Err(err).Str("webhookId", webhookID).Msg("Failed to release webhook id")
	}
}

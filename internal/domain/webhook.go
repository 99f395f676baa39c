package domain

import (
	"encoding/json"
	"time"
)

// Webhook topics handled by the app
const (
	TopicProductsCreate       = "products/create"
	TopicAppUninstalled       = "app/uninstalled"
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
	TopicShopRedact           = "shop/redact"
)

// WebhookEvent is a verified webhook delivery
type WebhookEvent struct {
	ID         string          `json:"id"`
	WebhookID  string          `json:"webhook_id"`
	Topic      string          `json:"topic"`
	Shop       string          `json:"shop"`
	APIVersion string          `json:"api_version"`
	Payload    json.RawMessage `json:"payload"`
	Verified   bool            `json:"verified"`
	Handled    bool            `json:"handled"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ProductWebhookPayload is the part of a products/create payload the app reads
type ProductWebhookPayload struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Tags  string `json:"tags"`
}

// ShopRedactPayload is the shop/redact payload
type ShopRedactPayload struct {
	ShopID     int64  `json:"shop_id"`
	ShopDomain string `json:"shop_domain"`
}

// CustomerPrivacyPayload covers customers/data_request and customers/redact
type CustomerPrivacyPayload struct {
	ShopID     int64  `json:"shop_id"`
	ShopDomain string `json:"shop_domain"`
	Customer   struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	} `json:"customer"`
	OrdersRequested []int64 `json:"orders_requested,omitempty"`
	OrdersToRedact  []int64 `json:"orders_to_redact,omitempty"`
}

// ActivityKind distinguishes entries of the live activity feed
type ActivityKind string

const (
	ActivityWebhook        ActivityKind = "webhook"
	ActivityThemeOperation ActivityKind = "theme_operation"
)

// Activity is one entry of a shop's live activity feed
type Activity struct {
	Kind      ActivityKind `json:"kind"`
	Shop      string       `json:"shop"`
	Topic     string       `json:"topic"`
	Success   bool         `json:"success"`
	Detail    any          `json:"detail,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

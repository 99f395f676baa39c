package entity

import (
	"time"

	"simple-gifting/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoWebhookDoc represents a logged webhook delivery in MongoDB
type MongoWebhookDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	WebhookID  string             `bson:"webhookId,omitempty"`
	Topic      string             `bson:"topic"`
	Shop       string             `bson:"shop"`
	APIVersion string             `bson:"apiVersion,omitempty"`
	Payload    string             `bson:"payload"`
	Verified   bool               `bson:"verified"`
	Handled    bool               `bson:"handled"`
	Error      string             `bson:"error,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// MongoWebhookDocFromDomain converts a domain entity to a MongoDB document
func MongoWebhookDocFromDomain(event *domain.WebhookEvent) *MongoWebhookDoc {
	doc := &MongoWebhookDoc{
		WebhookID:  event.WebhookID,
		Topic:      event.Topic,
		Shop:       event.Shop,
		APIVersion: event.APIVersion,
		Payload:    string(event.Payload),
		Verified:   event.Verified,
		Handled:    event.Handled,
		Error:      event.Error,
		CreatedAt:  event.CreatedAt,
	}

	if event.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(event.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}

package repository

import (
	"context"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/infrastructure/repository/entity"
	"simple-gifting/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	shopConfigurationsCollection = "shop_configurations"
	sessionsCollection           = "shopify_sessions"
	webhookEventsCollection      = "webhook_events"
	themeOperationsCollection    = "theme_operations"
)

// MongoRepository implements the webhook and session repositories using MongoDB
type MongoRepository struct {
	sessionsCollection *mongo.Collection
	webhooksCollection *mongo.Collection
}

// NewMongoRepository creates a new MongoDB repository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		sessionsCollection: db.Collection(sessionsCollection),
		webhooksCollection: db.Collection(webhookEventsCollection),
	}
}

var (
	_ ports.WebhookEventRepository = (*MongoRepository)(nil)
	_ ports.SessionRepository      = (*MongoRepository)(nil)
)

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(shopConfigurationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shop", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create shop configuration index: %w", err)
	}

	_, err = db.Collection(themeOperationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shop", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create theme operation index: %w", err)
	}

	_, err = db.Collection(sessionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create session index: %w", err)
	}

	_, err = db.Collection(webhookEventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shop", Value: 1}, {Key: "topic", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create webhook event index: %w", err)
	}

	return nil
}

// LogWebhook logs a webhook event
func (r *MongoRepository) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	doc := entity.MongoWebhookDocFromDomain(event)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.webhooksCollection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to log webhook: %w", err)
	}

	event.ID = doc.ID.Hex()
	return nil
}

// GetOfflineSession retrieves the offline session of a shop
func (r *MongoRepository) GetOfflineSession(ctx context.Context, shop string) (*domain.Session, error) {
	var doc entity.MongoSessionDoc
	filter := bson.M{"id": domain.OfflineSessionID(shop)}

	err := r.sessionsCollection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return doc.ToDomain(), nil
}

// SaveSession inserts or replaces a session by its id
func (r *MongoRepository) SaveSession(ctx context.Context, session *domain.Session) error {
	doc := entity.MongoSessionDocFromDomain(session)
	filter := bson.M{"id": doc.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.sessionsCollection.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// DeleteByShop deletes every session of a shop
func (r *MongoRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	res, err := r.sessionsCollection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	return res.DeletedCount, nil
}

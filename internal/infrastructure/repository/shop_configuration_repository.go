package repository

import (
	"context"
	"errors"
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

// ShopConfigurationRepository stores one configuration document per shop
type ShopConfigurationRepository struct {
	collection *mongo.Collection
}

// NewShopConfigurationRepository creates a new shop configuration repository
func NewShopConfigurationRepository(db *mongo.Database) ports.ShopConfigurationRepository {
	return &ShopConfigurationRepository{
		collection: db.Collection(shopConfigurationsCollection),
	}
}

// GetByShop retrieves the configuration of a shop
func (r *ShopConfigurationRepository) GetByShop(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	var doc entity.MongoShopConfigurationDoc
	filter := bson.M{"shop": shop}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop configuration: %w", err)
	}

	return doc.ToDomain(), nil
}

// Create inserts a configuration; the unique shop index rejects a second one
func (r *ShopConfigurationRepository) Create(ctx context.Context, config *domain.ShopConfiguration) error {
	now := time.Now()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}
	config.UpdatedAt = now

	doc := entity.MongoShopConfigurationDocFromDomain(config)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConfigurationExists
	}
	if err != nil {
		return fmt.Errorf("failed to create shop configuration: %w", err)
	}

	config.ID = doc.ID.Hex()
	return nil
}

// Update applies the provided patch fields and returns the stored result.
// It returns nil, nil when the shop has no configuration.
func (r *ShopConfigurationRepository) Update(ctx context.Context, shop string, patch *domain.ShopConfigurationPatch) (*domain.ShopConfiguration, error) {
	set := entity.MongoShopConfigurationPatchDocFromDomain(patch, time.Now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc entity.MongoShopConfigurationDoc
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"shop": shop}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update shop configuration: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes the configuration of a shop
func (r *ShopConfigurationRepository) Delete(ctx context.Context, shop string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete shop configuration: %w", err)
	}

	return nil
}

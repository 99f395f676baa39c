package repository

import (
	"context"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/infrastructure/repository/entity"
	"simple-gifting/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ThemeOperationRepository keeps the audit trail of theme injections and removals
type ThemeOperationRepository struct {
	collection *mongo.Collection
}

// NewThemeOperationRepository creates a new theme operation repository
func NewThemeOperationRepository(db *mongo.Database) ports.ThemeOperationRepository {
	return &ThemeOperationRepository{
		collection: db.Collection(themeOperationsCollection),
	}
}

// Save stores an operation record
func (r *ThemeOperationRepository) Save(ctx context.Context, op *domain.ThemeOperation) error {
	doc := entity.MongoThemeOperationDocFromDomain(op)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save theme operation: %w", err)
	}

	return nil
}

// ListByShop returns the most recent operations of a shop, newest first
func (r *ThemeOperationRepository) ListByShop(ctx context.Context, shop string, limit int64) ([]*domain.ThemeOperation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme operations: %w", err)
	}
	defer cursor.Close(ctx)

	ops := []*domain.ThemeOperation{}
	for cursor.Next(ctx) {
		var doc entity.MongoThemeOperationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode theme operation: %w", err)
		}
		ops = append(ops, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return ops, nil
}

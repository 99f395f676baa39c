package entity

import (
	"time"

	"simple-gifting/internal/domain"
)

// MongoThemeOperationDoc represents a theme operation audit record in MongoDB
type MongoThemeOperationDoc struct {
	ID            string    `bson:"_id"`
	Shop          string    `bson:"shop"`
	ThemeID       string    `bson:"themeId"`
	Kind          string    `bson:"kind"`
	Success       bool      `bson:"success"`
	Changed       []string  `bson:"changed"`
	AlreadyExists []string  `bson:"alreadyExists,omitempty"`
	Errors        []string  `bson:"errors"`
	CreatedAt     time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoThemeOperationDoc) ToDomain() *domain.ThemeOperation {
	return &domain.ThemeOperation{
		ID:            d.ID,
		Shop:          d.Shop,
		ThemeID:       d.ThemeID,
		Kind:          domain.ThemeOperationKind(d.Kind),
		Success:       d.Success,
		Changed:       d.Changed,
		AlreadyExists: d.AlreadyExists,
		Errors:        d.Errors,
		CreatedAt:     d.CreatedAt,
	}
}

// MongoThemeOperationDocFromDomain converts a domain entity to a MongoDB document
func MongoThemeOperationDocFromDomain(op *domain.ThemeOperation) *MongoThemeOperationDoc {
	return &MongoThemeOperationDoc{
		ID:            op.ID,
		Shop:          op.Shop,
		ThemeID:       op.ThemeID,
		Kind:          string(op.Kind),
		Success:       op.Success,
		Changed:       op.Changed,
		AlreadyExists: op.AlreadyExists,
		Errors:        op.Errors,
		CreatedAt:     op.CreatedAt,
	}
}

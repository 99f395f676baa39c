package ports

import (
	"context"

	"simple-gifting/internal/domain"
)

// ThemeFileReader reads theme identity and file bodies through the Admin GraphQL API
type ThemeFileReader interface {
	// MainTheme returns the published theme of the shop
	MainTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error)
	// ThemeFiles returns the text bodies of the requested files that exist
	ThemeFiles(ctx context.Context, shop string, themeID string, filenames []string) ([]domain.ThemeFile, error)
}

// ThemeAssetStore reads and writes theme assets through the REST asset API.
// GetAsset returns domain.ErrAssetNotFound for a missing key.
type ThemeAssetStore interface {
	ActiveTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error)
	ListAssets(ctx context.Context, shop string, themeID string) ([]domain.ThemeAsset, error)
	GetAsset(ctx context.Context, shop string, themeID string, key string) (*domain.ThemeAsset, error)
	SaveAsset(ctx context.Context, shop string, themeID string, asset domain.ThemeAsset) error
	DeleteAsset(ctx context.Context, shop string, themeID string, key string) error
}

// ProductUpdate changes the tags and metafields of a product.
// A nil Tags slice leaves the tags untouched.
type ProductUpdate struct {
	ID         string
	Tags       []string
	Metafields []domain.MetafieldInput
}

// ProductAdmin covers the product and metafield operations of the Admin GraphQL API
type ProductAdmin interface {
	SearchProducts(ctx context.Context, shop string, query string, first int) ([]domain.Product, error)
	GetProduct(ctx context.Context, shop string, productID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, shop string, update ProductUpdate) error
	DeleteMetafields(ctx context.Context, shop string, ownerID string, namespace string, keys []string) error
	HasProducts(ctx context.Context, shop string) (bool, error)

	MetafieldDefinitionKeys(ctx context.Context, shop string, namespace string) ([]string, error)
	CreateMetafieldDefinition(ctx context.Context, shop string, definition domain.MetafieldDefinition) error
}

// ShopifyClient is the full Admin API surface used by the app
type ShopifyClient interface {
	ThemeFileReader
	ThemeAssetStore
	ProductAdmin
}

// OAuthProvider runs the authorization code grant of an app install
type OAuthProvider interface {
	AuthorizeURL(shop, state string) (string, error)
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
}

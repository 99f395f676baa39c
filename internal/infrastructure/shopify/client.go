package shopify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// Config holds the app credentials and API options
type Config struct {
	APIKey     string
	APISecret  string
	APIVersion string
	MaxRetries int
	HTTPClient *http.Client
}

type client struct {
	app    goshopify.App
	tokens *TokenManager
	opts   []goshopify.Option
	logger zerolog.Logger
}

// NewClient creates a new Shopify client adapter
func NewClient(cfg Config, tokens *TokenManager, logger zerolog.Logger) ports.ShopifyClient {
	opts := []goshopify.Option{}
	if cfg.APIVersion != "" {
		opts = append(opts, goshopify.WithVersion(cfg.APIVersion))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, goshopify.WithRetry(cfg.MaxRetries))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, goshopify.WithHTTPClient(cfg.HTTPClient))
	}

	return &client{
		app: goshopify.App{
			ApiKey:    cfg.APIKey,
			ApiSecret: cfg.APISecret,
		},
		tokens: tokens,
		opts:   opts,
		logger: logger,
	}
}

// createClient is a helper to create a goshopify client for a shop
func (c *client) createClient(ctx context.Context, shop string) (*goshopify.Client, error) {
	token, err := c.tokens.AccessToken(ctx, shop)
	if err != nil {
		return nil, err
	}
	client, err := goshopify.NewClient(c.app, shop, token, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// isNotFound reports whether the REST API answered 404
func isNotFound(err error) bool {
	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		return respErr.GetStatus() == http.StatusNotFound
	}
	return false
}

// Theme API (GraphQL)

func (c *client) MainTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}

	var resp mainThemeResponse
	if err := client.GraphQL.Query(ctx, mainThemeQuery, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to query main theme: %w", err)
	}
	if len(resp.Themes.Nodes) == 0 {
		return nil, domain.ErrThemeNotFound
	}

	node := resp.Themes.Nodes[0]
	return &domain.ThemeIdentity{ID: node.ID, Name: node.Name, Role: "main"}, nil
}

func (c *client) ThemeFiles(ctx context.Context, shop string, themeID string, filenames []string) ([]domain.ThemeFile, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}

	vars := map[string]interface{}{
		"themeId":   themeGID(themeID),
		"filenames": filenames,
	}
	var resp themeFilesResponse
	if err := client.GraphQL.Query(ctx, themeFilesQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to query theme files: %w", err)
	}
	if resp.Theme == nil {
		return nil, domain.ErrThemeNotFound
	}

	files := make([]domain.ThemeFile, 0, len(resp.Theme.Files.Nodes))
	for _, node := range resp.Theme.Files.Nodes {
		content := node.Body.Content
		if content == "" && node.Body.ContentBase64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(node.Body.ContentBase64)
			if err != nil {
				c.logger.Warn().Err(err).Str("shop", shop).Str("file", node.Filename).Msg("Failed to decode theme file body")
			} else {
				content = string(decoded)
			}
		}
		files = append(files, domain.ThemeFile{Filename: node.Filename, Content: content})
	}
	return files, nil
}

// Asset API (REST)

func (c *client) ActiveTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}
	themes, err := client.Theme.List(ctx, themeListOptions{Role: "main"})
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	for _, t := range themes {
		if t.Role == "main" {
			return &domain.ThemeIdentity{ID: strconv.FormatUint(t.Id, 10), Name: t.Name, Role: t.Role}, nil
		}
	}
	return nil, domain.ErrThemeNotFound
}

func (c *client) ListAssets(ctx context.Context, shop string, themeID string) ([]domain.ThemeAsset, error) {
	id, client, err := c.assetClient(ctx, shop, themeID)
	if err != nil {
		return nil, err
	}
	assets, err := client.Asset.List(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	out := make([]domain.ThemeAsset, 0, len(assets))
	for _, a := range assets {
		out = append(out, toThemeAsset(a))
	}
	return out, nil
}

func (c *client) GetAsset(ctx context.Context, shop string, themeID string, key string) (*domain.ThemeAsset, error) {
	id, client, err := c.assetClient(ctx, shop, themeID)
	if err != nil {
		return nil, err
	}
	asset, err := client.Asset.Get(ctx, id, key)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("failed to get asset %s: %w", key, err)
	}
	a := toThemeAsset(*asset)
	return &a, nil
}

func (c *client) SaveAsset(ctx context.Context, shop string, themeID string, asset domain.ThemeAsset) error {
	id, client, err := c.assetClient(ctx, shop, themeID)
	if err != nil {
		return err
	}
	_, err = client.Asset.Update(ctx, id, goshopify.Asset{
		Key:        asset.Key,
		Value:      asset.Value,
		Attachment: asset.Attachment,
	})
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", asset.Key, err)
	}
	c.logger.Debug().Str("shop", shop).Str("themeId", themeID).Str("key", asset.Key).Msg("Asset saved")
	return nil
}

func (c *client) DeleteAsset(ctx context.Context, shop string, themeID string, key string) error {
	id, client, err := c.assetClient(ctx, shop, themeID)
	if err != nil {
		return err
	}
	if err := client.Asset.Delete(ctx, id, key); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%s: %w", key, domain.ErrAssetNotFound)
		}
		return fmt.Errorf("failed to delete asset %s: %w", key, err)
	}
	return nil
}

func (c *client) assetClient(ctx context.Context, shop, themeID string) (uint64, *goshopify.Client, error) {
	id, err := domain.ThemeNumericID(themeID)
	if err != nil {
		return 0, nil, err
	}
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return 0, nil, err
	}
	return id, client, nil
}

type themeListOptions struct {
	Role string `url:"role,omitempty"`
}

func toThemeAsset(a goshopify.Asset) domain.ThemeAsset {
	return domain.ThemeAsset{Key: a.Key, Value: a.Value, Attachment: a.Attachment}
}

// themeGID turns a numeric REST theme id into a GraphQL id
func themeGID(themeID string) string {
	if _, err := strconv.ParseUint(themeID, 10, 64); err == nil {
		return "gid://shopify/OnlineStoreTheme/" + themeID
	}
	return themeID
}

// Product API (GraphQL)

func (c *client) SearchProducts(ctx context.Context, shop string, query string, first int) ([]domain.Product, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}
	vars := map[string]interface{}{"query": query, "first": first}
	var resp productsResponse
	if err := client.GraphQL.Query(ctx, productsQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	products := make([]domain.Product, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		products = append(products, edge.Node.toDomain())
	}
	return products, nil
}

func (c *client) GetProduct(ctx context.Context, shop string, productID string) (*domain.Product, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}
	var resp productResponse
	if err := client.GraphQL.Query(ctx, productQuery, map[string]interface{}{"id": productID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if resp.Product == nil {
		return nil, fmt.Errorf("%s: %w", productID, domain.ErrProductNotFound)
	}
	p := resp.Product.toDomain()
	return &p, nil
}

func (c *client) UpdateProduct(ctx context.Context, shop string, update ports.ProductUpdate) error {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return err
	}

	input := map[string]interface{}{"id": update.ID}
	if update.Tags != nil {
		input["tags"] = update.Tags
	}
	if len(update.Metafields) > 0 {
		input["metafields"] = update.Metafields
	}

	var resp productUpdateResponse
	if err := client.GraphQL.Query(ctx, productUpdateMutation, map[string]interface{}{"input": input}, &resp); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if len(resp.ProductUpdate.UserErrors) > 0 {
		return &domain.UserErrorsError{Operation: "productUpdate", Errors: resp.ProductUpdate.UserErrors}
	}
	return nil
}

func (c *client) DeleteMetafields(ctx context.Context, shop string, ownerID string, namespace string, keys []string) error {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return err
	}

	identifiers := make([]map[string]string, 0, len(keys))
	for _, k := range keys {
		identifiers = append(identifiers, map[string]string{
			"ownerId":   ownerID,
			"namespace": namespace,
			"key":       k,
		})
	}

	var resp metafieldsDeleteResponse
	if err := client.GraphQL.Query(ctx, metafieldsDeleteMutation, map[string]interface{}{"metafields": identifiers}, &resp); err != nil {
		return fmt.Errorf("failed to delete metafields: %w", err)
	}
	if len(resp.MetafieldsDelete.UserErrors) > 0 {
		return &domain.UserErrorsError{Operation: "metafieldsDelete", Errors: resp.MetafieldsDelete.UserErrors}
	}
	return nil
}

func (c *client) HasProducts(ctx context.Context, shop string) (bool, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return false, err
	}
	var resp productsResponse
	if err := client.GraphQL.Query(ctx, anyProductQuery, nil, &resp); err != nil {
		return false, fmt.Errorf("failed to query products: %w", err)
	}
	return len(resp.Products.Edges) > 0, nil
}

// Metafield definition API (GraphQL)

func (c *client) MetafieldDefinitionKeys(ctx context.Context, shop string, namespace string) ([]string, error) {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return nil, err
	}
	var resp metafieldDefinitionsResponse
	if err := client.GraphQL.Query(ctx, metafieldDefinitionsQuery, map[string]interface{}{"namespace": namespace}, &resp); err != nil {
		return nil, fmt.Errorf("failed to list metafield definitions: %w", err)
	}
	keys := make([]string, 0, len(resp.MetafieldDefinitions.Edges))
	for _, edge := range resp.MetafieldDefinitions.Edges {
		keys = append(keys, edge.Node.Key)
	}
	return keys, nil
}

func (c *client) CreateMetafieldDefinition(ctx context.Context, shop string, definition domain.MetafieldDefinition) error {
	client, err := c.createClient(ctx, shop)
	if err != nil {
		return err
	}
	var resp metafieldDefinitionCreateResponse
	if err := client.GraphQL.Query(ctx, metafieldDefinitionCreateMutation, map[string]interface{}{"definition": definition}, &resp); err != nil {
		return fmt.Errorf("failed to create metafield definition: %w", err)
	}
	if len(resp.MetafieldDefinitionCreate.UserErrors) > 0 {
		return &domain.UserErrorsError{Operation: "metafieldDefinitionCreate", Errors: resp.MetafieldDefinitionCreate.UserErrors}
	}
	c.logger.Info().Str("shop", shop).Str("key", definition.Key).Msg("Metafield definition created")
	return nil
}

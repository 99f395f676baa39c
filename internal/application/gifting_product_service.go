package application

import (
	"context"
	"fmt"
	"strings"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

const (
	storefrontProductLimit = 50
	adminProductLimit      = 50
	unlinkedProductLimit   = 100
	analyticsProductLimit  = 250
)

// GiftingProductService manages which products are gifting products and their settings
type GiftingProductService struct {
	products ports.ProductAdmin
	configs  *ShopConfigurationService
	logger   zerolog.Logger
}

// NewGiftingProductService creates a new gifting product service
func NewGiftingProductService(products ports.ProductAdmin, configs *ShopConfigurationService, logger zerolog.Logger) *GiftingProductService {
	return &GiftingProductService{
		products: products,
		configs:  configs,
		logger:   logger,
	}
}

// GiftingProductQuery builds the product search query for the admin list
func GiftingProductQuery(search, status string) string {
	query := "tag:" + domain.GiftingTag
	if search = strings.TrimSpace(search); search != "" {
		query += " AND title:*" + search + "*"
	}
	if status != "" && status != "all" {
		query += " AND status:" + status
	}
	return query
}

// ListGiftingProducts returns the tagged products matching search and status
func (s *GiftingProductService) ListGiftingProducts(ctx context.Context, shop, search, status string) ([]domain.Product, error) {
	products, err := s.products.SearchProducts(ctx, shop, GiftingProductQuery(search, status), adminProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifting products: %w", err)
	}
	return products, nil
}

// ListUnlinkedProducts returns products that can still be linked
func (s *GiftingProductService) ListUnlinkedProducts(ctx context.Context, shop string) ([]domain.Product, error) {
	products, err := s.products.SearchProducts(ctx, shop, "NOT tag:"+domain.GiftingTag, unlinkedProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked products: %w", err)
	}
	return products, nil
}

// GetProduct returns a single product with its gifting settings
func (s *GiftingProductService) GetProduct(ctx context.Context, shop, productID string) (*domain.Product, error) {
	product, err := s.products.GetProduct(ctx, shop, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Analytics aggregates the gifting products of shop
func (s *GiftingProductService) Analytics(ctx context.Context, shop string) (*domain.AnalyticsOverview, error) {
	products, err := s.products.SearchProducts(ctx, shop, "tag:"+domain.GiftingTag, analyticsProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gifting products: %w", err)
	}
	return domain.NewAnalyticsOverview(products), nil
}

// StorefrontProducts returns the gifting products in storefront form.
// Products without variants are skipped.
func (s *GiftingProductService) StorefrontProducts(ctx context.Context, shop string) ([]domain.StorefrontProduct, error) {
	products, err := s.products.SearchProducts(ctx, shop, "tag:"+domain.GiftingTag, storefrontProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gifting products: %w", err)
	}

	out := make([]domain.StorefrontProduct, 0, len(products))
	for i := range products {
		if sp, ok := toStorefrontProduct(&products[i]); ok {
			out = append(out, sp)
		}
	}
	return out, nil
}

func toStorefrontProduct(p *domain.Product) (domain.StorefrontProduct, bool) {
	if len(p.Variants) == 0 {
		return domain.StorefrontProduct{}, false
	}

	variants := make([]domain.StorefrontVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, domain.StorefrontVariant{
			ID:    v.ID,
			Title: v.Title,
			Price: domain.ParsePrice(v.Price),
		})
	}

	settings := p.GiftingSettings
	sp := domain.StorefrontProduct{
		ID:            p.ID,
		VariantID:     p.Variants[0].ID,
		Title:         p.Title,
		Handle:        p.Handle,
		ImageURL:      p.FeaturedImage,
		Price:         variants[0].Price,
		MaxCharacters: domain.ParseIntOr(settings.MaxChars, domain.DefaultMaxCharacters),
		Customizable:  settings.Customizable != nil && *settings.Customizable == "true",
		RibbonLength:  domain.ParseIntOr(settings.RibbonLength, 0),
		Variants:      variants,
	}
	if settings.ProductType != nil {
		sp.ProductType = *settings.ProductType
	}
	return sp, true
}

// LinkProduct tags a product as a gifting product and writes its gifting metafields
func (s *GiftingProductService) LinkProduct(ctx context.Context, shop string, input domain.LinkProductInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	product, err := s.products.GetProduct(ctx, shop, input.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	update := ports.ProductUpdate{
		ID:         input.ProductID,
		Tags:       domain.AppendTag(product.Tags, domain.GiftingTag),
		Metafields: input.Metafields(),
	}
	if err := s.products.UpdateProduct(ctx, shop, update); err != nil {
		return fmt.Errorf("failed to link product: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("productId", input.ProductID).Str("giftingType", input.GiftingType).Msg("Product linked")
	return nil
}

// UnlinkProduct removes the gifting tag and gifting metafields from a product
func (s *GiftingProductService) UnlinkProduct(ctx context.Context, shop, productID string) error {
	if productID == "" {
		return &domain.ValidationError{Field: "productId", Message: "is required"}
	}

	product, err := s.products.GetProduct(ctx, shop, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	update := ports.ProductUpdate{
		ID:   productID,
		Tags: domain.RemoveTag(product.Tags, domain.GiftingTag),
	}
	if err := s.products.UpdateProduct(ctx, shop, update); err != nil {
		return fmt.Errorf("failed to unlink product: %w", err)
	}
	if err := s.products.DeleteMetafields(ctx, shop, productID, domain.MetafieldNamespace, domain.GiftingMetafieldKeys); err != nil {
		return fmt.Errorf("failed to delete gifting metafields: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("productId", productID).Msg("Product unlinked")
	return nil
}

// RepairMetafields resets the gifting metafields of a product to the card defaults
func (s *GiftingProductService) RepairMetafields(ctx context.Context, shop, productID string) error {
	if productID == "" {
		return &domain.ValidationError{Field: "productId", Message: "is required"}
	}
	if _, err := s.products.GetProduct(ctx, shop, productID); err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	update := ports.ProductUpdate{ID: productID, Metafields: domain.RepairMetafields()}
	if err := s.products.UpdateProduct(ctx, shop, update); err != nil {
		return fmt.Errorf("failed to repair metafields: %w", err)
	}
	return nil
}

// UpdateProductSettings writes the provided gifting metafields of a product
func (s *GiftingProductService) UpdateProductSettings(ctx context.Context, shop, productID string, input domain.ProductSettingsInput) error {
	if productID == "" {
		return &domain.ValidationError{Field: "productId", Message: "is required"}
	}
	metafields := input.Metafields()
	if len(metafields) == 0 {
		return &domain.ValidationError{Message: "no settings to update"}
	}

	update := ports.ProductUpdate{ID: productID, Metafields: metafields}
	if err := s.products.UpdateProduct(ctx, shop, update); err != nil {
		return fmt.Errorf("failed to update product settings: %w", err)
	}
	return nil
}

// AutoTagNewProduct tags a freshly created product when the shop has auto-tagging on.
// It reports whether the product was tagged.
func (s *GiftingProductService) AutoTagNewProduct(ctx context.Context, shop string, payload domain.ProductWebhookPayload) (bool, error) {
	config, err := s.configs.Get(ctx, shop)
	if err != nil {
		return false, err
	}
	if !config.AutoTagging {
		s.logger.Debug().Str("shop", shop).Int64("productId", payload.ID).Msg("Auto-tagging disabled")
		return false, nil
	}

	tags := splitTags(payload.Tags)
	for _, t := range tags {
		if t == domain.GiftingTag {
			return false, nil
		}
	}

	update := ports.ProductUpdate{
		ID:         domain.ProductGID(payload.ID),
		Tags:       append(tags, domain.GiftingTag),
		Metafields: domain.AutoTagMetafields(config.DefaultCharLimit),
	}
	if err := s.products.UpdateProduct(ctx, shop, update); err != nil {
		return false, fmt.Errorf("failed to tag product: %w", err)
	}

	s.logger.Info().Str("shop", shop).Int64("productId", payload.ID).Msg("Product tagged for gifting")
	return true, nil
}

// splitTags splits the comma separated tag list of a webhook payload
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

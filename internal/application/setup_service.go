package application

import (
	"context"
	"errors"
	"fmt"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// SetupService drives the installation wizard and the dashboard
type SetupService struct {
	products      ports.ProductAdmin
	configs       *ShopConfigurationService
	compatibility *ThemeCompatibilityService
	logger        zerolog.Logger
}

// NewSetupService creates a new setup service
func NewSetupService(
	products ports.ProductAdmin,
	configs *ShopConfigurationService,
	compatibility *ThemeCompatibilityService,
	logger zerolog.Logger,
) *SetupService {
	return &SetupService{
		products:      products,
		configs:       configs,
		compatibility: compatibility,
		logger:        logger,
	}
}

// Status reports how far the installation of shop has progressed
func (s *SetupService) Status(ctx context.Context, shop string) (*domain.InstallationStatus, error) {
	config, err := s.configs.Get(ctx, shop)
	if err != nil {
		return nil, err
	}

	keys, err := s.products.MetafieldDefinitionKeys(ctx, shop, domain.MetafieldNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list metafield definitions: %w", err)
	}

	return &domain.InstallationStatus{
		Shop:                  shop,
		MetafieldsConfigured:  countRequired(keys),
		RequiredMetafields:    len(domain.RequiredMetafieldDefinitions),
		AppEnabled:            config.AppIsEnabled,
		InstallationCompleted: config.InstallationCompleted,
		ThemeCompatibility:    s.compatibility.Check(ctx, shop),
	}, nil
}

// ConfigureMetafields creates the missing metafield definitions. Each
// definition gets its own result; a failed definition does not stop the rest.
func (s *SetupService) ConfigureMetafields(ctx context.Context, shop string) ([]domain.DefinitionResult, error) {
	keys, err := s.products.MetafieldDefinitionKeys(ctx, shop, domain.MetafieldNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list metafield definitions: %w", err)
	}
	existing := make(map[string]bool, len(keys))
	for _, k := range keys {
		existing[k] = true
	}

	results := make([]domain.DefinitionResult, 0, len(domain.RequiredMetafieldDefinitions))
	for _, def := range domain.RequiredMetafieldDefinitions {
		if existing[def.Key] {
			results = append(results, domain.DefinitionResult{Key: def.Key, Success: true, Skipped: true})
			continue
		}

		err := s.products.CreateMetafieldDefinition(ctx, shop, def)
		if err == nil {
			results = append(results, domain.DefinitionResult{Key: def.Key, Success: true})
			continue
		}

		s.logger.Warn().Err(err).Str("shop", shop).Str("key", def.Key).Msg("Failed to create metafield definition")
		var userErrs *domain.UserErrorsError
		if errors.As(err, &userErrs) {
			results = append(results, domain.DefinitionResult{Key: def.Key, Errors: userErrs.Errors})
		} else {
			results = append(results, domain.DefinitionResult{Key: def.Key, Errors: []domain.UserError{{Message: err.Error()}}})
		}
	}
	return results, nil
}

// EnableApp switches the storefront popup on
func (s *SetupService) EnableApp(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	enabled := true
	return s.configs.Update(ctx, shop, &domain.ShopConfigurationPatch{AppIsEnabled: &enabled})
}

// CompleteInstallation marks the wizard as finished and enables the app
func (s *SetupService) CompleteInstallation(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	done := true
	return s.configs.Update(ctx, shop, &domain.ShopConfigurationPatch{
		InstallationCompleted: &done,
		AppIsEnabled:          &done,
	})
}

// DashboardStats returns the dashboard numbers; failing lookups count as zero
func (s *SetupService) DashboardStats(ctx context.Context, shop string) *domain.DashboardStats {
	stats := &domain.DashboardStats{}

	if has, err := s.products.HasProducts(ctx, shop); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to check products")
	} else {
		stats.HasProducts = has
	}

	if keys, err := s.products.MetafieldDefinitionKeys(ctx, shop, domain.MetafieldNamespace); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to list metafield definitions")
	} else {
		stats.MetafieldsConfigured = len(keys)
	}

	if config, err := s.configs.Get(ctx, shop); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to load shop configuration")
	} else {
		stats.AppEnabled = config.AppIsEnabled
	}

	return stats
}

func countRequired(keys []string) int {
	required := make(map[string]bool, len(domain.RequiredMetafieldDefinitions))
	for _, def := range domain.RequiredMetafieldDefinitions {
		required[def.Key] = true
	}
	n := 0
	for _, k := range keys {
		if required[k] {
			n++
			delete(required, k)
		}
	}
	return n
}
